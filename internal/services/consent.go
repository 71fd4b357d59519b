package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/mstudio-pl/studio-site/internal/storage"
)

const (
	// ConsentSchemaVersion tags persisted records; any stored record with a
	// different version is treated as absent and the user is re-prompted.
	ConsentSchemaVersion = "1.0"
	ConsentStorageKey    = "cookie_consent"

	consentPromptDelay   = 1000 * time.Millisecond
	consentSavedDuration = 2500 * time.Millisecond
)

// ConsentRecord is the persisted consent choice set. Necessary is always
// true in a stored record.
type ConsentRecord struct {
	Necessary  bool   `json:"necessary"`
	Analytics  bool   `json:"analytics"`
	Marketing  bool   `json:"marketing"`
	Functional bool   `json:"functional"`
	Timestamp  int64  `json:"timestamp"`
	Version    string `json:"version"`
}

type ConsentState int

const (
	ConsentUninitialized ConsentState = iota
	ConsentPrompting
	ConsentSaved
	ConsentResolved
)

type ConsentCategory string

const (
	CategoryNecessary  ConsentCategory = "necessary"
	CategoryAnalytics  ConsentCategory = "analytics"
	CategoryFunctional ConsentCategory = "functional"
	CategoryMarketing  ConsentCategory = "marketing"
)

// ConsentManager decides whether the consent prompt is shown and persists
// the user's category choices. Storage failures are swallowed and treated
// as "no record".
type ConsentManager struct {
	mu       sync.Mutex
	store    storage.Storage
	state    ConsentState
	toggles  ConsentRecord
	resolved *ConsentRecord
	gen      int

	now      func() time.Time
	schedule func(d time.Duration, f func()) func()
}

func NewConsentManager(store storage.Storage) *ConsentManager {
	return &ConsentManager{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		schedule: func(d time.Duration, f func()) func() {
			t := time.AfterFunc(d, f)
			return func() { t.Stop() }
		},
	}
}

// Start reads the stored record. A valid record resolves immediately;
// otherwise the prompt becomes visible after the display delay.
func (m *ConsentManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startLocked()
}

func (m *ConsentManager) startLocked() {
	m.gen++
	m.state = ConsentUninitialized
	m.resolved = nil
	m.toggles = ConsentRecord{Necessary: true, Version: ConsentSchemaVersion}

	if rec, ok := m.readStored(); ok {
		m.resolved = rec
		m.toggles = *rec
		m.state = ConsentResolved
		return
	}

	gen := m.gen
	m.schedule(consentPromptDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen == gen && m.state == ConsentUninitialized {
			m.state = ConsentPrompting
		}
	})
}

func (m *ConsentManager) readStored() (*ConsentRecord, bool) {
	raw, ok, err := m.store.Get(ConsentStorageKey)
	if err != nil || !ok {
		return nil, false
	}
	var rec ConsentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, false
	}
	if rec.Version != ConsentSchemaVersion {
		return nil, false
	}
	rec.Necessary = true
	return &rec, true
}

// Toggle flips a non-required category while prompting. Toggling the
// necessary category or toggling outside the prompting state is a no-op.
func (m *ConsentManager) Toggle(cat ConsentCategory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ConsentPrompting {
		return
	}
	switch cat {
	case CategoryAnalytics:
		m.toggles.Analytics = !m.toggles.Analytics
	case CategoryMarketing:
		m.toggles.Marketing = !m.toggles.Marketing
	case CategoryFunctional:
		m.toggles.Functional = !m.toggles.Functional
	}
}

// AcceptAll opts in to every category and persists the record.
func (m *ConsentManager) AcceptAll() {
	m.accept(true)
}

// AcceptSelected persists the current toggle state. Categories the user
// never touched stay false. Note: toggles flipped on and left on are
// persisted as-is; call ResetToggles first for a strict necessary-only
// record.
func (m *ConsentManager) AcceptSelected() {
	m.accept(false)
}

// ResetToggles clears all non-required toggles while prompting.
func (m *ConsentManager) ResetToggles() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ConsentPrompting {
		return
	}
	m.toggles = ConsentRecord{Necessary: true, Version: ConsentSchemaVersion}
}

func (m *ConsentManager) accept(all bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ConsentPrompting {
		return
	}
	rec := ConsentRecord{
		Necessary:  true,
		Analytics:  all || m.toggles.Analytics,
		Marketing:  all || m.toggles.Marketing,
		Functional: all || m.toggles.Functional,
		Timestamp:  m.now().UnixMilli(),
		Version:    ConsentSchemaVersion,
	}
	if b, err := json.Marshal(rec); err == nil {
		// Write failures leave the in-memory record authoritative for this
		// session; the user is simply re-prompted next time.
		_ = m.store.Set(ConsentStorageKey, string(b))
	}
	m.resolved = &rec
	m.toggles = rec
	m.state = ConsentSaved

	gen := m.gen
	m.schedule(consentSavedDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen == gen && m.state == ConsentSaved {
			m.state = ConsentResolved
		}
	})
}

// Reset clears the stored record and restarts the prompt cycle.
func (m *ConsentManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.store.Remove(ConsentStorageKey)
	m.startLocked()
}

func (m *ConsentManager) State() ConsentState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// BannerVisible reports whether the consent UI should render: the prompt
// itself, or the brief saved acknowledgment.
func (m *ConsentManager) BannerVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == ConsentPrompting || m.state == ConsentSaved
}

// Toggles returns a snapshot of the in-memory toggle state for the UI.
func (m *ConsentManager) Toggles() ConsentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toggles
}

func (m *ConsentManager) HasAnalytics() bool  { return m.has(CategoryAnalytics) }
func (m *ConsentManager) HasMarketing() bool  { return m.has(CategoryMarketing) }
func (m *ConsentManager) HasFunctional() bool { return m.has(CategoryFunctional) }

func (m *ConsentManager) has(cat ConsentCategory) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolved == nil {
		return false
	}
	switch cat {
	case CategoryAnalytics:
		return m.resolved.Analytics
	case CategoryMarketing:
		return m.resolved.Marketing
	case CategoryFunctional:
		return m.resolved.Functional
	case CategoryNecessary:
		return true
	}
	return false
}
