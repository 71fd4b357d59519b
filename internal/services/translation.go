package services

import (
	"strings"
	"sync"

	"github.com/mstudio-pl/studio-site/internal/storage"
)

const (
	LanguageStorageKey = "language"
	DefaultLanguage    = "pl"
)

// SupportedLanguages lists the languages translation tables exist for.
var SupportedLanguages = []string{"pl", "en"}

// TableLoader fetches the full translation table for a language.
type TableLoader interface {
	Load(lang string) (map[string]any, error)
}

type TranslationKind int

const (
	KindScalar TranslationKind = iota
	KindList
)

// TranslationValue is a resolved leaf: either a single string or a list
// of strings (enumerated bullets etc).
type TranslationValue struct {
	Kind TranslationKind
	Str  string
	List []string
}

// Translator resolves dotted keys against the currently loaded language
// table. Exactly one table is active at a time; switching language swaps
// it wholesale while lookups keep serving the previous table.
type Translator struct {
	mu     sync.RWMutex
	loader TableLoader
	store  storage.Storage
	lang   string
	table  map[string]any
}

func NewTranslator(loader TableLoader, store storage.Storage) *Translator {
	return &Translator{loader: loader, store: store, lang: DefaultLanguage}
}

// Start loads the table for the persisted language, or the default. A
// load failure leaves the resolver in key-echo mode; the error is
// returned for logging only.
func (tr *Translator) Start() error {
	lang := DefaultLanguage
	if v, ok, err := tr.store.Get(LanguageStorageKey); err == nil && ok && supportedLanguage(v) {
		lang = v
	}
	return tr.load(lang)
}

// SetLanguage persists the choice and swaps in the new table. On load
// failure it falls back to the default language table; if that also
// fails, lookups degrade to echoing keys.
func (tr *Translator) SetLanguage(lang string) error {
	if !supportedLanguage(lang) {
		return NewInvalidError("unsupported language: " + lang)
	}
	// A persistence failure only loses the preference across sessions.
	_ = tr.store.Set(LanguageStorageKey, lang)
	return tr.load(lang)
}

func (tr *Translator) load(lang string) error {
	table, err := tr.loader.Load(lang)
	if err != nil && lang != DefaultLanguage {
		lang = DefaultLanguage
		table, err = tr.loader.Load(lang)
	}
	if err != nil {
		return NewTranslationLoadError("failed to load translations: " + err.Error())
	}
	tr.mu.Lock()
	tr.lang = lang
	tr.table = table
	tr.mu.Unlock()
	return nil
}

func (tr *Translator) Language() string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.lang
}

// Resolve walks the nested table one dot-separated segment at a time.
// The boolean is false when the path is absent or not a leaf.
func (tr *Translator) Resolve(key string) (TranslationValue, bool) {
	tr.mu.RLock()
	node := any(tr.table)
	tr.mu.RUnlock()
	if node == nil {
		return TranslationValue{}, false
	}
	for _, seg := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return TranslationValue{}, false
		}
		node, ok = m[seg]
		if !ok {
			return TranslationValue{}, false
		}
	}
	switch v := node.(type) {
	case string:
		return TranslationValue{Kind: KindScalar, Str: v}, true
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return TranslationValue{}, false
			}
			list = append(list, s)
		}
		return TranslationValue{Kind: KindList, List: list}, true
	case []string:
		return TranslationValue{Kind: KindList, List: append([]string(nil), v...)}, true
	}
	return TranslationValue{}, false
}

// T returns the scalar translation for key, or the key itself when the
// path is missing, non-scalar, or no table is loaded. It never fails.
func (tr *Translator) T(key string) string {
	if v, ok := tr.Resolve(key); ok && v.Kind == KindScalar {
		return v.Str
	}
	return key
}

// List returns the list translation for key, or nil for scalar or
// missing values.
func (tr *Translator) List(key string) []string {
	if v, ok := tr.Resolve(key); ok && v.Kind == KindList {
		return v.List
	}
	return nil
}

func supportedLanguage(lang string) bool {
	for _, s := range SupportedLanguages {
		if s == lang {
			return true
		}
	}
	return false
}
