package services

import (
	"errors"
	"testing"

	"github.com/mstudio-pl/studio-site/internal/storage"
)

type stubLoader struct {
	tables map[string]map[string]any
	fail   map[string]bool
}

func (l *stubLoader) Load(lang string) (map[string]any, error) {
	if l.fail[lang] {
		return nil, errors.New("asset missing")
	}
	t, ok := l.tables[lang]
	if !ok {
		return nil, errors.New("no such language")
	}
	return t, nil
}

func plTable() map[string]any {
	return map[string]any{
		"hero": map[string]any{
			"title":    "Tworzę aplikacje",
			"benefits": []any{"szybko", "solidnie"},
		},
		"cookie": map[string]any{
			"acceptAll": "Akceptuj wszystkie",
		},
	}
}

func enTable() map[string]any {
	return map[string]any{
		"hero": map[string]any{
			"title":    "I build applications",
			"benefits": []any{"fast", "solid"},
		},
		"cookie": map[string]any{
			"acceptAll": "Accept all",
		},
	}
}

func TestTranslatorResolvesDottedKeys(t *testing.T) {
	tr := NewTranslator(&stubLoader{tables: map[string]map[string]any{"pl": plTable()}}, storage.NewMemory())
	if err := tr.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if got := tr.T("hero.title"); got != "Tworzę aplikacje" {
		t.Fatalf("unexpected scalar: %q", got)
	}
	if got := tr.List("hero.benefits"); len(got) != 2 || got[0] != "szybko" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestTranslatorEchoesMissingKeys(t *testing.T) {
	tr := NewTranslator(&stubLoader{tables: map[string]map[string]any{"pl": plTable()}}, storage.NewMemory())
	_ = tr.Start()
	for _, key := range []string{"a.b.c", "hero.missing", "hero.title.deeper", "cookie"} {
		if got := tr.T(key); got != key {
			t.Fatalf("T(%q) = %q, want key echo", key, got)
		}
	}
	if tr.List("hero.title") != nil {
		t.Fatalf("List on a scalar must return nil")
	}
}

func TestTranslatorLanguageSwitch(t *testing.T) {
	store := storage.NewMemory()
	tr := NewTranslator(&stubLoader{tables: map[string]map[string]any{"pl": plTable(), "en": enTable()}}, store)
	_ = tr.Start()
	if err := tr.SetLanguage("en"); err != nil {
		t.Fatalf("SetLanguage error: %v", err)
	}
	if got := tr.T("cookie.acceptAll"); got != "Accept all" {
		t.Fatalf("expected english table, got %q", got)
	}
	if v, ok, _ := store.Get(LanguageStorageKey); !ok || v != "en" {
		t.Fatalf("language preference not persisted: %q %v", v, ok)
	}
	if err := tr.SetLanguage("de"); err == nil {
		t.Fatalf("unsupported language must be rejected")
	}
}

func TestTranslatorFallsBackToDefaultLanguage(t *testing.T) {
	loader := &stubLoader{tables: map[string]map[string]any{"pl": plTable()}, fail: map[string]bool{"en": true}}
	tr := NewTranslator(loader, storage.NewMemory())
	_ = tr.Start()
	if err := tr.SetLanguage("en"); err != nil {
		t.Fatalf("fallback load should succeed: %v", err)
	}
	if tr.Language() != "pl" {
		t.Fatalf("expected fallback to pl, got %q", tr.Language())
	}
	if got := tr.T("hero.title"); got != "Tworzę aplikacje" {
		t.Fatalf("expected default table, got %q", got)
	}
}

func TestTranslatorDegradesToKeyEcho(t *testing.T) {
	loader := &stubLoader{fail: map[string]bool{"pl": true, "en": true}}
	tr := NewTranslator(loader, storage.NewMemory())
	err := tr.Start()
	if err == nil {
		t.Fatalf("expected load error")
	}
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorTranslationLoad {
		t.Fatalf("expected translation_load error, got %v", err)
	}
	if got := tr.T("hero.title"); got != "hero.title" {
		t.Fatalf("expected key echo with no table, got %q", got)
	}
}

func TestTranslatorKeepsPreviousTableOnFailedSwitch(t *testing.T) {
	loader := &stubLoader{tables: map[string]map[string]any{"pl": plTable()}, fail: map[string]bool{"en": true}}
	tr := NewTranslator(loader, storage.NewMemory())
	_ = tr.Start()
	loader.fail["pl"] = true // both assets now unavailable
	if err := tr.SetLanguage("en"); err == nil {
		t.Fatalf("expected load error")
	}
	if got := tr.T("hero.title"); got != "Tworzę aplikacje" {
		t.Fatalf("previous table must keep serving, got %q", got)
	}
}
