package utils

import "testing"

func TestDetermineLocale(t *testing.T) {
	supported := []string{"pl", "en"}
	cases := []struct {
		name   string
		query  string
		accept string
		want   string
	}{
		{"query wins", "en", "pl", "en"},
		{"query base language", "en-GB", "", "en"},
		{"unsupported query falls through", "de", "en", "en"},
		{"accept language q-values", "", "de-DE,en;q=0.8,pl;q=0.9", "pl"},
		{"accept language base form", "", "en-US,en;q=0.9", "en"},
		{"default when nothing matches", "", "de,fr;q=0.9", "pl"},
		{"empty inputs", "", "", "pl"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetermineLocale(tc.query, tc.accept, supported, "pl"); got != tc.want {
				t.Fatalf("DetermineLocale(%q, %q) = %q, want %q", tc.query, tc.accept, got, tc.want)
			}
		})
	}
}

func TestDetermineLocaleDefaultNotSupported(t *testing.T) {
	if got := DetermineLocale("", "", []string{"en"}, "pl"); got != "en" {
		t.Fatalf("expected first supported locale, got %q", got)
	}
}
