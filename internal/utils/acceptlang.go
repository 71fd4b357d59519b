package utils

import (
	"sort"
	"strconv"
	"strings"
)

// DetermineLocale resolves the locale to use from an explicit query param,
// the Accept-Language header, the supported locales, and a default.
// Supported values should be normalized like "pl", "en".
func DetermineLocale(queryLang, acceptLang string, supported []string, def string) string {
	sup := map[string]struct{}{}
	for _, s := range supported {
		sup[strings.ToLower(s)] = struct{}{}
	}

	pick := func(lang string) (string, bool) {
		if lang == "" {
			return "", false
		}
		// Prefer the base language: en-US -> en.
		l := strings.ToLower(lang)
		if _, ok := sup[l]; ok {
			return l, true
		}
		if i := strings.Index(l, "-"); i > 0 {
			if _, ok := sup[l[:i]]; ok {
				return l[:i], true
			}
		}
		return "", false
	}

	if v, ok := pick(queryLang); ok {
		return v
	}

	// Accept-Language with q-values, e.g. "en-US,en;q=0.9,pl;q=0.8".
	type cand struct {
		lang string
		q    float64
	}
	var cands []cand
	for _, part := range strings.Split(acceptLang, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		lang := p
		q := 1.0
		if semi := strings.Index(p, ";"); semi >= 0 {
			lang = strings.TrimSpace(p[:semi])
			if kv := strings.SplitN(p[semi+1:], "=", 2); len(kv) == 2 && strings.TrimSpace(kv[0]) == "q" {
				if v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64); err == nil {
					q = v
				}
			}
		}
		if l, ok := pick(lang); ok {
			cands = append(cands, cand{lang: l, q: q})
		}
	}
	if len(cands) > 0 {
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].q > cands[j].q })
		return cands[0].lang
	}

	if v, ok := pick(def); ok {
		return v
	}
	if len(supported) > 0 {
		return strings.ToLower(supported[0])
	}
	return "pl"
}
