package middleware

import (
	"context"
	"net/http"

	"github.com/mstudio-pl/studio-site/internal/utils"
)

type ctxKey int

const localeKey ctxKey = 1

var supportedLocales = []string{"pl", "en"}

// LocaleMiddleware extracts locale from query param (lang) or Accept-Language
// and stores it in request context. The site is Polish-first.
func LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		qLang := r.URL.Query().Get("lang")
		aLang := r.Header.Get("Accept-Language")
		locale := utils.DetermineLocale(qLang, aLang, supportedLocales, "pl")
		ctx := context.WithValue(r.Context(), localeKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleFromContext retrieves the locale stored by LocaleMiddleware.
func LocaleFromContext(ctx context.Context) string {
	if v := ctx.Value(localeKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "pl"
}
