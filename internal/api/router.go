package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mstudio-pl/studio-site/internal/middleware"
	"github.com/mstudio-pl/studio-site/internal/services"
)

// Router exposes the contact relay and the translation assets over HTTP.
type Router struct {
	contact *services.ContactService
	tables  services.TableLoader
	log     zerolog.Logger
}

func NewRouter(contact *services.ContactService, tables services.TableLoader, log zerolog.Logger) *Router {
	return &Router{contact: contact, tables: tables, log: log}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.Handle("/api/contact", rt.recovered(rt.handleContact))           // POST
	mux.Handle("/api/translations", rt.recovered(rt.handleTranslations)) // GET
}

// recovered converts a handler panic into a generic 500; internals are
// logged, never echoed to the caller.
func (rt *Router) recovered(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				rt.log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				writeError(w, http.StatusInternalServerError, "Wystąpił błąd serwera")
			}
		}()
		h(w, r)
	})
}

// POST /api/contact
func (rt *Router) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var msg services.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "Wszystkie pola są wymagane")
		return
	}
	if err := rt.contact.Submit(r.Context(), msg); err != nil {
		code, body := statusForError(err)
		writeError(w, code, body)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": services.SuccessMessage})
}

// GET /api/translations?lang=pl|en
func (rt *Router) handleTranslations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	lang := middleware.LocaleFromContext(r.Context())
	table, err := rt.tables.Load(lang)
	if err != nil && lang != services.DefaultLanguage {
		lang = services.DefaultLanguage
		table, err = rt.tables.Load(lang)
	}
	if err != nil {
		rt.log.Error().Err(err).Str("lang", lang).Msg("translation table load failed")
		writeError(w, http.StatusInternalServerError, "translations unavailable")
		return
	}
	w.Header().Set("Content-Language", lang)
	writeJSON(w, http.StatusOK, table)
}

func statusForError(err error) (int, string) {
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			return http.StatusBadRequest, se.Message
		case services.ErrorDelivery:
			return http.StatusInternalServerError, se.Message
		}
	}
	return http.StatusInternalServerError, "Wystąpił błąd serwera"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
