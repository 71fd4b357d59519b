package main

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/rs/zerolog"

	"github.com/mstudio-pl/studio-site/internal/api"
	"github.com/mstudio-pl/studio-site/internal/config"
	"github.com/mstudio-pl/studio-site/internal/mailer"
	"github.com/mstudio-pl/studio-site/internal/middleware"
	"github.com/mstudio-pl/studio-site/internal/services"
	"github.com/mstudio-pl/studio-site/internal/utils"
	"github.com/mstudio-pl/studio-site/web"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	}

	commit := utils.SafeEnv("SITE_COMMIT", "dev")
	buildTime := utils.SafeEnv("SITE_BUILD_TIME", "")

	translations, err := fs.Sub(web.Assets, "translations")
	if err != nil {
		logger.Fatal().Err(err).Msg("translation assets unavailable")
	}
	if cfg.ResendAPIKey == "" {
		logger.Warn().Msg("RESEND_API_KEY not set; contact submissions will fail delivery")
	}

	mail := mailer.NewResend(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.SendTimeout)
	contact := services.NewContactService(mail, cfg.OwnerEmail, cfg.FromAddress, logger)

	mux := http.NewServeMux()
	api.NewRouter(contact, services.NewFSTableLoader(translations), logger).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "studio-site API",
			"locale":     middleware.LocaleFromContext(r.Context()),
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Frontend serving strategy (priority):
	// 1) Static files if SITE_STATIC_DIR is set (fullstack image)
	// 2) Dev proxy if SITE_DEV_FRONTEND_URL is set (proxy / to the dev server)
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	} else if cfg.DevFrontendURL != "" {
		if u, err := url.Parse(cfg.DevFrontendURL); err == nil {
			rp := httputil.NewSingleHostReverseProxy(u)
			rp.ModifyResponse = func(res *http.Response) error {
				res.Header.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
				res.Header.Set("Pragma", "no-cache")
				res.Header.Set("Expires", "0")
				return nil
			}
			mux.Handle("/", rp)
		} else {
			logger.Error().Err(err).Str("url", cfg.DevFrontendURL).Msg("invalid SITE_DEV_FRONTEND_URL")
		}
	}

	handler := middleware.SecureHeaders(middleware.CORS(middleware.NoStore(middleware.LocaleMiddleware(mux))))

	logger.Info().Str("addr", cfg.Addr).Msg("studio-site server listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
