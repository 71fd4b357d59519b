package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.Addr)
	}
	if cfg.SendTimeout != 15*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.SendTimeout)
	}
	if cfg.OwnerEmail == "" || cfg.FromAddress == "" {
		t.Fatalf("owner/from defaults missing: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SITE_ADDR", ":9090")
	t.Setenv("SITE_SEND_TIMEOUT", "5s")
	t.Setenv("RESEND_API_KEY", "re_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.SendTimeout != 5*time.Second || cfg.ResendAPIKey != "re_test" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}
