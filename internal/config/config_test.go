package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Store.Path != "data/db.json" {
		t.Errorf("expected default store path, got %q", cfg.Store.Path)
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "*" {
		t.Errorf("expected wildcard CORS default, got %v", cfg.CORS.Origins)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestLoadCORSList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORS.Origins)
	}
}
