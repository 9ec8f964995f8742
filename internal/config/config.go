package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every tunable part of the application.
type Config struct {
	App   AppConfig
	Store StoreConfig
	Log   LogConfig
	CORS  CORSConfig
}

// AppConfig contains settings related to the HTTP server.
type AppConfig struct {
	Port string
	Env  string
}

// StoreConfig locates the persisted JSON document.
type StoreConfig struct {
	Path string
}

// LogConfig controls logger behavior.
type LogConfig struct {
	Level string
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	Origins []string
}

// Load reads environment variables and validates the final configuration.
func Load() (Config, error) {
	cfg := Config{
		App: AppConfig{
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "dev"),
		},
		Store: StoreConfig{
			Path: getEnv("DB_PATH", "data/db.json"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
		CORS: CORSConfig{
			Origins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	if port, err := strconv.Atoi(cfg.App.Port); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: must be a number", cfg.App.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d: must be between 1 and 65535", port)
	}

	if cfg.Store.Path == "" {
		return fmt.Errorf("missing required configuration: DB_PATH")
	}

	return nil
}

func getEnv(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
