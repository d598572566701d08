// Package config resolves all process configuration once at startup.
// Components receive the values they need through constructors; nothing
// reads the environment after main has run Load.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	defaultFastModel     = "gemini-2.0-flash"
	defaultThoroughModel = "gemini-2.5-pro"
)

// Config is immutable shared configuration for the server process.
type Config struct {
	Port string

	// GeminiAPIKey authorizes all reasoning-model calls.
	GeminiAPIKey string
	// FastModel handles classification and image extraction; ThoroughModel
	// handles generation and advice.
	FastModel     string
	ThoroughModel string

	// WorkDir holds per-job compile directories; DataDir holds the
	// file-backed session store.
	WorkDir string
	DataDir string

	// SessionsDatabaseURL, when set, switches session persistence from the
	// file store to Postgres.
	SessionsDatabaseURL string

	// ChromePath points at a Chrome binary for profile-page rendering.
	ChromePath string

	// ClassifyFailOpen controls what a failed classification call maps to:
	// true (default) treats the turn as a generation request, false rejects
	// it. See the classifier for the trade-off.
	ClassifyFailOpen bool
}

// Load reads .env if present, then the environment, applying defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                envOr("PORT", "5050"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		FastModel:           envOr("GEMINI_FAST_MODEL", defaultFastModel),
		ThoroughModel:       envOr("GEMINI_THOROUGH_MODEL", defaultThoroughModel),
		WorkDir:             envOr("WORK_DIR", filepath.Join(os.TempDir(), "latex_resumes")),
		DataDir:             envOr("DATA_DIR", filepath.Join("resume-data", "sessions")),
		SessionsDatabaseURL: os.Getenv("SESSIONS_DATABASE_URL"),
		ChromePath:          os.Getenv("CHROME_PATH"),
		ClassifyFailOpen:    os.Getenv("CLASSIFY_FAIL_OPEN") != "false",
	}

	if err := os.MkdirAll(cfg.WorkDir, 0750); err != nil {
		return cfg, errors.Wrapf(err, "failed to create work dir: %s", cfg.WorkDir)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
