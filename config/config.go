// Package config resolves process-level settings for the CLI wrapper from
// the environment, with an optional .env file for local runs. Gate
// thresholds are not configured here; they live in gates.Config.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the CLI's environment-resolved defaults. Flags override
// these on the command line.
type Config struct {
	// ScreenshotDir is the default directory scanned for screenshots.
	ScreenshotDir string
	// MotionDir is the default directory holding frame-*.png captures.
	MotionDir string
	// RequireMotion controls whether missing motion frames fail the run.
	RequireMotion bool
	// Verbose enables debug logging.
	Verbose bool
}

// Load reads the environment, merging in a .env file when present. Missing
// variables fall back to the release-pipeline defaults.
func Load() (*Config, error) {
	// Absence of a .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		ScreenshotDir: envOr("BGVERIFY_SCREENSHOT_DIR", "doc/play-store-assets/screenshots/phone"),
		MotionDir:     os.Getenv("BGVERIFY_MOTION_DIR"),
		RequireMotion: envBool("BGVERIFY_REQUIRE_MOTION", true),
		Verbose:       envBool("BGVERIFY_VERBOSE", false),
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
