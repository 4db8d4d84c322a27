// Package config holds the explicit runtime configuration. It is built
// once at startup and threaded through to every component that needs it;
// nothing reads the ambient environment at import time.
package config

//go:generate go run ../tools/schema-generator

import (
	"os"
	"path/filepath"
	"time"
)

// Config describes where sessions live, where scores go, and how the
// watcher behaves.
type Config struct {
	// SessionsDir is the root directory observed for transcript files.
	SessionsDir string `yaml:"sessions_dir,omitempty"`

	// StorePath is the location of the score store document.
	StorePath string `yaml:"store_path,omitempty"`

	// RulesPath optionally points at a YAML rule catalog overriding the
	// built-in rules.
	RulesPath string `yaml:"rules_path,omitempty"`

	// Debounce is the quiet period between a filesystem notification and
	// the read of the named file.
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// Default resolves the default configuration for the current user.
func Default() Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return Config{
		SessionsDir: filepath.Join(homeDir, ".codex", "sessions"),
		StorePath:   filepath.Join(homeDir, ".local", "share", "behaviorscore", "scores.json"),
		Debounce:    100 * time.Millisecond,
	}
}
