package config

import (
	"os"
	"path/filepath"
)

// DataDir resolves the root of all durable assistant data
// (memory/, sessions/, messages/, prd/, skills.yaml).
// Resolution order: $PAI_DATA_DIR, then ~/.pai.
func DataDir() string {
	if env := os.Getenv("PAI_DATA_DIR"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pai")
}

// SettingsPath resolves the settings.json location.
// Resolution order: $PAI_CONFIG_DIR, then the platform config dir.
func SettingsPath() string {
	if env := os.Getenv("PAI_CONFIG_DIR"); env != "" {
		return filepath.Join(env, "settings.json")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = DataDir()
	}
	return filepath.Join(dir, "pai", "settings.json")
}
