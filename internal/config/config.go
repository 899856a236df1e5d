// Package config handles settings persistence and on-disk path resolution.
//
// Settings are a flat key/value JSON object read from settings.json at startup
// and written back on save. Keys that this build does not know about are
// preserved across a load/save round trip.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultModel is used when no model is stored and none is passed per request.
const DefaultModel = "claude-sonnet-4-20250514"

// Settings is the flat settings object. All fields live at the top level of
// settings.json; there is no schema versioning.
type Settings struct {
	AnthropicAPIKey  string `json:"anthropic_api_key" mapstructure:"anthropic_api_key"`
	OpenAIAPIKey     string `json:"openai_api_key" mapstructure:"openai_api_key"`
	GoogleAPIKey     string `json:"google_api_key" mapstructure:"google_api_key"`
	XAIAPIKey        string `json:"xai_api_key" mapstructure:"xai_api_key"`
	PerplexityAPIKey string `json:"perplexity_api_key" mapstructure:"perplexity_api_key"`
	ElevenLabsAPIKey string `json:"elevenlabs_api_key" mapstructure:"elevenlabs_api_key"`
	DefaultModel     string `json:"default_model" mapstructure:"default_model"`
	VoiceEnabled     bool   `json:"voice_enabled" mapstructure:"voice_enabled"`
}

// Defaults returns the settings used when no settings.json exists yet.
func Defaults() Settings {
	return Settings{DefaultModel: DefaultModel}
}

// Store loads and saves settings.json at a fixed path.
type Store struct {
	v    *viper.Viper
	path string
}

// NewStore creates a settings store for the given settings.json path.
func NewStore(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	return &Store{v: v, path: path}
}

// Load reads settings from disk. A missing file yields the defaults.
func (s *Store) Load() (Settings, error) {
	settings := Defaults()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return settings, nil
	}

	if err := s.v.ReadInConfig(); err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if err := s.v.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("parse settings: %w", err)
	}
	if settings.DefaultModel == "" {
		settings.DefaultModel = DefaultModel
	}
	return settings, nil
}

// Save writes settings back to disk, creating the config directory if needed.
// Keys previously read from the file but unknown to Settings stay untouched.
func (s *Store) Save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	s.v.Set("anthropic_api_key", settings.AnthropicAPIKey)
	s.v.Set("openai_api_key", settings.OpenAIAPIKey)
	s.v.Set("google_api_key", settings.GoogleAPIKey)
	s.v.Set("xai_api_key", settings.XAIAPIKey)
	s.v.Set("perplexity_api_key", settings.PerplexityAPIKey)
	s.v.Set("elevenlabs_api_key", settings.ElevenLabsAPIKey)
	s.v.Set("default_model", settings.DefaultModel)
	s.v.Set("voice_enabled", settings.VoiceEnabled)

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Get returns a single raw settings value by key, and whether it was set.
func (s *Store) Get(key string) (any, bool) {
	if !s.v.IsSet(key) {
		return nil, false
	}
	return s.v.Get(key), true
}

// All returns every key/value pair currently loaded.
func (s *Store) All() map[string]any {
	return s.v.AllSettings()
}

// SetRaw sets a single raw value and persists the file.
func (s *Store) SetRaw(key string, value any) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
