// Package config loads and persists the application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Generation model settings
	Gemini GeminiSettings `json:"gemini"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// GeminiSettings holds the Gemini API credentials and model overrides. Empty
// model fields fall back to the built-in defaults.
type GeminiSettings struct {
	APIKey     string `json:"api_key,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"` // For proxies or test servers
	TextModel  string `json:"text_model,omitempty"`
	ImageModel string `json:"image_model,omitempty"`
	VideoModel string `json:"video_model,omitempty"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme         string `json:"theme"`
	ReducedMotion bool   `json:"reduced_motion"` // Skip transition delays where possible
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// DefaultDataDir returns the per-user data directory.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dripfeed")
}

// ConfigPath returns the path to the config file under dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.json")
}

// Load reads config from disk, or returns defaults. A missing or corrupt file
// is not an error; the environment is consulted for API keys either way.
func Load(dataDir string) (*Config, error) {
	path := ConfigPath(dataDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg2 := DefaultConfig()
		cfg2.AutoPopulateFromEnv()
		return cfg2, nil
	}

	cfg.AutoPopulateFromEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save(dataDir string) error {
	path := ConfigPath(dataDir)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in the API key from environment variables when the
// config file does not carry one.
func (c *Config) AutoPopulateFromEnv() {
	if c.Gemini.APIKey != "" {
		return
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
		return
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
}
