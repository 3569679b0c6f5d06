package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Backend    Backend    `json:"backend"`
	Generation Generation `json:"generation"`
	Send       Send       `json:"send"`
}

// Backend selects and addresses the inference runtime
type Backend struct {
	Name  string `json:"name"`  // ollama or llamacpp
	URL   string `json:"url"`   // server URL, empty for the backend default
	Model string `json:"model"` // model identifier on the server
}

// Generation holds defaults for the generation call
type Generation struct {
	MaxTokens   int  `json:"max_tokens"`
	StripFences bool `json:"strip_fences"`
}

// Send controls how the screenshot is encoded before transport
type Send struct {
	Format  string `json:"format"`   // jpg or png
	MaxDim  int    `json:"max_dim"`  // max long side in px, 0=original
	Quality int    `json:"quality"`  // JPEG quality (1-100)
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Backend: Backend{
			Name:  "ollama",
			URL:   "",
			Model: "openbmb/minicpm-v4.5",
		},
		Generation: Generation{
			MaxTokens:   2048,
			StripFences: false,
		},
		Send: Send{
			Format:  "jpg",
			MaxDim:  1536,
			Quality: 85,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backend.Name != "ollama" && c.Backend.Name != "llamacpp" {
		return fmt.Errorf("backend.name must be ollama or llamacpp")
	}

	if c.Backend.Model == "" {
		return fmt.Errorf("backend.model cannot be empty")
	}

	if c.Generation.MaxTokens < 1 {
		return fmt.Errorf("generation.max_tokens must be positive")
	}

	if c.Send.Format != "jpg" && c.Send.Format != "png" {
		return fmt.Errorf("send.format must be jpg or png")
	}

	if c.Send.MaxDim < 0 {
		return fmt.Errorf("send.max_dim cannot be negative")
	}

	if c.Send.Quality < 1 || c.Send.Quality > 100 {
		return fmt.Errorf("send.quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "screenshot-analyzer", "config.json")
}
