package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
	if cfg.Backend.Name != "ollama" {
		t.Errorf("expected ollama default backend, got %q", cfg.Backend.Name)
	}
	if cfg.Generation.MaxTokens != 2048 {
		t.Errorf("expected default max tokens 2048, got %d", cfg.Generation.MaxTokens)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Backend.Name = "llamacpp"
	cfg.Backend.URL = "http://localhost:9999"
	cfg.Generation.MaxTokens = 512
	cfg.Generation.StripFences = true

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if loaded.Backend.Name != "llamacpp" {
		t.Errorf("expected llamacpp, got %q", loaded.Backend.Name)
	}
	if loaded.Backend.URL != "http://localhost:9999" {
		t.Errorf("expected URL preserved, got %q", loaded.Backend.URL)
	}
	if loaded.Generation.MaxTokens != 512 {
		t.Errorf("expected max tokens 512, got %d", loaded.Generation.MaxTokens)
	}
	if !loaded.Generation.StripFences {
		t.Error("expected strip_fences preserved")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.json"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad backend", func(c *Config) { c.Backend.Name = "vllm" }},
		{"empty model", func(c *Config) { c.Backend.Model = "" }},
		{"zero max tokens", func(c *Config) { c.Generation.MaxTokens = 0 }},
		{"bad send format", func(c *Config) { c.Send.Format = "bmp" }},
		{"negative max dim", func(c *Config) { c.Send.MaxDim = -1 }},
		{"quality too high", func(c *Config) { c.Send.Quality = 101 }},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Error("config path must not be empty")
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json filename, got %q", path)
	}
}
