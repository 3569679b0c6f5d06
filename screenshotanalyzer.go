// Package screenshotanalyzer turns UI screenshots into markdown documentation
// using a locally hosted vision-language model.
//
// The package wires a small pipeline in front of an inference runtime (Ollama
// or a llama.cpp server): verify the runtime and model are available, load the
// screenshot and force it into plain RGB, then request a bounded markdown
// completion describing the visible interface.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		screenshotanalyzer "github.com/duckdocs/screenshot-analyzer"
//	)
//
//	func main() {
//		app, err := screenshotanalyzer.New()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		ctx := context.Background()
//		if obj := app.CheckDependencies(ctx); obj != nil {
//			log.Fatal(obj.JSON())
//		}
//
//		result := app.Analyze(ctx, "screenshot.png", "", 0)
//		fmt.Println(result.Render())
//	}
//
// The package consists of four main components:
//
// 1. Deps (pkg/deps): capability probes for the runtime and model
// 2. Registry (pkg/registry): process-local cache of resolved model handles
// 3. Processing (pkg/processing): image loading and RGB normalization
// 4. Analyzer (pkg/analyzer): the prompt and generation pipeline
//
// Every analysis produces exactly one printable value. Failures inside the
// pipeline come back as tagged error objects in the result rather than Go
// errors, so success text and failure reports share one output channel.
package screenshotanalyzer

import (
	"context"
	"fmt"

	"github.com/duckdocs/screenshot-analyzer/internal/config"
	"github.com/duckdocs/screenshot-analyzer/pkg/analyzer"
	"github.com/duckdocs/screenshot-analyzer/pkg/client"
	"github.com/duckdocs/screenshot-analyzer/pkg/deps"
	"github.com/duckdocs/screenshot-analyzer/pkg/llamacpp"
	"github.com/duckdocs/screenshot-analyzer/pkg/ollama"
	"github.com/duckdocs/screenshot-analyzer/pkg/registry"
	"github.com/duckdocs/screenshot-analyzer/pkg/types"
)

// Version of the screenshot analyzer library
const Version = "1.0.0"

// ScreenshotAnalyzer provides a high-level interface for screenshot analysis
type ScreenshotAnalyzer struct {
	config   *config.Config
	checker  *deps.Checker
	analyzer *analyzer.Analyzer
}

// New creates a new ScreenshotAnalyzer with default configuration
func New() (*ScreenshotAnalyzer, error) {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates a new ScreenshotAnalyzer with custom configuration
func NewWithConfig(cfg *config.Config) (*ScreenshotAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	visionClient, err := newVisionClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClient(cfg, visionClient)
}

// NewWithClient creates a ScreenshotAnalyzer over an explicit vision client.
// Tests use this to substitute a stubbed runtime.
func NewWithClient(cfg *config.Config, visionClient client.VisionClient) (*ScreenshotAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	checker := deps.NewChecker(
		&deps.RuntimeCapability{Client: visionClient, Runtime: cfg.Backend.Name},
		&deps.ModelCapability{Client: visionClient, Model: cfg.Backend.Model},
	)

	reg := registry.NewWithClient(visionClient)
	pipeline := analyzer.NewWithConfig(reg, analyzer.Config{
		Model:       cfg.Backend.Model,
		SendFormat:  cfg.Send.Format,
		SendMaxDim:  cfg.Send.MaxDim,
		SendQuality: cfg.Send.Quality,
		StripFences: cfg.Generation.StripFences,
	})

	return &ScreenshotAnalyzer{
		config:   cfg,
		checker:  checker,
		analyzer: pipeline,
	}, nil
}

// newVisionClient creates the backend client named by the configuration
func newVisionClient(cfg *config.Config) (client.VisionClient, error) {
	switch cfg.Backend.Name {
	case "ollama":
		url := cfg.Backend.URL
		if url == "" {
			url = "http://localhost:11434"
		}
		return ollama.NewClient(url)
	case "llamacpp":
		return llamacpp.NewClient(cfg.Backend.URL)
	default:
		return nil, fmt.Errorf("unknown backend: %s (use 'ollama' or 'llamacpp')", cfg.Backend.Name)
	}
}

// CheckDependencies probes the runtime and model. It returns nil when both are
// available, otherwise a missing_dependencies error object.
func (s *ScreenshotAnalyzer) CheckDependencies(ctx context.Context) *types.ErrorObject {
	return s.checker.Check(ctx)
}

// Analyze runs one screenshot through the pipeline. An empty prompt selects
// the built-in documentation prompt; maxTokens <= 0 selects the configured
// default.
func (s *ScreenshotAnalyzer) Analyze(ctx context.Context, imagePath, prompt string, maxTokens int) types.Result {
	if maxTokens <= 0 {
		maxTokens = s.config.Generation.MaxTokens
	}
	return s.analyzer.Analyze(ctx, imagePath, prompt, maxTokens)
}

// Config returns the active configuration
func (s *ScreenshotAnalyzer) Config() *config.Config {
	return s.config
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
