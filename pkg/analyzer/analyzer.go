package analyzer

import (
	"context"
	"strings"

	"github.com/duckdocs/screenshot-analyzer/pkg/processing"
	"github.com/duckdocs/screenshot-analyzer/pkg/registry"
	"github.com/duckdocs/screenshot-analyzer/pkg/types"
)

// DefaultPrompt asks the model for UI documentation when the caller supplies
// no prompt of their own.
const DefaultPrompt = `Analyze this UI screenshot and generate markdown documentation.

Describe:
1. What UI elements are visible (buttons, menus, text fields, etc.)
2. The current state of the interface
3. Any text content visible
4. The layout and organization

Format your response as clean markdown suitable for documentation.`

// DefaultMaxTokens caps generation length when the caller does not.
const DefaultMaxTokens = 2048

// Config holds configuration for the analyzer
type Config struct {
	Model       string // model identifier requested from the runtime
	SendFormat  string // encoding for the image sent to the model: jpg|png
	SendMaxDim  int    // max long side in px sent to the model, 0=original
	SendQuality int    // JPEG quality for the image sent to the model
	StripFences bool   // strip a surrounding markdown code fence from the output
}

// DefaultConfig returns the analyzer defaults.
func DefaultConfig() Config {
	return Config{
		Model:       "openbmb/minicpm-v4.5",
		SendFormat:  "jpg",
		SendMaxDim:  1536,
		SendQuality: 85,
	}
}

// Analyzer turns a screenshot into a markdown description via a vision model.
// Every failure is returned as a tagged error object inside the Result, never
// as a Go error: callers print exactly one value per invocation either way.
type Analyzer struct {
	registry  *registry.Registry
	processor *processing.Processor
	config    Config
}

// New creates an analyzer with default configuration.
func New(reg *registry.Registry) *Analyzer {
	return NewWithConfig(reg, DefaultConfig())
}

// NewWithConfig creates an analyzer with custom configuration.
func NewWithConfig(reg *registry.Registry, config Config) *Analyzer {
	return &Analyzer{
		registry:  reg,
		processor: processing.NewProcessor(),
		config:    config,
	}
}

// Analyze runs the full pipeline: resolve the model, load and normalize the
// image, request a bounded completion. An empty prompt selects DefaultPrompt;
// maxTokens <= 0 selects DefaultMaxTokens.
func (a *Analyzer) Analyze(ctx context.Context, imagePath, prompt string, maxTokens int) types.Result {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	// Model first, image second: same ordering callers observe in the error
	// objects when both are broken.
	handle, err := a.registry.Resolve(ctx, a.config.Model)
	if err != nil {
		return types.ErrorResult(types.NewModelLoadFailed(a.config.Model, err))
	}

	img, err := a.processor.LoadImageSmart(imagePath)
	if err != nil {
		return types.ErrorResult(types.NewImageLoadFailed(imagePath, err))
	}
	rgb := a.processor.EnsureRGB(img)

	encoded, err := a.processor.PrepareImageForModel(rgb, a.config.SendFormat, a.config.SendMaxDim, a.config.SendQuality)
	if err != nil {
		return types.ErrorResult(types.NewImageLoadFailed(imagePath, err))
	}

	text, err := handle.Client.Generate(ctx, types.GenerateRequest{
		Model:     handle.Model,
		Prompt:    prompt,
		Image:     encoded,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return types.ErrorResult(types.NewGenerationFailed(err))
	}

	if a.config.StripFences {
		text = stripFences(text)
	}
	return types.TextResult(text)
}

// stripFences removes a single markdown code fence wrapping the whole
// response. Some models wrap their markdown output in ```markdown fences
// even when asked not to.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	body := trimmed
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		return s
	}
	if j := strings.LastIndex(body, "```"); j >= 0 {
		body = body[:j]
	} else {
		return s
	}
	return strings.TrimSpace(body)
}
