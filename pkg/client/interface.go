package client

import (
	"context"

	"github.com/duckdocs/screenshot-analyzer/pkg/types"
)

// VisionClient is the capability surface this tool needs from an inference
// runtime. Both the Ollama and llama.cpp backends implement it, and tests
// substitute stubs.
type VisionClient interface {
	// Heartbeat reports whether the inference server is reachable.
	Heartbeat(ctx context.Context) error

	// HasModel reports whether the named model is available on the server.
	HasModel(ctx context.Context, model string) (bool, error)

	// Generate runs one bounded text completion conditioned on the prompt and
	// image, with streaming disabled. It blocks until the runtime finishes.
	Generate(ctx context.Context, req types.GenerateRequest) (string, error)
}
