package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/duckdocs/screenshot-analyzer/pkg/types"
)

// Client wraps the Ollama API client.
type Client struct {
	client *api.Client
}

// NewClient creates a new Ollama client for the given server URL.
func NewClient(ollamaURL string) (*Client, error) {
	// Parse the provided URL
	parsedURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	// Create base URL from the provided URL (removing path like /api/chat)
	baseURL := &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}

	// Create client with the specified URL, ignoring environment
	client := api.NewClient(baseURL, http.DefaultClient)

	return &Client{client: client}, nil
}

// Heartbeat checks whether the Ollama server is reachable.
func (c *Client) Heartbeat(ctx context.Context) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	return c.client.Heartbeat(ctx)
}

// HasModel reports whether the named model appears in the server's model list.
// A bare name matches any tag of that model.
func (c *Client) HasModel(ctx context.Context, model string) (bool, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	resp, err := c.client.List(ctx)
	if err != nil {
		return false, fmt.Errorf("ollama list error: %v", err)
	}

	want := strings.ToLower(model)
	for _, m := range resp.Models {
		name := strings.ToLower(m.Name)
		if name == want || strings.TrimSuffix(name, ":latest") == want {
			return true, nil
		}
		// "minicpm-v4.5" matches "minicpm-v4.5:8b-q4_K_M"
		if i := strings.IndexByte(name, ':'); i >= 0 && name[:i] == want {
			return true, nil
		}
	}
	return false, nil
}

// Generate runs a single non-streaming chat completion with the image attached
// to the user message. MaxTokens is passed through as num_predict.
func (c *Client) Generate(ctx context.Context, genReq types.GenerateRequest) (string, error) {
	// Add timeout if context doesn't have one (vision models are slow on CPU)
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}

	streamFalse := false
	options := map[string]any{}
	if genReq.MaxTokens > 0 {
		options["num_predict"] = genReq.MaxTokens
	}

	req := &api.ChatRequest{
		Model: genReq.Model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: genReq.Prompt,
				Images:  []api.ImageData{api.ImageData(genReq.Image)},
			},
		},
		Stream:  &streamFalse,
		Options: options,
		// No Format field - the prompt asks for markdown, not JSON
	}

	var responseContent string
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		responseContent = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat error: %v", err)
	}

	if responseContent == "" {
		return "", fmt.Errorf("empty response from ollama")
	}

	return responseContent, nil
}
