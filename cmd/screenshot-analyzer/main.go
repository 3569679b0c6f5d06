package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	screenshotanalyzer "github.com/duckdocs/screenshot-analyzer"
	"github.com/duckdocs/screenshot-analyzer/internal/config"
	"github.com/duckdocs/screenshot-analyzer/internal/utils"
	"github.com/duckdocs/screenshot-analyzer/pkg/types"
)

// newApp builds the application from configuration. Tests swap this to inject
// a stubbed inference runtime.
var newApp = func(cfg *config.Config) (*screenshotanalyzer.ScreenshotAnalyzer, error) {
	return screenshotanalyzer.NewWithConfig(cfg)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	var image, prompt, backend, url, model, configPath string
	var maxTokens, sendSize int
	var checkDeps, jsonOut, stripFences bool

	fs := flag.NewFlagSet("screenshot-analyzer", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&image, "image", "", "path to the image file")
	fs.StringVar(&image, "i", "", "path to the image file (shorthand)")
	fs.StringVar(&prompt, "prompt", "", "custom prompt for analysis")
	fs.StringVar(&prompt, "p", "", "custom prompt for analysis (shorthand)")
	fs.IntVar(&maxTokens, "max-tokens", 0, "maximum tokens to generate (default 2048)")
	fs.IntVar(&maxTokens, "t", 0, "maximum tokens to generate (shorthand)")
	fs.BoolVar(&checkDeps, "check-deps", false, "check if dependencies are available")
	fs.BoolVar(&jsonOut, "json", false, "output result as JSON")

	fs.StringVar(&backend, "backend", "", "backend to use: ollama or llamacpp")
	fs.StringVar(&url, "url", "", "server URL (defaults: ollama=http://localhost:11434, llamacpp=http://localhost:8080)")
	fs.StringVar(&model, "model", "", "model name on the server")
	fs.StringVar(&configPath, "config", "", "config file path")
	fs.IntVar(&sendSize, "sendsize", -1, "max long side sent to the model (px), 0=original")
	fs.BoolVar(&stripFences, "strip-fences", false, "strip a wrapping markdown code fence from the output")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Printf("config: %v", err)
		return 2
	}
	if backend != "" {
		cfg.Backend.Name = backend
	}
	if url != "" {
		cfg.Backend.URL = url
	}
	if model != "" {
		cfg.Backend.Model = model
	}
	if sendSize >= 0 {
		cfg.Send.MaxDim = sendSize
	}
	if stripFences {
		cfg.Generation.StripFences = true
	}
	if maxTokens > 0 {
		cfg.Generation.MaxTokens = maxTokens
	}

	app, err := newApp(cfg)
	if err != nil {
		log.Printf("setup: %v", err)
		return 2
	}

	ctx := context.Background()

	// Dependency check only: always terminates here, success or failure
	if checkDeps {
		if obj := app.CheckDependencies(ctx); obj != nil {
			fmt.Fprintln(stdout, obj.JSON())
			return 1
		}
		fmt.Fprintln(stdout, `{"status": "ok"}`)
		return 0
	}

	if image == "" {
		fmt.Fprintf(os.Stderr, "usage: %s --image input.png [--prompt text] [--max-tokens n] [--json] [--check-deps]\n", fs.Name())
		return 2
	}

	// Verify the image exists before touching the runtime
	if !utils.FileExists(image) {
		fmt.Fprintln(stdout, types.NewFileNotFound(image).JSON())
		return 1
	}

	// Dependencies are fatal; analyzer-level failures below are not
	if obj := app.CheckDependencies(ctx); obj != nil {
		fmt.Fprintln(stdout, obj.JSON())
		return 1
	}

	result := app.Analyze(ctx, image, prompt, maxTokens)

	// An embedded error object still exits 0: callers distinguish failure by
	// inspecting the printed value, not the exit status.
	if jsonOut {
		envelope, err := json.Marshal(map[string]string{"result": result.Render()})
		if err != nil {
			log.Printf("output: %v", err)
			return 2
		}
		fmt.Fprintln(stdout, string(envelope))
	} else {
		fmt.Fprintln(stdout, result.Render())
	}
	return 0
}

// loadConfig reads the named config file, or the default location when it
// exists, or falls back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if def := config.GetConfigPath(); utils.FileExists(def) {
		return config.LoadFromFile(def)
	}
	return config.Default(), nil
}
