package screenshotanalyzer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/duckdocs/screenshot-analyzer/internal/config"
	"github.com/duckdocs/screenshot-analyzer/pkg/types"
)

// fakeRuntime is a canned vision client for facade-level tests
type fakeRuntime struct {
	heartbeatErr error
	hasModel     bool
	response     string
	generateErr  error
}

func (f *fakeRuntime) Heartbeat(ctx context.Context) error { return f.heartbeatErr }

func (f *fakeRuntime) HasModel(ctx context.Context, model string) (bool, error) {
	return f.hasModel, nil
}

func (f *fakeRuntime) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.response, nil
}

func writeTestImage(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{230, 230, 230, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestNewWithConfigValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.Name = "vllm"

	if _, err := NewWithConfig(cfg); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestNewWithConfigBackends(t *testing.T) {
	for _, backend := range []string{"ollama", "llamacpp"} {
		cfg := config.Default()
		cfg.Backend.Name = backend
		if _, err := NewWithConfig(cfg); err != nil {
			t.Errorf("backend %s: unexpected error: %v", backend, err)
		}
	}
}

func TestCheckDependencies(t *testing.T) {
	app, err := NewWithClient(config.Default(), &fakeRuntime{hasModel: true})
	if err != nil {
		t.Fatalf("NewWithClient failed: %v", err)
	}
	if obj := app.CheckDependencies(context.Background()); obj != nil {
		t.Errorf("expected clean check, got %s", obj.JSON())
	}

	app, err = NewWithClient(config.Default(), &fakeRuntime{heartbeatErr: errors.New("refused"), hasModel: true})
	if err != nil {
		t.Fatalf("NewWithClient failed: %v", err)
	}
	obj := app.CheckDependencies(context.Background())
	if obj == nil {
		t.Fatal("expected missing dependencies for unreachable runtime")
	}
	if obj.Error != types.ErrMissingDependencies {
		t.Errorf("expected %s, got %s", types.ErrMissingDependencies, obj.Error)
	}
}

func TestAnalyze(t *testing.T) {
	app, err := NewWithClient(config.Default(), &fakeRuntime{hasModel: true, response: "## Docs"})
	if err != nil {
		t.Fatalf("NewWithClient failed: %v", err)
	}

	result := app.Analyze(context.Background(), writeTestImage(t), "", 0)
	if result.Failed() {
		t.Fatalf("expected success, got %s", result.Render())
	}
	if result.Text != "## Docs" {
		t.Errorf("expected generated text, got %q", result.Text)
	}
}

func TestAnalyzeMissingModel(t *testing.T) {
	app, err := NewWithClient(config.Default(), &fakeRuntime{hasModel: false})
	if err != nil {
		t.Fatalf("NewWithClient failed: %v", err)
	}

	result := app.Analyze(context.Background(), writeTestImage(t), "", 0)
	if !result.Failed() {
		t.Fatal("expected failure for missing model")
	}
	if result.Err.Error != types.ErrModelLoadFailed {
		t.Errorf("expected %s, got %s", types.ErrModelLoadFailed, result.Err.Error)
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() != Version {
		t.Error("GetVersion must return the package version")
	}
}
