package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestErrorObjectJSON(t *testing.T) {
	obj := NewFileNotFound("missing.png")

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(obj.JSON()), &decoded); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}

	if decoded["error"] != "file_not_found" {
		t.Errorf("expected error kind file_not_found, got %v", decoded["error"])
	}
	if decoded["path"] != "missing.png" {
		t.Errorf("expected path missing.png, got %v", decoded["path"])
	}
	if _, ok := decoded["message"]; ok {
		t.Error("empty fields must be omitted from the output")
	}
}

func TestMissingDependenciesShape(t *testing.T) {
	obj := NewMissingDependencies([]string{"ollama", "minicpm-v4.5"}, "ollama serve && ollama pull minicpm-v4.5")

	var decoded struct {
		Error          string   `json:"error"`
		Packages       []string `json:"packages"`
		InstallCommand string   `json:"install_command"`
	}
	if err := json.Unmarshal([]byte(obj.JSON()), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Error != ErrMissingDependencies {
		t.Errorf("expected %s, got %s", ErrMissingDependencies, decoded.Error)
	}
	if len(decoded.Packages) != 2 {
		t.Errorf("expected 2 packages, got %d", len(decoded.Packages))
	}
	if decoded.InstallCommand == "" {
		t.Error("install command must not be empty")
	}
}

func TestModelLoadFailedShape(t *testing.T) {
	obj := NewModelLoadFailed("minicpm-v4.5", errors.New("no weights"))

	if obj.Error != ErrModelLoadFailed {
		t.Errorf("expected %s, got %s", ErrModelLoadFailed, obj.Error)
	}
	if obj.Model != "minicpm-v4.5" {
		t.Errorf("expected model id, got %q", obj.Model)
	}
	if obj.Message != "no weights" {
		t.Errorf("expected underlying message, got %q", obj.Message)
	}
}

func TestResultRender(t *testing.T) {
	success := TextResult("## Title")
	if success.Failed() {
		t.Error("text result must not report failure")
	}
	if success.Render() != "## Title" {
		t.Errorf("expected text verbatim, got %q", success.Render())
	}

	failure := ErrorResult(NewGenerationFailed(errors.New("boom")))
	if !failure.Failed() {
		t.Error("error result must report failure")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(failure.Render()), &decoded); err != nil {
		t.Fatalf("failed result must render as JSON: %v", err)
	}
	if decoded["error"] != "generation_failed" {
		t.Errorf("expected generation_failed, got %v", decoded["error"])
	}
}
