package types

import "encoding/json"

// Error kinds reported on stdout. These are wire values consumed by callers,
// do not rename.
const (
	ErrMissingDependencies = "missing_dependencies"
	ErrFileNotFound        = "file_not_found"
	ErrModelLoadFailed     = "model_load_failed"
	ErrImageLoadFailed     = "image_load_failed"
	ErrGenerationFailed    = "generation_failed"
)

// ErrorObject is the uniform failure report printed to stdout. Only the
// fields relevant to a given kind are populated; the rest are omitted from
// the JSON output.
type ErrorObject struct {
	Error          string   `json:"error"`
	Message        string   `json:"message,omitempty"`
	Path           string   `json:"path,omitempty"`
	Model          string   `json:"model,omitempty"`
	Packages       []string `json:"packages,omitempty"`
	InstallCommand string   `json:"install_command,omitempty"`
}

// NewMissingDependencies reports unresolved capabilities together with the
// command that installs them.
func NewMissingDependencies(packages []string, installCommand string) *ErrorObject {
	return &ErrorObject{
		Error:          ErrMissingDependencies,
		Packages:       packages,
		InstallCommand: installCommand,
	}
}

// NewFileNotFound reports a nonexistent input path.
func NewFileNotFound(path string) *ErrorObject {
	return &ErrorObject{Error: ErrFileNotFound, Path: path}
}

// NewModelLoadFailed reports a model that could not be resolved by the runtime.
func NewModelLoadFailed(model string, err error) *ErrorObject {
	return &ErrorObject{Error: ErrModelLoadFailed, Message: err.Error(), Model: model}
}

// NewImageLoadFailed reports an image that could not be opened or decoded.
func NewImageLoadFailed(path string, err error) *ErrorObject {
	return &ErrorObject{Error: ErrImageLoadFailed, Message: err.Error(), Path: path}
}

// NewGenerationFailed reports a failed generation call.
func NewGenerationFailed(err error) *ErrorObject {
	return &ErrorObject{Error: ErrGenerationFailed, Message: err.Error()}
}

// JSON returns the compact JSON encoding of the error object.
func (e *ErrorObject) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		// Fields are plain strings and slices, marshal cannot fail in practice.
		return `{"error":"` + e.Error + `"}`
	}
	return string(data)
}

// Result is the single value produced by one analysis. Either Text holds the
// generated markdown, or Err holds a tagged error object; never both. Analyzer
// failures are values, not Go errors, so both outcomes travel through the same
// output channel.
type Result struct {
	Text string
	Err  *ErrorObject
}

// TextResult wraps generated text in a successful Result.
func TextResult(text string) Result {
	return Result{Text: text}
}

// ErrorResult wraps a tagged error object in a failed Result.
func ErrorResult(obj *ErrorObject) Result {
	return Result{Err: obj}
}

// Failed reports whether the result carries an error object.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Render returns the printable form of the result: the generated text on
// success, or the error object's JSON encoding on failure. Callers that wrap
// the output in a JSON envelope embed exactly this string.
func (r Result) Render() string {
	if r.Err != nil {
		return r.Err.JSON()
	}
	return r.Text
}

// GenerateRequest carries one generation call to a vision client.
type GenerateRequest struct {
	Model     string
	Prompt    string
	Image     []byte // encoded image file contents (JPEG or PNG)
	MaxTokens int
}
