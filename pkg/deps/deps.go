package deps

import (
	"context"
	"fmt"
	"strings"

	"github.com/duckdocs/screenshot-analyzer/pkg/client"
	"github.com/duckdocs/screenshot-analyzer/pkg/types"
)

// Capability is one externally provided requirement the tool cannot run
// without. Probing either succeeds immediately or fails; there is no
// transient state worth retrying.
type Capability interface {
	// Name identifies the capability in the missing-dependency report.
	Name() string

	// InstallCommand is the shell command that provides the capability.
	InstallCommand() string

	// Probe checks whether the capability is currently available.
	Probe(ctx context.Context) error
}

// Checker probes a fixed set of capabilities and reports the missing ones.
type Checker struct {
	caps []Capability
}

// NewChecker creates a checker over the given capabilities.
func NewChecker(caps ...Capability) *Checker {
	return &Checker{caps: caps}
}

// Check probes every capability. It returns nil when all are available,
// otherwise a missing_dependencies error object naming the failed ones and a
// combined install command.
func (c *Checker) Check(ctx context.Context) *types.ErrorObject {
	var missing []string
	var installs []string
	for _, capability := range c.caps {
		if err := capability.Probe(ctx); err != nil {
			missing = append(missing, capability.Name())
			installs = append(installs, capability.InstallCommand())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return types.NewMissingDependencies(missing, strings.Join(installs, " && "))
}

// RuntimeCapability probes whether the inference server answers a heartbeat.
type RuntimeCapability struct {
	Client  client.VisionClient
	Runtime string // "ollama" or "llamacpp"
}

func (r *RuntimeCapability) Name() string { return r.Runtime }

func (r *RuntimeCapability) InstallCommand() string {
	if r.Runtime == "llamacpp" {
		return "llama-server --model <model.gguf>"
	}
	return "ollama serve"
}

func (r *RuntimeCapability) Probe(ctx context.Context) error {
	return r.Client.Heartbeat(ctx)
}

// ModelCapability probes whether the configured model is present on the
// inference server.
type ModelCapability struct {
	Client client.VisionClient
	Model  string
}

func (m *ModelCapability) Name() string { return m.Model }

func (m *ModelCapability) InstallCommand() string {
	return fmt.Sprintf("ollama pull %s", m.Model)
}

func (m *ModelCapability) Probe(ctx context.Context) error {
	ok, err := m.Client.HasModel(ctx, m.Model)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("model %q not found on server", m.Model)
	}
	return nil
}
