// File: internal/stack/plan.go
// Brief: Plan file loading and validation.

package stack

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Pendulum-BaaS/pendulum-cli/internal/backend"
)

const (
	planAPIVersion = "pendulum.dev/v1"
	planKind       = "DeploymentPlan"
)

// LoadPlan reads and validates a deployment plan file, returning the ordered
// graph. The plan is static input built once per invocation; nothing in it is
// ever written back.
func LoadPlan(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("plan file: %v", err)}
	}
	defer f.Close()
	return ParsePlan(f)
}

// ParsePlan decodes a plan document and constructs its graph.
func ParsePlan(r io.Reader) (*Graph, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("read plan: %v", err)}
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var pf PlanFile
	if err := dec.Decode(&pf); err != nil {
		return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("parse plan: %v", err)}
	}
	if pf.APIVersion != "" && pf.APIVersion != planAPIVersion {
		return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("unsupported apiVersion %q (want %s)", pf.APIVersion, planAPIVersion)}
	}
	if pf.Kind != "" && pf.Kind != planKind {
		return nil, &backend.ConfigurationError{Detail: fmt.Sprintf("unsupported kind %q (want %s)", pf.Kind, planKind)}
	}
	name := pf.Name
	if name == "" {
		name = "pendulum"
	}
	return NewGraph(name, pf.Stacks)
}
