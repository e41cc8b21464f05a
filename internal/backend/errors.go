// File: internal/backend/errors.go
// Brief: Typed error taxonomy shared by the CLI and orchestrators.

package backend

import "fmt"

// ConfigurationError reports a malformed plan or parameter. It is always
// raised before any backend call is made.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Detail
}

// CredentialError reports a failed identity preflight. Hint carries a
// remediation suggestion surfaced verbatim by the CLI.
type CredentialError struct {
	Hint string
	Err  error
}

func (e *CredentialError) Error() string {
	if e.Err == nil {
		return "credential check failed"
	}
	return "credential check failed: " + e.Err.Error()
}

func (e *CredentialError) Unwrap() error { return e.Err }

// UnavailableError reports that the backend could not be reached at all
// (network partition, endpoint down). Distinct from CredentialError so the
// operator is not sent chasing the wrong remediation.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "provisioning backend unavailable"
	}
	return "provisioning backend unavailable: " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ProvisionError reports that the backend rejected or failed a stack.
// Deploys halt on the first one; already-provisioned stacks are left standing.
type ProvisionError struct {
	Stack  string
	Detail string
}

func (e *ProvisionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("provisioning stack %q failed", e.Stack)
	}
	return fmt.Sprintf("provisioning stack %q failed: %s", e.Stack, e.Detail)
}

// OutputNotFoundError reports a missing stack output or export. Required
// lookups are fatal; informational ones are logged and treated as absent.
type OutputNotFoundError struct {
	Stack    string
	Key      string
	Required bool
}

func (e *OutputNotFoundError) Error() string {
	if e.Stack == "" {
		return fmt.Sprintf("export %q not found", e.Key)
	}
	return fmt.Sprintf("output %q not found on stack %q", e.Key, e.Stack)
}
