// internal/secrets/secrets.go
//
// Startup secret retrieval.
//
// Context
// -------
// The service needs a fixed, ordered set of secrets (`db-password`,
// `api-key`).  They live in an external secret-versioning service and are
// addressed as
//
//	projects/{projectId}/secrets/{secretName}/versions/latest
//
// `Load` performs exactly one retrieval pass before the HTTP listener opens
// and returns a write-once `*Cache`.  Failures never abort startup.  Each is
// logged, recorded in the cache, and surfaces only as `loaded:false`.
//
// Backends
// --------
//   - GCPAccessor    – Google Secret Manager (default).
//   - VaultAccessor  – HashiCorp Vault KV v2, `<mount>/<project>/<secret>`.
//   - EnvAccessor    – process environment, for local runs.
//
// Notes
// -----
//   - No retries, no refresh, no background goroutines.
//   - Oxford commas, two spaces after periods.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// Name identifies one secret in the store.
type Name string

const (
	DBPassword Name = "db-password"
	APIKey     Name = "api-key"
)

// Required is the fixed, ordered list loaded at startup.
var Required = []Name{DBPassword, APIKey}

// Ref addresses one version of a secret.
type Ref struct {
	Project string
	Secret  Name
	Version string
}

// Latest returns a Ref to the newest version of name.
func Latest(project string, name Name) Ref {
	return Ref{Project: project, Secret: name, Version: "latest"}
}

// String renders the canonical resource name.
func (r Ref) String() string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", r.Project, r.Secret, r.Version)
}

// Accessor fetches the raw payload of one secret version.
type Accessor interface {
	Access(ctx context.Context, ref Ref) ([]byte, error)
}

var (
	// ErrClientUnavailable means no backend client could be created.
	ErrClientUnavailable = errors.New("secret manager client not available")

	// ErrProjectIDMissing means the project id was not configured.
	ErrProjectIDMissing = errors.New("project id not set")

	// ErrInvalidPayload means the payload is not valid UTF-8 text.
	ErrInvalidPayload = errors.New("secret payload is not valid UTF-8")

	// ErrNotFound is returned by backends that can tell a missing secret
	// apart from other failures.
	ErrNotFound = errors.New("secret not found")
)

// AccessError wraps a backend failure for one secret.
type AccessError struct {
	Ref Ref
	Err error
}

func (e *AccessError) Error() string {
	return "accessing secret \"" + e.Ref.String() + "\": " + e.Err.Error()
}

func (e *AccessError) Unwrap() error { return e.Err }

// reason is a short, stable label for metrics and log fields.
func reason(err error) string {
	var ae *AccessError
	switch {
	case err == nil:
		return "loaded"
	case errors.Is(err, ErrClientUnavailable):
		return "client_unavailable"
	case errors.Is(err, ErrProjectIDMissing):
		return "project_id_missing"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &ae):
		return "remote_error"
	default:
		return "error"
	}
}
