package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (JSON credentials document or plain text)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter is a read-only secret source used to provision gateway credentials.
// Supported backends: local filesystem, AWS Secrets Manager, HashiCorp Vault.
// Path format depends on implementation:
//   - Local: relative file path under the base directory
//   - AWS: secret name or ARN, e.g. "paytrace/production/api"
//   - Vault: KV path under the mount, e.g. "paytrace/production"
type SecretManagerAdapter interface {
	// GetSecret retrieves the latest version of a secret.
	// Returns error if the secret does not exist, access is denied, or the backend is
	// unreachable.
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
