package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kevin07696/paytrace-gateway/internal/adapters/paytrace"
	"github.com/kevin07696/paytrace-gateway/internal/adapters/ports"
	"github.com/kevin07696/paytrace-gateway/pkg/resilience"
)

// ErrSecretNotFound is returned when the secret path does not exist in the backend
var ErrSecretNotFound = errors.New("secret not found")

// ErrInvalidCredentials is returned when the stored document is not a usable PayTrace account
var ErrInvalidCredentials = errors.New("invalid credentials document")

// credentialsDocument is the stored form of a PayTrace account:
//
//	{"username": "...", "password": "...", "integrator_id": "...", "access_token": "..."}
//
// access_token is optional.
type credentialsDocument struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	IntegratorID string `json:"integrator_id"`
	AccessToken  string `json:"access_token"`
}

// LoadCredentials reads the credentials document stored at path
func LoadCredentials(ctx context.Context, source ports.SecretManagerAdapter, path string) (paytrace.Credentials, error) {
	secret, err := source.GetSecret(ctx, path)
	if err != nil {
		return paytrace.Credentials{}, err
	}
	return ParseCredentials(secret.Value)
}

// LoadCredentialsWithRetry is LoadCredentials with transient backend failures retried.
// Missing secrets and malformed documents fail immediately.
func LoadCredentialsWithRetry(ctx context.Context, source ports.SecretManagerAdapter, path string, policy resilience.RetryPolicy) (paytrace.Credentials, error) {
	policy.Retryable = func(err error) bool {
		return !errors.Is(err, ErrSecretNotFound) && !errors.Is(err, ErrInvalidCredentials)
	}

	var creds paytrace.Credentials
	err := resilience.Retry(ctx, policy, func(ctx context.Context) error {
		var err error
		creds, err = LoadCredentials(ctx, source, path)
		return err
	})
	return creds, err
}

// ParseCredentials decodes a credentials document and checks the required fields
func ParseCredentials(doc string) (paytrace.Credentials, error) {
	var parsed credentialsDocument
	if err := json.Unmarshal([]byte(strings.TrimSpace(doc)), &parsed); err != nil {
		return paytrace.Credentials{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	var missing []string
	if parsed.Username == "" {
		missing = append(missing, "username")
	}
	if parsed.Password == "" {
		missing = append(missing, "password")
	}
	if parsed.IntegratorID == "" {
		missing = append(missing, "integrator_id")
	}
	if len(missing) > 0 {
		return paytrace.Credentials{}, fmt.Errorf("%w: missing %s", ErrInvalidCredentials, strings.Join(missing, ", "))
	}

	return paytrace.Credentials{
		Username:     parsed.Username,
		Password:     parsed.Password,
		IntegratorID: parsed.IntegratorID,
		AccessToken:  parsed.AccessToken,
	}, nil
}
