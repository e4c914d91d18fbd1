package secrets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	secretsmanagertypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/kevin07696/paytrace-gateway/internal/adapters/ports"
	"github.com/kevin07696/paytrace-gateway/pkg/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const credentialsJSON = `{"username":"integrations@example.com","password":"ErNsphFQUEbjx2Hx6uT3MgJf","integrator_id":"9575315uXt4u"}`

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials("\n" + credentialsJSON + "\n")

	require.NoError(t, err)
	assert.Equal(t, "integrations@example.com", creds.Username)
	assert.Equal(t, "ErNsphFQUEbjx2Hx6uT3MgJf", creds.Password)
	assert.Equal(t, "9575315uXt4u", creds.IntegratorID)
	assert.Empty(t, creds.AccessToken)
}

func TestParseCredentials_Invalid(t *testing.T) {
	_, err := ParseCredentials("username=me")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = ParseCredentials(`{"username":"me"}`)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorContains(t, err, "missing password, integrator_id")
}

type flakySource struct {
	failures int
	err      error
	value    string
	calls    int
}

func (f *flakySource) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &ports.Secret{Value: f.value}, nil
}

func retryPolicy() resilience.RetryPolicy {
	return resilience.RetryPolicy{MaxAttempts: 3, Backoff: &resilience.FixedBackoff{Delay: time.Millisecond}}
}

func TestLoadCredentialsWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("transient failure is retried", func(t *testing.T) {
		source := &flakySource{failures: 2, err: errors.New("connection reset"), value: credentialsJSON}

		creds, err := LoadCredentialsWithRetry(ctx, source, "paytrace/production", retryPolicy())

		require.NoError(t, err)
		assert.Equal(t, "integrations@example.com", creds.Username)
		assert.Equal(t, 3, source.calls)
	})

	t.Run("missing secret is not retried", func(t *testing.T) {
		source := &flakySource{failures: 5, err: ErrSecretNotFound}

		_, err := LoadCredentialsWithRetry(ctx, source, "paytrace/production", retryPolicy())

		assert.ErrorIs(t, err, ErrSecretNotFound)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("invalid document is not retried", func(t *testing.T) {
		source := &flakySource{value: `{"username":"me"}`}

		_, err := LoadCredentialsWithRetry(ctx, source, "paytrace/production", retryPolicy())

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, 1, source.calls)
	})
}

func TestLocalSecretManager(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "paytrace"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paytrace", "sandbox.json"), []byte(credentialsJSON), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrapped.json"), []byte(`{"value":"s3cret","tags":{"env":"dev"}}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paytrace", "sandbox.yaml"), []byte(
		"username: integrations@example.com\npassword: ErNsphFQUEbjx2Hx6uT3MgJf\nintegrator_id: 9575315uXt4u\naccess_token: \"96e647567627164796f6e63704d6f\"\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("username: [unclosed\n"), 0600))

	manager := NewLocalSecretManager(dir, zap.NewNop())
	ctx := context.Background()

	t.Run("bare credentials document", func(t *testing.T) {
		creds, err := LoadCredentials(ctx, manager, "paytrace/sandbox.json")
		require.NoError(t, err)
		assert.Equal(t, "9575315uXt4u", creds.IntegratorID)
	})

	t.Run("wrapped value", func(t *testing.T) {
		secret, err := manager.GetSecret(ctx, "wrapped.json")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", secret.Value)
		assert.Equal(t, "dev", secret.Metadata["env"])
	})

	t.Run("yaml credentials document", func(t *testing.T) {
		creds, err := LoadCredentials(ctx, manager, "paytrace/sandbox.yaml")
		require.NoError(t, err)
		assert.Equal(t, "integrations@example.com", creds.Username)
		assert.Equal(t, "9575315uXt4u", creds.IntegratorID)
		assert.Equal(t, "96e647567627164796f6e63704d6f", creds.AccessToken)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := manager.GetSecret(ctx, "broken.yml")
		assert.ErrorContains(t, err, "failed to parse secret broken.yml")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := manager.GetSecret(ctx, "missing.json")
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})

	t.Run("path cannot escape base directory", func(t *testing.T) {
		_, err := manager.GetSecret(ctx, "../../etc/passwd")
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})
}

type fakeSecretsManager struct {
	calls  int
	output *secretsmanager.GetSecretValueOutput
	err    error
}

func (f *fakeSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	return f.output, f.err
}

func TestAWSSecretsManagerAdapter_GetSecret(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeSecretsManager{output: &secretsmanager.GetSecretValueOutput{
		ARN:          aws.String("arn:aws:secretsmanager:us-east-1:123456789012:secret:paytrace/production/api-AbCdEf"),
		Name:         aws.String("paytrace/production/api"),
		SecretString: aws.String(credentialsJSON),
		VersionId:    aws.String("v-42"),
		CreatedDate:  &created,
	}}
	adapter := newAWSSecretsManagerAdapter(fake, DefaultAWSSecretsManagerConfig("us-east-1"), zap.NewNop())

	creds, err := LoadCredentials(context.Background(), adapter, "paytrace/production/api")
	require.NoError(t, err)
	assert.Equal(t, "integrations@example.com", creds.Username)

	secret, err := adapter.GetSecret(context.Background(), "paytrace/production/api")
	require.NoError(t, err)
	assert.Equal(t, "v-42", secret.Version)
	assert.Equal(t, "2025-03-01T12:00:00Z", secret.CreatedAt)
	assert.Equal(t, "paytrace/production/api", secret.Metadata["name"])
	assert.Equal(t, 1, fake.calls, "second read should be served from cache")
}

func TestAWSSecretsManagerAdapter_NotFound(t *testing.T) {
	fake := &fakeSecretsManager{err: &secretsmanagertypes.ResourceNotFoundException{Message: aws.String("Secrets Manager can't find the specified secret.")}}
	adapter := newAWSSecretsManagerAdapter(fake, DefaultAWSSecretsManagerConfig("us-east-1"), zap.NewNop())

	_, err := adapter.GetSecret(context.Background(), "paytrace/missing")

	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestAWSSecretsManagerAdapter_Error(t *testing.T) {
	cause := errors.New("AccessDeniedException")
	fake := &fakeSecretsManager{err: cause}
	cfg := DefaultAWSSecretsManagerConfig("us-east-1")
	cfg.EnableCache = false
	adapter := newAWSSecretsManagerAdapter(fake, cfg, zap.NewNop())

	_, err := adapter.GetSecret(context.Background(), "paytrace/production/api")

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSecretNotFound)
}

func TestVaultAdapter_GetSecret(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "vault-token", r.Header.Get("X-Vault-Token"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/secret/data/paytrace/production":
			w.Write([]byte(`{"data":{"data":{"username":"integrations@example.com","password":"ErNsphFQUEbjx2Hx6uT3MgJf","integrator_id":"9575315uXt4u"},"metadata":{"version":3,"created_time":"2025-03-01T12:00:00Z"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[]}`))
		}
	}))
	defer server.Close()

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "vault-token"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	secret, err := adapter.GetSecret(context.Background(), "paytrace/production")
	require.NoError(t, err)
	assert.Equal(t, "3", secret.Version)
	assert.Equal(t, "2025-03-01T12:00:00Z", secret.CreatedAt)

	creds, err := ParseCredentials(secret.Value)
	require.NoError(t, err)
	assert.Equal(t, "9575315uXt4u", creds.IntegratorID)

	_, err = adapter.GetSecret(context.Background(), "paytrace/production")
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())

	_, err = adapter.GetSecret(context.Background(), "paytrace/missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestVaultAdapter_RequiresToken(t *testing.T) {
	_, err := NewVaultAdapter(context.Background(), DefaultVaultConfig("http://127.0.0.1:8200"), zap.NewNop())

	assert.ErrorContains(t, err, "token is required")
}

func TestSecretValue(t *testing.T) {
	v, err := secretValue(map[string]interface{}{"value": "plain"})
	require.NoError(t, err)
	assert.Equal(t, "plain", v)

	v, err = secretValue(map[string]interface{}{"username": "u", "password": "p", "rotation": 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"u","password":"p"}`, v)

	_, err = secretValue(map[string]interface{}{})
	assert.Error(t, err)
}

func TestSecretCache(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := newSecretCache(true, time.Minute)
	cache.now = func() time.Time { return now }

	secret := &ports.Secret{Value: "v"}
	cache.set("k", secret)
	assert.Same(t, secret, cache.get("k"))

	now = now.Add(2 * time.Minute)
	assert.Nil(t, cache.get("k"))

	disabled := newSecretCache(false, time.Minute)
	disabled.set("k", secret)
	assert.Nil(t, disabled.get("k"))
}
