package secrets

import (
	"context"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/kevin07696/paytrace-gateway/internal/adapters/ports"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GCPSecretManagerConfig contains configuration for GCP Secret Manager
type GCPSecretManagerConfig struct {
	ProjectID   string
	CacheTTL    time.Duration
	EnableCache bool
}

// DefaultGCPSecretManagerConfig returns default configuration
func DefaultGCPSecretManagerConfig(projectID string) *GCPSecretManagerConfig {
	return &GCPSecretManagerConfig{
		ProjectID:   projectID,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

type accessSecretVersionAPI interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// GCPSecretManager implements the SecretManagerAdapter port for Google Cloud Secret Manager.
// Credentials come from the environment: GOOGLE_APPLICATION_CREDENTIALS, workload identity,
// or the default application credentials.
type GCPSecretManager struct {
	client    accessSecretVersionAPI
	close     func() error
	projectID string
	logger    *zap.Logger
	cache     *secretCache
}

// NewGCPSecretManager creates a new GCP Secret Manager adapter
func NewGCPSecretManager(ctx context.Context, cfg *GCPSecretManagerConfig, logger *zap.Logger) (*GCPSecretManager, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is required")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	logger.Info("GCP Secret Manager initialized",
		zap.String("project_id", cfg.ProjectID),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	sm := newGCPSecretManager(client, cfg, logger)
	sm.close = client.Close
	return sm, nil
}

func newGCPSecretManager(client accessSecretVersionAPI, cfg *GCPSecretManagerConfig, logger *zap.Logger) *GCPSecretManager {
	return &GCPSecretManager{
		client:    client,
		close:     func() error { return nil },
		projectID: cfg.ProjectID,
		logger:    logger,
		cache:     newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}
}

// Close closes the underlying client
func (sm *GCPSecretManager) Close() error {
	return sm.close()
}

// GetSecret retrieves the latest version of a secret by short name ("paytrace-production")
// or by full resource name ("projects/p/secrets/s" or ".../versions/3")
func (sm *GCPSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := sm.cache.get(path); cached != nil {
		sm.logger.Debug("Secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	name := sm.versionName(path)
	result, err := sm.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		sm.logger.Error("Failed to access GCP secret",
			zap.String("path", path),
			zap.String("secret_name", name),
			zap.Error(err),
		)
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, path)
		}
		return nil, fmt.Errorf("failed to access GCP secret %s: %w", path, err)
	}

	secret := &ports.Secret{
		Value:   string(result.GetPayload().GetData()),
		Version: versionFromName(result.GetName()),
		Metadata: map[string]string{
			"gcp_project_id": sm.projectID,
			"gcp_secret":     path,
		},
	}
	sm.cache.set(path, secret)

	sm.logger.Info("Secret fetched from GCP",
		zap.String("path", path),
		zap.String("version", secret.Version),
	)
	return secret, nil
}

func (sm *GCPSecretManager) versionName(path string) string {
	name := path
	if !strings.HasPrefix(path, "projects/") {
		name = fmt.Sprintf("projects/%s/secrets/%s", sm.projectID, path)
	}
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}
	return name
}

// versionFromName returns the last segment of projects/{p}/secrets/{s}/versions/{v}
func versionFromName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return "unknown"
}
