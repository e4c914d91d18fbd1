package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Credential sources
const (
	SourceEnv   = "env"
	SourceLocal = "local"
	SourceAWS   = "aws"
	SourceVault = "vault"
	SourceGCP   = "gcp"
)

// Config holds all application configuration
type Config struct {
	PayTrace    PayTraceConfig
	Credentials CredentialsConfig
	Logger      LoggerConfig
	Metrics     MetricsConfig
}

// PayTraceConfig holds PayTrace gateway configuration
type PayTraceConfig struct {
	Environment string // sandbox or production
	BaseURL     string // overrides the environment's host when set
	Timeout     time.Duration

	// Used when Credentials.Source is "env"
	Username     string
	Password     string
	IntegratorID string
	AccessToken  string // optional pre-issued OAuth token
}

// CredentialsConfig selects where the PayTrace account credentials are read from
type CredentialsConfig struct {
	Source     string // env, local, aws, vault, gcp
	SecretPath string // path/name of the credentials document in the secret backend

	LocalPath string // base directory for the local source

	AWSRegion   string
	AWSProfile  string
	AWSEndpoint string

	VaultAddress    string
	VaultAuthMethod string
	VaultToken      string
	VaultRoleID     string
	VaultSecretID   string
	VaultK8sRole    string
	VaultMountPath  string
	VaultNamespace  string

	GCPProjectID string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		PayTrace: PayTraceConfig{
			Environment:  getEnv("PAYTRACE_ENVIRONMENT", "sandbox"),
			BaseURL:      getEnv("PAYTRACE_BASE_URL", ""),
			Timeout:      time.Duration(getEnvAsInt("PAYTRACE_TIMEOUT", 60)) * time.Second,
			Username:     getEnv("PAYTRACE_USERNAME", ""),
			Password:     getEnv("PAYTRACE_PASSWORD", ""),
			IntegratorID: getEnv("PAYTRACE_INTEGRATOR_ID", ""),
			AccessToken:  getEnv("PAYTRACE_ACCESS_TOKEN", ""),
		},
		Credentials: CredentialsConfig{
			Source:          getEnv("PAYTRACE_CREDENTIALS_SOURCE", SourceEnv),
			SecretPath:      getEnv("PAYTRACE_SECRET_PATH", ""),
			LocalPath:       getEnv("SECRETS_LOCAL_PATH", "./secrets"),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			AWSProfile:      getEnv("AWS_PROFILE", ""),
			AWSEndpoint:     getEnv("AWS_SECRETS_ENDPOINT", ""),
			VaultAddress:    getEnv("VAULT_ADDR", ""),
			VaultAuthMethod: getEnv("VAULT_AUTH_METHOD", "token"),
			VaultToken:      getEnv("VAULT_TOKEN", ""),
			VaultRoleID:     getEnv("VAULT_ROLE_ID", ""),
			VaultSecretID:   getEnv("VAULT_SECRET_ID", ""),
			VaultK8sRole:    getEnv("VAULT_K8S_ROLE", ""),
			VaultMountPath:  getEnv("VAULT_MOUNT_PATH", "secret"),
			VaultNamespace:  getEnv("VAULT_NAMESPACE", ""),
			GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", false),
			Addr:    getEnv("METRICS_ADDR", ":9090"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required fields for the selected environment and credential source
func (c *Config) Validate() error {
	switch c.PayTrace.Environment {
	case "sandbox", "production":
	default:
		return fmt.Errorf("PAYTRACE_ENVIRONMENT must be sandbox or production, got %q", c.PayTrace.Environment)
	}

	if c.PayTrace.Timeout <= 0 {
		return fmt.Errorf("PAYTRACE_TIMEOUT must be positive")
	}

	switch c.Credentials.Source {
	case SourceEnv:
		if c.PayTrace.Username == "" {
			return fmt.Errorf("PAYTRACE_USERNAME is required")
		}
		if c.PayTrace.Password == "" {
			return fmt.Errorf("PAYTRACE_PASSWORD is required")
		}
		if c.PayTrace.IntegratorID == "" {
			return fmt.Errorf("PAYTRACE_INTEGRATOR_ID is required")
		}
		return nil
	case SourceLocal, SourceAWS, SourceVault, SourceGCP:
	default:
		return fmt.Errorf("unsupported PAYTRACE_CREDENTIALS_SOURCE: %s", c.Credentials.Source)
	}

	if c.Credentials.SecretPath == "" {
		return fmt.Errorf("PAYTRACE_SECRET_PATH is required for the %s credentials source", c.Credentials.Source)
	}
	if c.Credentials.Source == SourceVault && c.Credentials.VaultAddress == "" {
		return fmt.Errorf("VAULT_ADDR is required for the vault credentials source")
	}
	if c.Credentials.Source == SourceGCP && c.Credentials.GCPProjectID == "" {
		return fmt.Errorf("GCP_PROJECT_ID is required for the gcp credentials source")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
