package paytrace

import (
	"errors"
	"testing"

	pkgerrors "github.com/kevin07696/paytrace-gateway/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	sandbox := DefaultConfig("sandbox")
	assert.Equal(t, SandboxURL, sandbox.BaseURL)
	assert.True(t, sandbox.IsTest())

	production := DefaultConfig("production")
	assert.Equal(t, ProductionURL, production.BaseURL)
	assert.False(t, production.IsTest())

	// anything unrecognized goes live rather than silently to the sandbox
	assert.Equal(t, ProductionURL, DefaultConfig("").BaseURL)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"no access token is fine", func(c *Config) { c.Credentials.AccessToken = "" }, ""},
		{"base url", func(c *Config) { c.BaseURL = "" }, "base_url"},
		{"username", func(c *Config) { c.Credentials.Username = "" }, "username"},
		{"password", func(c *Config) { c.Credentials.Password = "" }, "password"},
		{"integrator id", func(c *Config) { c.Credentials.IntegratorID = "" }, "integrator_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.validate()

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *pkgerrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEndpointURL(t *testing.T) {
	cfg := &Config{BaseURL: "https://api.paytrace.com/"}

	assert.Equal(t, "https://api.paytrace.com/v1/transactions/sale/keyed", cfg.endpointURL(endpointKeyedSale))
	assert.Equal(t, "https://api.paytrace.com/v1/level_three/mastercard", cfg.endpointURL(endpointLevel3Mastercard))
	assert.Equal(t, "https://api.paytrace.com/oauth/token", tokenURL(cfg.BaseURL))
}
