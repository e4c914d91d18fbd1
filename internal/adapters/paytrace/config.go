package paytrace

import (
	"strings"

	pkgerrors "github.com/kevin07696/paytrace-gateway/pkg/errors"
)

const (
	// ProductionURL is the live PayTrace API host
	ProductionURL = "https://api.paytrace.com"
	// SandboxURL is the PayTrace sandbox host
	SandboxURL = "https://api.sandbox.paytrace.com"

	apiVersionPath = "/v1/"
	tokenPath      = "/oauth/token"
)

// Endpoint paths relative to {base}/v1/
const (
	endpointKeyedSale         = "transactions/sale/keyed"
	endpointCustomerSale      = "transactions/sale/by_customer"
	endpointKeyedAuth         = "transactions/authorization/keyed"
	endpointCustomerAuth      = "transactions/authorization/by_customer"
	endpointCapture           = "transactions/authorization/capture"
	endpointRefundTransaction = "transactions/refund/for_transaction"
	endpointRefundKeyed       = "transactions/refund/keyed"
	endpointVoid              = "transactions/void"
	endpointCustomerCreate    = "customer/create"
	endpointCustomerUpdate    = "customer/update"
	endpointCustomerDelete    = "customer/delete"
	endpointLevel3Visa        = "level_three/visa"
	endpointLevel3Mastercard  = "level_three/mastercard"
)

// Credentials authenticate every PayTrace call. Username and password are exchanged for
// an OAuth access token and are also echoed in each JSON payload with the integrator id.
type Credentials struct {
	Username     string
	Password     string
	IntegratorID string
	AccessToken  string // optional; acquired on construction when empty
}

// Config contains configuration for the PayTrace gateway
type Config struct {
	// Sandbox: https://api.sandbox.paytrace.com
	// Production: https://api.paytrace.com
	BaseURL     string
	Credentials Credentials
}

// DefaultConfig returns the configuration for the named environment ("sandbox" or
// "production") without credentials
func DefaultConfig(environment string) *Config {
	baseURL := ProductionURL
	if environment == "sandbox" {
		baseURL = SandboxURL
	}
	return &Config{BaseURL: baseURL}
}

// IsTest reports whether the gateway points at the sandbox
func (c *Config) IsTest() bool {
	return strings.Contains(c.BaseURL, "sandbox")
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return pkgerrors.NewValidationError("base_url", "is required")
	}
	if c.Credentials.Username == "" {
		return pkgerrors.NewValidationError("username", "is required")
	}
	if c.Credentials.Password == "" {
		return pkgerrors.NewValidationError("password", "is required")
	}
	if c.Credentials.IntegratorID == "" {
		return pkgerrors.NewValidationError("integrator_id", "is required")
	}
	return nil
}

func (c *Config) endpointURL(endpoint string) string {
	return strings.TrimRight(c.BaseURL, "/") + apiVersionPath + endpoint
}

func tokenURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + tokenPath
}
