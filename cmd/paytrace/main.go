package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kevin07696/paytrace-gateway/internal/adapters/paytrace"
	"github.com/kevin07696/paytrace-gateway/internal/adapters/ports"
	"github.com/kevin07696/paytrace-gateway/internal/adapters/secrets"
	"github.com/kevin07696/paytrace-gateway/internal/config"
	"github.com/kevin07696/paytrace-gateway/internal/domain/models"
	"github.com/kevin07696/paytrace-gateway/pkg/encoding"
	pkghttp "github.com/kevin07696/paytrace-gateway/pkg/http"
	"github.com/kevin07696/paytrace-gateway/pkg/observability"
	"github.com/kevin07696/paytrace-gateway/pkg/resilience"
	"github.com/kevin07696/paytrace-gateway/pkg/security"
	"go.uber.org/zap"
)

func main() {
	var (
		action        = flag.String("action", "", "Action to perform: scrub, token, verify, void")
		cardNumber    = flag.String("card", "", "Card number for verify")
		expMonth      = flag.Int("exp-month", 0, "Card expiration month for verify")
		expYear       = flag.Int("exp-year", 0, "Card expiration year (4 digits) for verify")
		cvv           = flag.String("cvv", "", "Card security code for verify (optional)")
		zip           = flag.String("zip", "", "Billing zip for verify (optional)")
		transactionID = flag.String("transaction", "", "Transaction ID for void")
	)
	flag.Parse()

	if *action == "" {
		fmt.Println("Usage: paytrace -action=<action> [options]")
		fmt.Println("Actions:")
		fmt.Println("  scrub  - Filter secrets from a wire transcript on stdin")
		fmt.Println("  token  - Acquire an OAuth access token")
		fmt.Println("  verify - Verify a card (-card -exp-month -exp-year)")
		fmt.Println("  void   - Void a transaction (-transaction)")
		os.Exit(1)
	}

	// scrub needs neither credentials nor network
	if *action == "scrub" {
		transcript, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to read stdin:", err)
			os.Exit(1)
		}
		fmt.Print(paytrace.Scrub(string(transcript)))
		return
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := security.BuildZapLogger(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := newSecretSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize credentials source", zap.Error(err))
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}

	if cfg.Metrics.Enabled {
		health := observability.NewHealthChecker()
		health.Register("credentials", func(ctx context.Context) error {
			_, err := resolveCredentials(ctx, cfg, source)
			return err
		})
		server := observability.StartMetricsServer(cfg.Metrics.Addr, health, logger)
		defer func() {
			if err := observability.ShutdownMetricsServer(server); err != nil {
				logger.Error("Metrics server shutdown error", zap.Error(err))
			}
		}()
		logger.Info("Metrics server started", zap.String("address", cfg.Metrics.Addr))
	}

	creds, err := resolveCredentials(ctx, cfg, source)
	if err != nil {
		logger.Fatal("Failed to load PayTrace credentials", zap.Error(err))
	}

	gatewayCfg := paytrace.DefaultConfig(cfg.PayTrace.Environment)
	if cfg.PayTrace.BaseURL != "" {
		gatewayCfg.BaseURL = cfg.PayTrace.BaseURL
	}
	gatewayCfg.Credentials = creds

	portLogger := security.NewZapLogger(logger)
	httpClient := pkghttp.NewHTTPClient(pkghttp.PayTraceClientConfig(), cfg.PayTrace.Timeout)
	transport := paytrace.NewHTTPTransport(httpClient, portLogger)

	logger.Info("PayTrace gateway configured",
		zap.String("environment", cfg.PayTrace.Environment),
		zap.String("base_url", gatewayCfg.BaseURL),
		zap.String("credentials_source", cfg.Credentials.Source),
	)

	if *action == "token" {
		token, err := paytrace.AcquireAccessToken(ctx, transport, gatewayCfg.BaseURL, gatewayCfg.Credentials)
		if err != nil {
			logger.Fatal("Failed to acquire access token", zap.Error(err))
		}
		fmt.Println(token)
		return
	}

	gateway, err := paytrace.New(ctx, *gatewayCfg, transport, portLogger)
	if err != nil {
		logger.Fatal("Failed to create PayTrace gateway", zap.Error(err))
	}

	var outcome *models.Outcome
	switch *action {
	case "verify":
		card := &models.CreditCard{
			Number:   *cardNumber,
			ExpMonth: *expMonth,
			ExpYear:  *expYear,
			CVV:      *cvv,
		}
		var opts models.TransactionOptions
		if *zip != "" {
			opts.BillingAddress = &models.Address{Zip: *zip}
		}
		outcome, err = gateway.Verify(ctx, card, opts)
	case "void":
		if *transactionID == "" {
			logger.Fatal("-transaction is required for void")
		}
		outcome, err = gateway.Void(ctx, *transactionID)
	default:
		logger.Fatal("Unknown action", zap.String("action", *action))
	}
	if err != nil {
		logger.Fatal("PayTrace call failed", zap.String("action", *action), zap.Error(err))
	}

	if err := printOutcome(outcome); err != nil {
		logger.Fatal("Failed to print outcome", zap.Error(err))
	}
	if outcome.Failed() {
		logger.Sync()
		os.Exit(2)
	}
}

// newSecretSource returns nil for the env source
func newSecretSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	c := cfg.Credentials
	switch c.Source {
	case config.SourceLocal:
		return secrets.NewLocalSecretManager(c.LocalPath, logger), nil
	case config.SourceAWS:
		awsCfg := secrets.DefaultAWSSecretsManagerConfig(c.AWSRegion)
		awsCfg.Profile = c.AWSProfile
		awsCfg.Endpoint = c.AWSEndpoint
		return secrets.NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)
	case config.SourceVault:
		vaultCfg := secrets.DefaultVaultConfig(c.VaultAddress)
		vaultCfg.AuthMethod = c.VaultAuthMethod
		vaultCfg.Token = c.VaultToken
		vaultCfg.RoleID = c.VaultRoleID
		vaultCfg.SecretID = c.VaultSecretID
		vaultCfg.K8sRole = c.VaultK8sRole
		vaultCfg.MountPath = c.VaultMountPath
		vaultCfg.Namespace = c.VaultNamespace
		return secrets.NewVaultAdapter(ctx, vaultCfg, logger)
	case config.SourceGCP:
		return secrets.NewGCPSecretManager(ctx, secrets.DefaultGCPSecretManagerConfig(c.GCPProjectID), logger)
	default:
		return nil, nil
	}
}

func resolveCredentials(ctx context.Context, cfg *config.Config, source ports.SecretManagerAdapter) (paytrace.Credentials, error) {
	if source == nil {
		return paytrace.Credentials{
			Username:     cfg.PayTrace.Username,
			Password:     cfg.PayTrace.Password,
			IntegratorID: cfg.PayTrace.IntegratorID,
			AccessToken:  cfg.PayTrace.AccessToken,
		}, nil
	}

	policy := resilience.RetryPolicy{MaxAttempts: 4, Backoff: resilience.CredentialFetchBackoff()}
	creds, err := secrets.LoadCredentialsWithRetry(ctx, source, cfg.Credentials.SecretPath, policy)
	if err != nil {
		return paytrace.Credentials{}, err
	}
	if creds.AccessToken == "" {
		creds.AccessToken = cfg.PayTrace.AccessToken
	}
	return creds, nil
}

type outcomeView struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	ErrorCode     string              `json:"error_code,omitempty"`
	Authorization string              `json:"authorization,omitempty"`
	ResponseCode  int                 `json:"response_code"`
	AVSResponse   string              `json:"avs_response,omitempty"`
	CSCResponse   string              `json:"csc_response,omitempty"`
	Errors        map[string][]string `json:"errors,omitempty"`
	Test          bool                `json:"test"`
}

func printOutcome(outcome *models.Outcome) error {
	out, err := encoding.EncodeJSON(outcomeView{
		Success:       outcome.Success,
		Message:       outcome.Message,
		ErrorCode:     string(outcome.ErrorCode),
		Authorization: outcome.Authorization,
		ResponseCode:  outcome.ResponseCode,
		AVSResponse:   outcome.AVSResponse,
		CSCResponse:   outcome.CSCResponse,
		Errors:        outcome.Errors,
		Test:          outcome.Test,
	})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
