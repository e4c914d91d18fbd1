package paytrace

import (
	"context"
	"fmt"

	"github.com/kevin07696/paytrace-gateway/internal/adapters/ports"
	"github.com/kevin07696/paytrace-gateway/internal/domain/models"
	"github.com/kevin07696/paytrace-gateway/pkg/encoding"
	pkgerrors "github.com/kevin07696/paytrace-gateway/pkg/errors"
	"github.com/kevin07696/paytrace-gateway/pkg/observability"
)

// verifyAmount is the nominal authorization used to verify a card (1.00)
const verifyAmount int64 = 100

// Gateway implements the PayTrace card operations. It holds only read-only state after
// New returns and is safe for concurrent use.
type Gateway struct {
	config      Config
	accessToken string
	transport   ports.Transport
	logger      ports.Logger
}

// New creates a gateway with dependency injection. When the credentials carry no access
// token one is acquired from the OAuth endpoint before New returns.
func New(ctx context.Context, cfg Config, transport ports.Transport, logger ports.Logger) (*Gateway, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = ports.NopLogger{}
	}

	token := cfg.Credentials.AccessToken
	if token == "" {
		var err error
		token, err = AcquireAccessToken(ctx, transport, cfg.BaseURL, cfg.Credentials)
		if err != nil {
			return nil, err
		}
		logger.Info("acquired PayTrace access token", ports.String("base_url", cfg.BaseURL))
	}

	return &Gateway{
		config:      cfg,
		accessToken: token,
		transport:   transport,
		logger:      logger,
	}, nil
}

// Purchase charges amount against a card or a stored customer profile
func (g *Gateway) Purchase(ctx context.Context, amount int64, source models.PaymentSource, opts models.TransactionOptions) (*models.Outcome, error) {
	endpoint := endpointKeyedSale
	if source.IsCustomer() {
		endpoint = endpointCustomerSale
	}
	return g.transaction(ctx, models.TypeSale, endpoint, amount, source, opts)
}

// Authorize places a hold for amount without capturing it
func (g *Gateway) Authorize(ctx context.Context, amount int64, source models.PaymentSource, opts models.TransactionOptions) (*models.Outcome, error) {
	endpoint := endpointKeyedAuth
	if source.IsCustomer() {
		endpoint = endpointCustomerAuth
	}
	return g.transaction(ctx, models.TypeAuthorization, endpoint, amount, source, opts)
}

func (g *Gateway) transaction(ctx context.Context, txType models.TransactionType, endpoint string, amount int64, source models.PaymentSource, opts models.TransactionOptions) (*models.Outcome, error) {
	post, err := buildTransactionRequest(amount, source, opts)
	if err != nil {
		return nil, err
	}

	outcome, err := g.commit(ctx, endpoint, post)
	if err == nil {
		outcome, err = g.withEnhancedData(ctx, outcome, outcome.Authorization, opts.EnhancedData, nil)
	}
	g.record(txType, amount, outcome, err)
	return outcome, err
}

// Capture settles a prior authorization, in full or for opts.Amount
func (g *Gateway) Capture(ctx context.Context, transactionID string, opts models.CaptureOptions) (*models.Outcome, error) {
	post, err := buildCaptureRequest(transactionID, opts)
	if err != nil {
		return nil, err
	}

	outcome, err := g.commit(ctx, endpointCapture, post)
	if err == nil {
		outcome, err = g.withEnhancedData(ctx, outcome, transactionID, opts.EnhancedData, opts.Address)
	}

	var amount int64
	if opts.Amount != nil {
		amount = *opts.Amount
	}
	g.record(models.TypeCapture, amount, outcome, err)
	return outcome, err
}

// Refund returns money for a settled transaction. Without a transaction id the refund
// is keyed against opts.Card.
func (g *Gateway) Refund(ctx context.Context, transactionID string, opts models.RefundOptions) (*models.Outcome, error) {
	endpoint, post, err := buildRefundRequest(transactionID, opts)
	if err != nil {
		return nil, err
	}

	outcome, err := g.commit(ctx, endpoint, post)

	var amount int64
	if opts.Amount != nil {
		amount = *opts.Amount
	}
	g.record(models.TypeRefund, amount, outcome, err)
	return outcome, err
}

// Void cancels an unsettled transaction
func (g *Gateway) Void(ctx context.Context, transactionID string) (*models.Outcome, error) {
	outcome, err := g.commit(ctx, endpointVoid, buildVoidRequest(transactionID))
	g.record(models.TypeVoid, 0, outcome, err)
	return outcome, err
}

// Verify authorizes a nominal amount and voids it once approved. The result is the
// authorization outcome; the void is best effort and its failures are only logged.
// Only the verification itself is counted in the transaction metrics.
func (g *Gateway) Verify(ctx context.Context, card *models.CreditCard, opts models.TransactionOptions) (*models.Outcome, error) {
	post, err := buildTransactionRequest(verifyAmount, models.CardSource(card), opts)
	if err != nil {
		return nil, err
	}

	auth, err := g.commit(ctx, endpointKeyedAuth, post)
	if err != nil {
		g.record(models.TypeVerification, 0, nil, err)
		return nil, err
	}

	if auth.Success && auth.Authorization != "" {
		g.voidVerification(ctx, auth.Authorization)
	}

	g.record(models.TypeVerification, 0, auth, nil)
	return auth, nil
}

func (g *Gateway) voidVerification(ctx context.Context, authorization string) {
	void, err := g.commit(ctx, endpointVoid, buildVoidRequest(authorization))
	switch {
	case err != nil:
		observability.RecordVerificationVoid(observability.StatusError)
		g.logger.Warn("verification void failed",
			ports.String("transaction_id", authorization),
			ports.Err(err),
		)
	case !void.Success:
		observability.RecordVerificationVoid(observability.StatusDeclined)
		g.logger.Warn("verification void declined",
			ports.String("transaction_id", authorization),
			ports.Int("response_code", void.ResponseCode),
			ports.String("message", void.Message),
		)
	default:
		observability.RecordVerificationVoid(observability.StatusApproved)
	}
}

// Store creates a customer profile for card, or updates one when opts.Update is set.
// A customer id is generated for new profiles when opts.CustomerID is empty.
func (g *Gateway) Store(ctx context.Context, card *models.CreditCard, opts models.StoreOptions) (*models.Outcome, error) {
	if card == nil {
		return nil, pkgerrors.NewValidationError("credit_card", "is required")
	}

	endpoint := endpointCustomerCreate
	customerID := opts.CustomerID
	if opts.Update {
		if customerID == "" {
			return nil, pkgerrors.NewValidationError("customer_id", "is required to update a profile")
		}
		endpoint = endpointCustomerUpdate
	} else if customerID == "" {
		customerID = newCustomerID()
	}

	outcome, err := g.commit(ctx, endpoint, buildStoreRequest(customerID, card, opts))
	g.record(models.TypeStore, 0, outcome, err)
	return outcome, err
}

// Unstore deletes a customer profile
func (g *Gateway) Unstore(ctx context.Context, customerID string) (*models.Outcome, error) {
	if customerID == "" {
		return nil, pkgerrors.NewValidationError("customer_id", "is required")
	}

	outcome, err := g.commit(ctx, endpointCustomerDelete, buildUnstoreRequest(customerID))
	g.record(models.TypeUnstore, 0, outcome, err)
	return outcome, err
}

// SupportsScrubbing reports that Scrub is implemented
func (g *Gateway) SupportsScrubbing() bool {
	return true
}

// Scrub removes secrets from a wire transcript
func (g *Gateway) Scrub(transcript string) string {
	return Scrub(transcript)
}

// withEnhancedData sends Level 3 detail for transactionID after a successful base call.
// The Level 3 outcome replaces the base one and inherits its ids when it carries none.
func (g *Gateway) withEnhancedData(ctx context.Context, base *models.Outcome, transactionID string, data *models.EnhancedData, sourceFallback *models.Address) (*models.Outcome, error) {
	if !data.Enabled() || !base.Success {
		return base, nil
	}

	outcome, err := g.commit(ctx, enhancedDataEndpoint(data.Brand), buildEnhancedDataRequest(transactionID, data, sourceFallback))
	if err != nil {
		observability.RecordEnhancedData(string(data.Brand), observability.StatusError)
		return nil, fmt.Errorf("enhanced data for transaction %s: %w", transactionID, err)
	}
	observability.RecordEnhancedData(string(data.Brand), statusOf(outcome))

	if outcome.Authorization == "" {
		outcome.Authorization = base.Authorization
		if outcome.Authorization == "" {
			outcome.Authorization = transactionID
		}
	}
	if outcome.TransactionID == 0 {
		outcome.TransactionID = base.TransactionID
	}
	return outcome, nil
}

// commit signs post with the account credentials, sends it and normalizes the answer
func (g *Gateway) commit(ctx context.Context, endpoint string, post map[string]any) (*models.Outcome, error) {
	post["username"] = g.config.Credentials.Username
	post["password"] = g.config.Credentials.Password
	post["integrator_id"] = g.config.Credentials.IntegratorID

	body, err := encoding.EncodeJSON(post)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", endpoint, err)
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + g.accessToken,
	}

	done := observability.TrackGatewayCall(endpoint)
	raw, err := g.transport.Post(ctx, g.config.endpointURL(endpoint), body, headers)
	if err != nil {
		done(observability.ResultError)
		g.logger.Error("PayTrace request failed",
			ports.String("endpoint", endpoint),
			ports.Err(err),
		)
		return nil, fmt.Errorf("paytrace %s: %w", endpoint, err)
	}

	outcome, err := parseResponse(endpoint, raw)
	if err != nil {
		done(observability.ResultError)
		g.logger.Error("unreadable PayTrace response",
			ports.String("endpoint", endpoint),
			ports.Err(err),
		)
		return nil, err
	}
	outcome.Test = g.config.IsTest()

	if outcome.Success {
		done(observability.ResultSuccess)
	} else {
		done(observability.ResultFailure)
	}
	g.logger.Info("PayTrace response",
		ports.String("endpoint", endpoint),
		ports.Bool("success", outcome.Success),
		ports.Int("response_code", outcome.ResponseCode),
	)
	return outcome, nil
}

func (g *Gateway) record(txType models.TransactionType, amount int64, outcome *models.Outcome, err error) {
	if err != nil || outcome == nil {
		observability.RecordPaymentTransaction(string(txType), observability.StatusError, "", amount)
		return
	}
	observability.RecordPaymentTransaction(string(txType), statusOf(outcome), string(outcome.ErrorCode), amount)
}

func statusOf(outcome *models.Outcome) string {
	if outcome.Success {
		return observability.StatusApproved
	}
	return observability.StatusDeclined
}
