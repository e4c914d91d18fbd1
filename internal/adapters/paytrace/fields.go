package paytrace

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kevin07696/paytrace-gateway/internal/domain/models"
	pkgerrors "github.com/kevin07696/paytrace-gateway/pkg/errors"
)

// customerIDLength matches the 24 hex characters PayTrace accepts for generated profiles
const customerIDLength = 24

func validateAmount(amount int64) error {
	if amount < 0 {
		return pkgerrors.NewValidationError("amount", "must not be negative")
	}
	return nil
}

func validateSource(source models.PaymentSource) error {
	if source.Card != nil && source.CustomerID != "" {
		return pkgerrors.NewValidationError("payment_source", "card and customer id are mutually exclusive")
	}
	if source.Card == nil && source.CustomerID == "" {
		return pkgerrors.NewValidationError("payment_source", "card or customer id is required")
	}
	return nil
}

// buildTransactionRequest maps a sale or authorization. Keyed requests carry the card,
// by-customer requests carry only the profile id.
func buildTransactionRequest(amount int64, source models.PaymentSource, opts models.TransactionOptions) (map[string]any, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateSource(source); err != nil {
		return nil, err
	}

	post := map[string]any{}
	addAmount(post, amount)
	if source.IsCustomer() {
		post["customer_id"] = source.CustomerID
	} else {
		addCreditCard(post, source.Card)
	}
	setIfPresent(post, "csc", opts.CSC)
	addAddresses(post, source.Card, opts.BillingAddress, opts.ShippingAddress)
	addCustomerData(post, opts)
	return post, nil
}

func buildCaptureRequest(transactionID string, opts models.CaptureOptions) (map[string]any, error) {
	post := map[string]any{}
	post["transaction_id"] = transactionIDValue(transactionID)
	if opts.Amount != nil {
		if err := validateAmount(*opts.Amount); err != nil {
			return nil, err
		}
		addAmount(post, *opts.Amount)
	}
	return post, nil
}

// buildRefundRequest returns the endpoint along with the payload: a transaction refund
// when an id is given, otherwise a keyed refund of amount against the card.
func buildRefundRequest(transactionID string, opts models.RefundOptions) (string, map[string]any, error) {
	post := map[string]any{}
	if opts.Amount != nil {
		if err := validateAmount(*opts.Amount); err != nil {
			return "", nil, err
		}
		addAmount(post, *opts.Amount)
	}

	if transactionID != "" {
		post["transaction_id"] = transactionIDValue(transactionID)
		return endpointRefundTransaction, post, nil
	}

	if opts.Card == nil {
		return "", nil, pkgerrors.NewValidationError("credit_card", "is required for a refund without a transaction id")
	}
	if opts.Amount == nil {
		return "", nil, pkgerrors.NewValidationError("amount", "is required for a refund without a transaction id")
	}
	addCreditCard(post, opts.Card)
	addAddresses(post, opts.Card, opts.BillingAddress, nil)
	return endpointRefundKeyed, post, nil
}

func buildVoidRequest(transactionID string) map[string]any {
	return map[string]any{"transaction_id": transactionIDValue(transactionID)}
}

func buildStoreRequest(customerID string, card *models.CreditCard, opts models.StoreOptions) map[string]any {
	post := map[string]any{}
	post["customer_id"] = customerID
	addCreditCard(post, card)
	addAddresses(post, card, opts.BillingAddress, nil)
	if opts.Email != "" {
		post["email"] = opts.Email
	}
	return post
}

func buildUnstoreRequest(customerID string) map[string]any {
	return map[string]any{"customer_id": customerID}
}

func addAmount(post map[string]any, amount int64) {
	post["amount"] = models.FormatAmount(amount)
}

func addCreditCard(post map[string]any, card *models.CreditCard) {
	post["credit_card"] = map[string]any{
		"number":           card.Number,
		"expiration_month": card.ExpMonth,
		"expiration_year":  card.ExpYear,
	}
	if card.CVV != "" {
		post["csc"] = card.CVV
	}
}

// addAddresses nests the billing and shipping addresses. The cardholder name is used for
// the billing name when the address does not carry one.
func addAddresses(post map[string]any, card *models.CreditCard, billing, shipping *models.Address) {
	fallbackName := ""
	if card != nil {
		fallbackName = card.Name()
	}
	if fields := addressFields(billing, fallbackName); fields != nil {
		post["billing_address"] = fields
	}
	if fields := addressFields(shipping, ""); fields != nil {
		post["shipping_address"] = fields
	}
}

func addressFields(addr *models.Address, fallbackName string) map[string]any {
	if addr.IsEmpty() {
		return nil
	}

	fields := map[string]any{}
	name := addr.Name
	if name == "" {
		name = fallbackName
	}
	setIfPresent(fields, "name", name)
	setIfPresent(fields, "street_address", addr.Address1)
	setIfPresent(fields, "street_address2", addr.Address2)
	setIfPresent(fields, "city", addr.City)
	setIfPresent(fields, "state", addr.State)
	setIfPresent(fields, "zip", addr.Zip)
	setIfPresent(fields, "country", addr.Country)
	return fields
}

func addCustomerData(post map[string]any, opts models.TransactionOptions) {
	setIfPresent(post, "email", opts.Email)
	setIfPresent(post, "invoice_id", opts.InvoiceID)
	setIfPresent(post, "description", opts.Description)
}

func setIfPresent(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// transactionIDValue sends numeric ids as JSON numbers and anything else verbatim, so a
// malformed id reaches the processor and comes back as a business failure.
func transactionIDValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

func newCustomerID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:customerIDLength]
}
