package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of gateway operation
type TransactionType string

const (
	TypeSale          TransactionType = "sale"
	TypeAuthorization TransactionType = "authorization"
	TypeCapture       TransactionType = "capture"
	TypeRefund        TransactionType = "refund"
	TypeVoid          TransactionType = "void"
	TypeVerification  TransactionType = "verification"
	TypeStore         TransactionType = "store"
	TypeUnstore       TransactionType = "unstore"
)

// FormatAmount renders a minor-unit amount as a fixed-point decimal string ("1.00")
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// CreditCard is a full card supplied by the caller
type CreditCard struct {
	Number    string
	ExpMonth  int
	ExpYear   int
	CVV       string
	FirstName string
	LastName  string
}

// Name returns the cardholder name
func (c *CreditCard) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// PaymentSource is either a full card or a processor-issued customer profile id.
// Exactly one must be set.
type PaymentSource struct {
	Card       *CreditCard
	CustomerID string
}

// CardSource wraps a card as a payment source
func CardSource(card *CreditCard) PaymentSource {
	return PaymentSource{Card: card}
}

// CustomerSource wraps a stored customer profile id as a payment source
func CustomerSource(customerID string) PaymentSource {
	return PaymentSource{CustomerID: customerID}
}

// IsCustomer reports whether the source references a stored profile
func (p PaymentSource) IsCustomer() bool {
	return p.Card == nil && p.CustomerID != ""
}

// Address is a partial or complete postal address. Empty fields are never transmitted.
type Address struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
}

// IsEmpty reports whether no field is set
func (a *Address) IsEmpty() bool {
	return a == nil || *a == Address{}
}
