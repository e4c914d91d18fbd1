package models

// TransactionOptions are the recognized options for purchase, authorize and verify.
// CSC, when set, is sent in place of the card's own CVV.
type TransactionOptions struct {
	CSC             string
	BillingAddress  *Address
	ShippingAddress *Address
	Email           string
	InvoiceID       string
	Description     string

	EnhancedData *EnhancedData
}

// CaptureOptions are the recognized options for capture.
// Address is the Level 3 source address for the captured transaction.
type CaptureOptions struct {
	Amount       *int64
	Address      *Address
	EnhancedData *EnhancedData
}

// RefundOptions are the recognized options for refund. Amount and Card are only used for
// a keyed refund (no transaction id); with a transaction id Amount makes it partial.
type RefundOptions struct {
	Amount         *int64
	Card           *CreditCard
	BillingAddress *Address
}

// StoreOptions are the recognized options for store. When Update is set the existing
// CustomerID profile is replaced instead of a new one being created.
type StoreOptions struct {
	CustomerID     string
	Update         bool
	BillingAddress *Address
	Email          string
}
