package models

import "sort"

// ErrorCode is the processor-independent classification of a business failure
type ErrorCode string

const (
	ErrorInvalidNumber     ErrorCode = "invalid_number"
	ErrorInvalidExpiryDate ErrorCode = "invalid_expiry_date"
	ErrorInvalidCVC        ErrorCode = "invalid_cvc"
	ErrorExpiredCard       ErrorCode = "expired_card"
	ErrorIncorrectCVC      ErrorCode = "incorrect_cvc"
	ErrorIncorrectZip      ErrorCode = "incorrect_zip"
	ErrorIncorrectAddress  ErrorCode = "incorrect_address"
	ErrorCardDeclined      ErrorCode = "card_declined"
	ErrorProcessingError   ErrorCode = "processing_error"
	ErrorCallIssuer        ErrorCode = "call_issuer"
	ErrorPickupCard        ErrorCode = "pickup_card"
	ErrorConfigError       ErrorCode = "config_error"
	ErrorInvalidAmount     ErrorCode = "invalid_amount"
)

// Outcome is the normalized result of one gateway round trip.
// It is built once from the raw response and not modified afterwards.
type Outcome struct {
	Success       bool
	Message       string
	ErrorCode     ErrorCode // empty on success
	Authorization string    // transaction id, or customer id for profile operations
	TransactionID int64
	ResponseCode  int
	AVSResponse   string
	CSCResponse   string
	Errors        map[string][]string
	Params        map[string]any
	Test          bool
}

// Failed is the inverse of Success
func (o *Outcome) Failed() bool {
	return !o.Success
}

// ErrorMessages flattens the processor's numbered error map in key order
func (o *Outcome) ErrorMessages() []string {
	keys := make([]string, 0, len(o.Errors))
	for k := range o.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, o.Errors[k]...)
	}
	return msgs
}
