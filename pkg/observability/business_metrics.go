package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Payment operation metrics
	paymentTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_transactions_total",
		Help: "Total number of payment operations by outcome",
	}, []string{
		"transaction_type", // sale, auth, capture, refund, void, verify, store, unstore
		"status",           // approved, declined, error
		"error_code",       // card_declined, expired_card, ... (empty when approved)
	})

	paymentAmountCents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_amount_cents_total",
		Help: "Total requested payment amount in cents",
	}, []string{
		"transaction_type",
		"status",
	})

	// Level 3 follow-up calls
	enhancedDataTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_enhanced_data_total",
		Help: "Total Level 3 enhanced data submissions",
	}, []string{
		"brand",  // visa, mastercard
		"status", // approved, declined, error
	})

	// Best-effort voids issued by verify
	verificationVoidsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_verification_voids_total",
		Help: "Total voids issued after a verification authorization",
	}, []string{
		"status",
	})
)

// Status labels for payment operations
const (
	StatusApproved = "approved"
	StatusDeclined = "declined"
	StatusError    = "error"
)

// RecordPaymentTransaction records the outcome of one payment operation.
// amountCents is zero for operations without an amount (void, store).
func RecordPaymentTransaction(transactionType, status, errorCode string, amountCents int64) {
	paymentTransactionsTotal.WithLabelValues(transactionType, status, errorCode).Inc()
	if amountCents > 0 {
		paymentAmountCents.WithLabelValues(transactionType, status).Add(float64(amountCents))
	}
}

// RecordEnhancedData records a Level 3 submission
func RecordEnhancedData(brand, status string) {
	enhancedDataTotal.WithLabelValues(brand, status).Inc()
}

// RecordVerificationVoid records the void leg of a verification
func RecordVerificationVoid(status string) {
	verificationVoidsTotal.WithLabelValues(status).Inc()
}
