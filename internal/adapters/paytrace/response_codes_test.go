package paytrace

import (
	"testing"

	"github.com/kevin07696/paytrace-gateway/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestGetResponseCode(t *testing.T) {
	tests := []struct {
		code       int
		isApproved bool
		errorCode  models.ErrorCode
	}{
		{101, true, ""},
		{106, true, ""},
		{109, true, ""},
		{112, true, ""},
		{160, true, ""},
		{170, true, ""},
		{102, false, models.ErrorCardDeclined},
		{103, false, models.ErrorIncorrectAddress},
		{1, false, models.ErrorProcessingError},
		{999, false, models.ErrorProcessingError},
	}

	for _, tt := range tests {
		info := GetResponseCode(tt.code)
		assert.Equal(t, tt.code, info.Code)
		assert.Equal(t, tt.isApproved, info.IsApproved, "code %d", tt.code)
		assert.Equal(t, tt.errorCode, info.ErrorCode, "code %d", tt.code)
	}
}

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name            string
		responseCode    int
		approvalMessage string
		errs            map[string][]string
		want            models.ErrorCode
	}{
		{"expired card", 102, "  EXPIRED CARD - Expired card", nil, models.ErrorExpiredCard},
		{"generic decline", 102, "    DECLINE - Do not honor", nil, models.ErrorCardDeclined},
		{"cvv mismatch", 102, "CVV2 MISMATCH", nil, models.ErrorIncorrectCVC},
		{"invalid card", 102, "INVALID CARD NUMBER", nil, models.ErrorInvalidNumber},
		{"pick up", 102, "PICK UP CARD", nil, models.ErrorPickupCard},
		{"call issuer", 102, "CALL ISSUER", nil, models.ErrorCallIssuer},
		{"zip mismatch", 102, "ZIP MISMATCH", nil, models.ErrorIncorrectZip},
		{"message is case insensitive", 102, "expired card", nil, models.ErrorExpiredCard},
		{"invalid transaction id", 1, "", map[string][]string{"58": {"Please provide a valid Transaction ID."}}, models.ErrorProcessingError},
		{"permissions", 1, "", map[string][]string{"981": {"Log in failed for insufficient permissions."}}, models.ErrorConfigError},
		{"bad card number", 1, "", map[string][]string{"35": {"Please provide a valid Credit Card Number."}}, models.ErrorInvalidNumber},
		{"bad expiration", 1, "", map[string][]string{"44": {"Please provide a valid Expiration Year."}}, models.ErrorInvalidExpiryDate},
		{"bad csc", 1, "", map[string][]string{"148": {"Please provide a valid CSC."}}, models.ErrorInvalidCVC},
		{"unknown error number", 1, "", map[string][]string{"9999": {"Something new."}}, models.ErrorProcessingError},
		{"message wins over errors", 102, "EXPIRED CARD", map[string][]string{"35": {"x"}}, models.ErrorExpiredCard},
		{"declined code without message", 102, "", nil, models.ErrorCardDeclined},
		{"avs void", 103, "", nil, models.ErrorIncorrectAddress},
		{"unknown code", 777, "", nil, models.ErrorProcessingError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyFailure(tt.responseCode, tt.approvalMessage, tt.errs))
		})
	}
}
