package paytrace

import (
	"sort"
	"strings"

	"github.com/kevin07696/paytrace-gateway/internal/domain/models"
)

// ResponseCodeInfo describes a PayTrace response_code
type ResponseCodeInfo struct {
	Code        int
	Description string
	IsApproved  bool
	ErrorCode   models.ErrorCode
}

// PayTrace response codes. Approvals map to no error code.
var responseCodes = map[int]ResponseCodeInfo{
	1: {
		Code:        1,
		Description: "One or more errors has occurred",
		ErrorCode:   models.ErrorProcessingError,
	},
	101: {Code: 101, Description: "Transaction approved", IsApproved: true},
	102: {
		Code:        102,
		Description: "Transaction not approved",
		ErrorCode:   models.ErrorCardDeclined,
	},
	103: {
		Code:        103,
		Description: "Approved then voided for AVS or CSC mismatch",
		ErrorCode:   models.ErrorIncorrectAddress,
	},
	106: {Code: 106, Description: "Transaction refunded", IsApproved: true},
	107: {
		Code:        107,
		Description: "Refund not processed",
		ErrorCode:   models.ErrorProcessingError,
	},
	108: {Code: 108, Description: "Test refund processed", IsApproved: true},
	109: {Code: 109, Description: "Transaction voided", IsApproved: true},
	110: {
		Code:        110,
		Description: "Void not processed",
		ErrorCode:   models.ErrorProcessingError,
	},
	112: {Code: 112, Description: "Transaction captured", IsApproved: true},
	113: {
		Code:        113,
		Description: "Capture not processed",
		ErrorCode:   models.ErrorProcessingError,
	},
	160: {Code: 160, Description: "Customer profile created", IsApproved: true},
	161: {Code: 161, Description: "Customer profile updated", IsApproved: true},
	162: {Code: 162, Description: "Customer profile deleted", IsApproved: true},
	170: {Code: 170, Description: "Enhanced data added", IsApproved: true},
}

// Numbered entries of the errors map that identify the problem more precisely than
// response code 1
var validationErrorCodes = map[string]models.ErrorCode{
	"35":  models.ErrorInvalidNumber,
	"43":  models.ErrorInvalidExpiryDate,
	"44":  models.ErrorInvalidExpiryDate,
	"58":  models.ErrorProcessingError,
	"148": models.ErrorInvalidCVC,
	"171": models.ErrorProcessingError,
	"981": models.ErrorConfigError,
}

// Substrings of approval_message in match order. EXPIRED has to be checked before
// DECLINE because issuers send "EXPIRED CARD - Expired card" alongside generic declines.
var approvalMessagePatterns = []struct {
	pattern string
	code    models.ErrorCode
}{
	{"EXPIRED", models.ErrorExpiredCard},
	{"CVV", models.ErrorIncorrectCVC},
	{"CSC", models.ErrorIncorrectCVC},
	{"INVALID CARD", models.ErrorInvalidNumber},
	{"INVALID ACCOUNT", models.ErrorInvalidNumber},
	{"INVALID ACCT", models.ErrorInvalidNumber},
	{"PICK UP", models.ErrorPickupCard},
	{"PICKUP", models.ErrorPickupCard},
	{"CALL", models.ErrorCallIssuer},
	{"INVALID AMOUNT", models.ErrorInvalidAmount},
	{"ZIP", models.ErrorIncorrectZip},
	{"AVS", models.ErrorIncorrectZip},
	{"DECLINE", models.ErrorCardDeclined},
	{"INSUFF", models.ErrorCardDeclined},
}

// GetResponseCode retrieves information for a PayTrace response code
func GetResponseCode(code int) ResponseCodeInfo {
	if info, exists := responseCodes[code]; exists {
		return info
	}
	// Default for unknown codes
	return ResponseCodeInfo{
		Code:        code,
		Description: "Unknown response code",
		ErrorCode:   models.ErrorProcessingError,
	}
}

// classifyFailure derives the error code of a failed response. The approval message is
// the most specific signal, then the numbered errors map, then the response code.
func classifyFailure(responseCode int, approvalMessage string, errs map[string][]string) models.ErrorCode {
	upper := strings.ToUpper(approvalMessage)
	for _, p := range approvalMessagePatterns {
		if strings.Contains(upper, p.pattern) {
			return p.code
		}
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if code, ok := validationErrorCodes[k]; ok {
			return code
		}
	}

	if info := GetResponseCode(responseCode); info.ErrorCode != "" {
		return info.ErrorCode
	}
	return models.ErrorProcessingError
}
