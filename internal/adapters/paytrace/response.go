package paytrace

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kevin07696/paytrace-gateway/internal/domain/models"
	pkgerrors "github.com/kevin07696/paytrace-gateway/pkg/errors"
)

// Response is the PayTrace JSON body shared by every /v1 endpoint
type Response struct {
	Success         bool                `json:"success"`
	ResponseCode    int                 `json:"response_code"`
	StatusMessage   string              `json:"status_message"`
	TransactionID   json.Number         `json:"transaction_id"`
	CustomerID      string              `json:"customer_id"`
	ApprovalCode    string              `json:"approval_code"`
	ApprovalMessage string              `json:"approval_message"`
	AVSResponse     string              `json:"avs_response"`
	CSCResponse     string              `json:"csc_response"`
	MaskedCard      string              `json:"masked_card_number"`
	Errors          map[string][]string `json:"errors"`
}

// parseResponse normalizes a raw body. A body that is not a JSON object is an error,
// never a declined outcome.
func parseResponse(endpoint string, body []byte) (*models.Outcome, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var params map[string]any
	if err := dec.Decode(&params); err != nil || params == nil {
		return nil, fmt.Errorf("%w: %s returned %d bytes", pkgerrors.ErrMalformedResponse, endpoint, len(body))
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pkgerrors.ErrMalformedResponse, endpoint, err)
	}

	outcome := &models.Outcome{
		Success:       resp.Success,
		Message:       resp.StatusMessage,
		Authorization: authorizationFrom(endpoint, &resp),
		ResponseCode:  resp.ResponseCode,
		AVSResponse:   resp.AVSResponse,
		CSCResponse:   resp.CSCResponse,
		Errors:        resp.Errors,
		Params:        params,
	}
	if id, err := resp.TransactionID.Int64(); err == nil {
		outcome.TransactionID = id
	}
	if !resp.Success {
		outcome.ErrorCode = classifyFailure(resp.ResponseCode, resp.ApprovalMessage, resp.Errors)
	}
	return outcome, nil
}

// authorizationFrom picks the id a caller needs for follow-up operations: the profile id
// for customer endpoints, the transaction id for everything else
func authorizationFrom(endpoint string, resp *Response) string {
	switch endpoint {
	case endpointCustomerCreate, endpointCustomerUpdate, endpointCustomerDelete:
		return resp.CustomerID
	}
	return resp.TransactionID.String()
}
