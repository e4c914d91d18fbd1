package paytrace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/kevin07696/paytrace-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/paytrace-gateway/pkg/errors"
)

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int    `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// AcquireAccessToken exchanges the account username and password for an OAuth bearer
// token using the password grant
func AcquireAccessToken(ctx context.Context, transport ports.Transport, baseURL string, creds Credentials) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	headers := map[string]string{
		"Accept":       "*/*",
		"Content-Type": "application/x-www-form-urlencoded",
	}

	raw, err := transport.Post(ctx, tokenURL(baseURL), []byte(form.Encode()), headers)
	if err != nil {
		return "", fmt.Errorf("failed to request access token: %w", err)
	}

	var resp tokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: token endpoint returned %d bytes", pkgerrors.ErrMalformedResponse, len(raw))
	}

	if resp.AccessToken == "" {
		reason := resp.ErrorDescription
		if reason == "" {
			reason = resp.Error
		}
		if reason == "" {
			reason = "no access_token in response"
		}
		return "", fmt.Errorf("%w: %s", pkgerrors.ErrAuthentication, reason)
	}

	return resp.AccessToken, nil
}
