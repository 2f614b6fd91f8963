package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultUserInfoURL is the Google OAuth2 userinfo endpoint
const DefaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// DefaultTimeout bounds the outbound userinfo call
const DefaultTimeout = 30 * time.Second

// ErrVerificationFailed is returned whenever a token cannot be verified.
// Provider rejection and transport failure are deliberately
// indistinguishable: both are untrusted-caller conditions that must
// fail closed.
var ErrVerificationFailed = errors.New("failed to retrieve user info")

// Identity is the verified identity returned by the provider for a
// bearer token. It is trusted only for the duration of the request that
// obtained it and is never persisted or cached.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name,omitempty"`
	Picture    string `json:"picture"`
}

// Verifier resolves a bearer token to a verified identity
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Client verifies bearer tokens against the provider's userinfo endpoint
type Client struct {
	userInfoURL string
	timeout     time.Duration
	base        *http.Client
}

// ClientConfig holds configuration for the identity client
type ClientConfig struct {
	UserInfoURL string
	Timeout     time.Duration
}

// NewClient creates a new identity client
func NewClient(cfg *ClientConfig) *Client {
	client := &Client{
		userInfoURL: DefaultUserInfoURL,
		timeout:     DefaultTimeout,
	}
	if cfg != nil {
		if cfg.UserInfoURL != "" {
			client.userInfoURL = cfg.UserInfoURL
		}
		if cfg.Timeout > 0 {
			client.timeout = cfg.Timeout
		}
	}
	client.base = &http.Client{Timeout: client.timeout}
	return client
}

// Verify performs a single userinfo call with the token attached as a
// bearer credential. Any non-200 response or transport failure maps to
// ErrVerificationFailed. No retries: an expired or revoked token will
// not become valid by retrying.
func (c *Client) Verify(ctx context.Context, token string) (*Identity, error) {
	// Attach the caller's token to the outbound call
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, c.base),
		src,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned status %d", ErrVerificationFailed, resp.StatusCode)
	}

	var ident Identity
	if err := json.NewDecoder(resp.Body).Decode(&ident); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if ident.ID == "" {
		return nil, fmt.Errorf("%w: userinfo response has no id", ErrVerificationFailed)
	}

	return &ident, nil
}
