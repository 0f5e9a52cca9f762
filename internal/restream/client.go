// Package restream wraps the Restream.io OAuth2 authorization-code flow and
// API as a pass-through client. Token storage and refresh are owned by the
// caller.
package restream

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amani-hq/amani/internal/config"
	"go.uber.org/zap"
)

const defaultStateSize = 32

// UpstreamError carries the status returned by Restream so handlers can
// forward it instead of masking it as an internal failure.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("restream upstream error: status %d", e.StatusCode)
}

// Token is the access/refresh pair returned by the code exchange.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type Client struct {
	cfg        config.RestreamConfig
	httpClient *http.Client
	log        *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		cfg:        cfg.Restream,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.Named("restream"),
	}
}

// AuthorizeURL builds the authorization URL. When state is empty a random
// anti-forgery token is generated; the state in use is returned alongside
// the URL so the caller can persist it.
func (c *Client) AuthorizeURL(state string) (string, string, error) {
	if strings.TrimSpace(c.cfg.ClientID) == "" || strings.TrimSpace(c.cfg.AuthURL) == "" {
		return "", "", fmt.Errorf("restream client is not configured")
	}

	state = strings.TrimSpace(state)
	if state == "" {
		generated, err := randomToken(defaultStateSize)
		if err != nil {
			return "", "", err
		}
		state = generated
	}

	parsed, err := url.Parse(c.cfg.AuthURL)
	if err != nil {
		return "", "", err
	}
	q := parsed.Query()
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	if len(c.cfg.Scopes) > 0 {
		q.Set("scope", strings.Join(c.cfg.Scopes, " "))
	}
	q.Set("state", state)
	parsed.RawQuery = q.Encode()

	return parsed.String(), state, nil
}

// Exchange trades an authorization code for a token pair via a form-encoded
// POST. An upstream non-2xx response surfaces as *UpstreamError.
func (c *Client) Exchange(ctx context.Context, code string) (*Token, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("authorization code is required")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("client_id", c.cfg.ClientID)
	if strings.TrimSpace(c.cfg.ClientSecret) != "" {
		form.Set("client_secret", c.cfg.ClientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Body: string(body)}
	}
	return &token, nil
}

// Do calls an arbitrary Restream API path with the bearer token attached and
// returns the decoded JSON payload.
func (c *Client) Do(ctx context.Context, accessToken, method, path string) (any, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, fmt.Errorf("access token is required")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+"/"+strings.TrimLeft(path, "/"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	body, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	var payload any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Body: string(body)}
		}
	}
	return payload, nil
}

func (c *Client) roundTrip(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("upstream call failed",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func randomToken(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
