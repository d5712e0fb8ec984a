// Package amazon implements the ads-platform port against the Amazon
// Advertising API: OAuth2 refresh-token auth, the async Sponsored Products
// report flow and campaign budget updates.
package amazon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"adpilot/internal/config/configs"
)

const defaultTokenURL = "https://api.amazon.com/auth/o2/token"

// apiEndpoints maps the configured region to its API host.
var apiEndpoints = map[string]string{
	"NA": "https://advertising-api.amazon.com",
	"EU": "https://advertising-api-eu.amazon.com",
	"FE": "https://advertising-api-fe.amazon.com",
}

// Client talks to the Amazon Advertising API. It caches the access token for
// its lifetime (one token comfortably outlives one run) and is safe for
// concurrent use.
type Client struct {
	cfg      configs.Amazon
	baseURL  string
	tokenURL string
	client   *http.Client
	logger   *slog.Logger

	// report polling knobs, overridden in tests
	pollInterval time.Duration
	maxPolls     int

	mu          sync.Mutex
	accessToken string
}

// NewClient builds a client for the configured region. An unknown region is
// a configuration error.
func NewClient(cfg configs.Amazon, logger *slog.Logger) (*Client, error) {
	base, ok := apiEndpoints[strings.ToUpper(cfg.Region)]
	if !ok {
		return nil, fmt.Errorf("amazon: unknown region %q (want NA, EU or FE)", cfg.Region)
	}
	return &Client{
		cfg:          cfg,
		baseURL:      base,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger.With(slog.String("client", "amazon-ads")),
		pollInterval: 10 * time.Second,
		maxPolls:     20,
	}, nil
}

// token exchanges the refresh token for an access token on first use.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" {
		return c.accessToken, nil
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.cfg.RefreshToken},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amazon: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("amazon: token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("amazon: token exchange returned %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("amazon: parse token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("amazon: token response missing access_token")
	}
	c.accessToken = payload.AccessToken
	return c.accessToken, nil
}

// newRequest builds an authenticated API request with the advertising
// headers Amazon requires on every call.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("amazon: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Amazon-Advertising-API-ClientId", c.cfg.ClientID)
	req.Header.Set("Amazon-Advertising-API-Scope", c.cfg.ProfileID)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// UpdateBudget sets a campaign's daily budget. Amazon answers the batch
// update endpoint with 207 Multi-Status on success; the raw body is returned
// so callers can store the acknowledgment.
func (c *Client) UpdateBudget(ctx context.Context, campaignID string, newBudget float64) (json.RawMessage, error) {
	payload, err := json.Marshal([]map[string]any{{
		"campaignId":  campaignID,
		"dailyBudget": newBudget,
	}})
	if err != nil {
		return nil, fmt.Errorf("amazon: marshal budget update: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/v2/sp/campaigns", payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amazon: budget update: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amazon: read budget update response: %w", err)
	}
	if resp.StatusCode != http.StatusMultiStatus {
		return nil, fmt.Errorf("amazon: budget update for %s returned %d: %s", campaignID, resp.StatusCode, body)
	}
	return json.RawMessage(body), nil
}
