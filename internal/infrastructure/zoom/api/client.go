// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
)

// ClientAPI defines the interface for Zoom API operations
// This allows for easy mocking and testing of the Zoom client
type ClientAPI interface {
	CreateMeeting(ctx context.Context, request *CreateMeetingRequest) (*CreateMeetingResponse, error)
	CreateWebinar(ctx context.Context, request *CreateWebinarRequest) (*CreateWebinarResponse, error)
	GetMeeting(ctx context.Context, meetingID string) (*CreateMeetingResponse, error)
	GetWebinar(ctx context.Context, webinarID string) (*CreateWebinarResponse, error)
	AddMeetingRegistrant(ctx context.Context, meetingID string, request *AddRegistrantRequest) (*AddRegistrantResponse, error)
	AddWebinarRegistrant(ctx context.Context, webinarID string, request *AddRegistrantRequest) (*AddRegistrantResponse, error)
}

const (
	// BaseURL is the base URL for Zoom API
	BaseURL = "https://api.zoom.us/v2"
	// AuthURL is the OAuth token endpoint
	AuthURL = "https://zoom.us/oauth/token"
	// DefaultClientTimeout is the default HTTP client timeout for Zoom API requests
	DefaultClientTimeout = 30 * time.Second
	// TokenExpiryMargin is how long before expiry a cached access token is
	// considered stale and refreshed
	TokenExpiryMargin = 5 * time.Minute
	// Default retry configuration
	DefaultMaxRetries        = 3
	DefaultInitialBackoff    = 1 * time.Second
	DefaultMaxBackoff        = 30 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// Client represents a Zoom API client authenticated with Server-to-Server
// OAuth credentials for a single Zoom account
type Client struct {
	httpClient  *http.Client
	config      Config
	tokenSource oauth2.TokenSource
}

// Config holds the configuration for the Zoom client
type Config struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override auth URL for testing
	AuthURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
	// Optional: retry configuration
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// Ensure that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)

// NewClient creates a new Zoom API client
func NewClient(config Config) *Client {
	// Set defaults if not provided
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.AuthURL == "" {
		config.AuthURL = AuthURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = DefaultInitialBackoff
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = DefaultMaxBackoff
	}
	if config.BackoffMultiplier == 0 {
		config.BackoffMultiplier = DefaultBackoffMultiplier
	}

	// Zoom Server-to-Server OAuth requires specific grant_type and account_id
	oauthConfig := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.AuthURL,
		EndpointParams: url.Values{
			"grant_type": []string{"account_credentials"},
			"account_id": []string{config.AccountID},
		},
		AuthStyle: oauth2.AuthStyleInParams,
	}

	// Token fetches run on their own context so cancellation of a single
	// API call does not poison the shared token source.
	authCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Timeout: config.Timeout,
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		// Tokens are cached across requests and refreshed when within
		// TokenExpiryMargin of expiry. The reuse source is safe for
		// concurrent use.
		tokenSource: oauth2.ReuseTokenSourceWithExpiry(nil, oauthConfig.TokenSource(authCtx), TokenExpiryMargin),
	}
}

// AccessToken returns a valid access token for the configured account,
// fetching a new one only when the cached token is missing or stale.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	token, err := c.tokenSource.Token()
	if err != nil {
		slog.ErrorContext(ctx, "failed to obtain Zoom access token", logging.ErrKey, err)
		return "", fmt.Errorf("failed to obtain Zoom access token: %w", err)
	}
	return token.AccessToken, nil
}

// authenticatedClient returns an HTTP client that injects the cached
// OAuth2 token into each request
func (c *Client) authenticatedClient() *http.Client {
	return &http.Client{
		Timeout: c.config.Timeout,
		Transport: &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: c.tokenSource,
		},
	}
}

// shouldRetry determines if an error or HTTP status code should be retried
func shouldRetry(statusCode int, err error) bool {
	// Don't retry if context was cancelled
	if err != nil {
		if ctx, ok := err.(interface{ Err() error }); ok {
			if ctx.Err() == context.Canceled || ctx.Err() == context.DeadlineExceeded {
				return false
			}
		}
	}

	// Retry on network/connection errors
	if err != nil {
		return true
	}

	// Retry on server errors (5xx)
	if statusCode >= 500 && statusCode < 600 {
		return true
	}

	// Retry on rate limiting (429)
	if statusCode == http.StatusTooManyRequests {
		return true
	}

	// Don't retry on client errors (4xx)
	return false
}

// calculateBackoff calculates the backoff duration for a retry attempt with jitter
func (c *Client) calculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return c.config.InitialBackoff
	}

	backoff := float64(c.config.InitialBackoff) * math.Pow(c.config.BackoffMultiplier, float64(attempt))
	if time.Duration(backoff) > c.config.MaxBackoff {
		backoff = float64(c.config.MaxBackoff)
	}

	// Add jitter (±25% of backoff duration) to prevent thundering herd
	jitter := backoff * 0.25 * (rand.Float64()*2 - 1)
	backoffWithJitter := time.Duration(backoff + jitter)
	if backoffWithJitter < c.config.InitialBackoff {
		backoffWithJitter = c.config.InitialBackoff
	}

	return backoffWithJitter
}

// doRequest performs an authenticated HTTP request to the Zoom API with retry logic
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	reqURL := c.config.BaseURL + path
	client := c.authenticatedClient()

	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		var bodyReader io.Reader
		if jsonBody != nil {
			bodyReader = bytes.NewReader(jsonBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		slog.DebugContext(ctx, "making Zoom API request",
			"method", method,
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.config.MaxRetries,
		)

		startTime := time.Now()
		resp, err := client.Do(req)
		duration := time.Since(startTime)

		if err == nil && resp != nil && resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
			slog.DebugContext(ctx, "Zoom API request completed",
				"method", method,
				"path", path,
				"status", resp.StatusCode,
				"duration", duration.String(),
				"attempt", attempt+1,
			)
			return resp, nil
		}

		if lastResp != nil && resp != nil {
			_ = lastResp.Body.Close()
		}
		lastErr = err
		if resp != nil {
			lastResp = resp
		}

		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
		}

		if !shouldRetry(statusCode, err) {
			slog.ErrorContext(ctx, "Zoom API request failed (not retryable)",
				"method", method,
				"path", path,
				"status", statusCode,
				"duration", duration.String(),
				"attempt", attempt+1,
				logging.ErrKey, err)
			break
		}

		if attempt < c.config.MaxRetries {
			backoff := c.calculateBackoff(attempt)
			slog.WarnContext(ctx, "Zoom API request failed, retrying",
				"method", method,
				"path", path,
				"status", statusCode,
				"duration", duration.String(),
				"attempt", attempt+1,
				"max_retries", c.config.MaxRetries,
				"backoff", backoff.String(),
				logging.ErrKey, err)

			select {
			case <-ctx.Done():
				if lastResp != nil {
					_ = lastResp.Body.Close()
				}
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		} else {
			slog.ErrorContext(ctx, "Zoom API request failed after all retries",
				"method", method,
				"path", path,
				"status", statusCode,
				"duration", duration.String(),
				"attempts", attempt+1,
				logging.ErrKey, err,
				logging.PriorityCritical())
		}
	}

	if lastErr != nil {
		if lastResp != nil {
			_ = lastResp.Body.Close()
		}
		return nil, fmt.Errorf("request failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
	}

	if lastResp != nil && lastResp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(lastResp.Body)
		_ = lastResp.Body.Close()
		lastResp.Body = io.NopCloser(bytes.NewReader(body))
		slog.ErrorContext(ctx, "Zoom API error response",
			"method", method,
			"path", path,
			"status", lastResp.StatusCode,
			"body", string(body),
			logging.ErrKey, fmt.Errorf("status: %d", lastResp.StatusCode))
	}

	return lastResp, nil
}

// parseErrorResponse attempts to parse a Zoom API error response
func parseErrorResponse(body []byte) error {
	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("zoom API error (code %d): %s", errResp.Code, errResp.Message)
	}
	return fmt.Errorf("zoom API error: %s", string(body))
}
