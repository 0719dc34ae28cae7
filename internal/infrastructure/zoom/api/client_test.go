// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name            string
		config          Config
		expectedBaseURL string
		expectedAuthURL string
		expectedTimeout time.Duration
	}{
		{
			name: "with all config provided",
			config: Config{
				AccountID:    "test-account",
				ClientID:     "test-client-id",
				ClientSecret: "test-secret",
				BaseURL:      "https://custom.api.zoom.us/v2",
				AuthURL:      "https://custom.zoom.us/oauth/token",
				Timeout:      45 * time.Second,
			},
			expectedBaseURL: "https://custom.api.zoom.us/v2",
			expectedAuthURL: "https://custom.zoom.us/oauth/token",
			expectedTimeout: 45 * time.Second,
		},
		{
			name: "with minimal config - uses defaults",
			config: Config{
				AccountID:    "test-account",
				ClientID:     "test-client-id",
				ClientSecret: "test-secret",
			},
			expectedBaseURL: BaseURL,
			expectedAuthURL: AuthURL,
			expectedTimeout: DefaultClientTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config)

			if client == nil {
				t.Fatal("NewClient returned nil")
			}

			if client.config.BaseURL != tt.expectedBaseURL {
				t.Errorf("expected BaseURL %s, got %s", tt.expectedBaseURL, client.config.BaseURL)
			}

			if client.config.AuthURL != tt.expectedAuthURL {
				t.Errorf("expected AuthURL %s, got %s", tt.expectedAuthURL, client.config.AuthURL)
			}

			if client.config.Timeout != tt.expectedTimeout {
				t.Errorf("expected Timeout %v, got %v", tt.expectedTimeout, client.config.Timeout)
			}

			if client.config.MaxRetries != DefaultMaxRetries && tt.config.MaxRetries == 0 {
				t.Errorf("expected MaxRetries %d, got %d", DefaultMaxRetries, client.config.MaxRetries)
			}

			if client.tokenSource == nil {
				t.Error("tokenSource should not be nil")
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		err        error
		expected   bool
	}{
		{"network error", 0, errors.New("connection refused"), true},
		{"server error 500", http.StatusInternalServerError, nil, true},
		{"server error 503", http.StatusServiceUnavailable, nil, true},
		{"rate limited 429", http.StatusTooManyRequests, nil, true},
		{"bad request 400", http.StatusBadRequest, nil, false},
		{"not found 404", http.StatusNotFound, nil, false},
		{"success 200", http.StatusOK, nil, false},
		{"created 201", http.StatusCreated, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldRetry(tt.statusCode, tt.err); got != tt.expected {
				t.Errorf("shouldRetry(%d, %v) = %v, want %v", tt.statusCode, tt.err, got, tt.expected)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	client := NewClient(Config{
		AccountID:         "acc",
		ClientID:          "id",
		ClientSecret:      "secret",
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        1 * time.Second,
		BackoffMultiplier: 2.0,
	})

	if got := client.calculateBackoff(0); got != 100*time.Millisecond {
		t.Errorf("attempt 0: expected initial backoff, got %v", got)
	}

	// Later attempts stay within [initial, max + 25% jitter]
	for attempt := 1; attempt <= 10; attempt++ {
		got := client.calculateBackoff(attempt)
		if got < 100*time.Millisecond {
			t.Errorf("attempt %d: backoff %v below initial", attempt, got)
		}
		if got > 1250*time.Millisecond {
			t.Errorf("attempt %d: backoff %v above max plus jitter", attempt, got)
		}
	}
}

// newAuthServer returns a token endpoint that counts fetches and issues
// tokens with the given lifetime.
func newAuthServer(t *testing.T, fetches *atomic.Int64, expiresIn int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "account_credentials" {
			t.Errorf("expected grant_type account_credentials, got %q", got)
		}
		if got := r.Form.Get("account_id"); got != "test-account" {
			t.Errorf("expected account_id test-account, got %q", got)
		}
		n := fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"bearer","expires_in":%d}`, n, expiresIn)
	}))
}

func TestAccessTokenCaching(t *testing.T) {
	var fetches atomic.Int64
	authServer := newAuthServer(t, &fetches, 3600)
	defer authServer.Close()

	client := NewClient(Config{
		AccountID:    "test-account",
		ClientID:     "test-client-id",
		ClientSecret: "test-secret",
		AuthURL:      authServer.URL,
	})

	ctx := context.Background()
	first, err := client.AccessToken(ctx)
	if err != nil {
		t.Fatalf("first AccessToken failed: %v", err)
	}
	second, err := client.AccessToken(ctx)
	if err != nil {
		t.Fatalf("second AccessToken failed: %v", err)
	}

	if first != second {
		t.Errorf("expected cached token, got %q then %q", first, second)
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("expected 1 token fetch, got %d", got)
	}
}

func TestAccessTokenRefreshesWithinExpiryMargin(t *testing.T) {
	var fetches atomic.Int64
	// Lifetime shorter than TokenExpiryMargin, so every call sees a
	// stale token and fetches a fresh one.
	authServer := newAuthServer(t, &fetches, 60)
	defer authServer.Close()

	client := NewClient(Config{
		AccountID:    "test-account",
		ClientID:     "test-client-id",
		ClientSecret: "test-secret",
		AuthURL:      authServer.URL,
	})

	ctx := context.Background()
	if _, err := client.AccessToken(ctx); err != nil {
		t.Fatalf("first AccessToken failed: %v", err)
	}
	if _, err := client.AccessToken(ctx); err != nil {
		t.Fatalf("second AccessToken failed: %v", err)
	}

	if got := fetches.Load(); got != 2 {
		t.Errorf("expected 2 token fetches, got %d", got)
	}
}

func TestAccessTokenAuthFailure(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"reason":"Invalid client_id or client_secret"}`)
	}))
	defer authServer.Close()

	client := NewClient(Config{
		AccountID:    "test-account",
		ClientID:     "bad-client-id",
		ClientSecret: "bad-secret",
		AuthURL:      authServer.URL,
	})

	if _, err := client.AccessToken(context.Background()); err == nil {
		t.Fatal("expected error for rejected credentials")
	}
}

func TestDoRequestRetriesServerErrors(t *testing.T) {
	var fetches atomic.Int64
	authServer := newAuthServer(t, &fetches, 3600)
	defer authServer.Close()

	var calls atomic.Int64
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("expected Authorization 'Bearer token-1', got %q", got)
		}
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":123}`)
	}))
	defer apiServer.Close()

	client := NewClient(Config{
		AccountID:      "test-account",
		ClientID:       "test-client-id",
		ClientSecret:   "test-secret",
		BaseURL:        apiServer.URL,
		AuthURL:        authServer.URL,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})

	resp, err := client.doRequest(context.Background(), http.MethodGet, "/meetings/123", nil)
	if err != nil {
		t.Fatalf("doRequest failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 API calls, got %d", got)
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("token should be fetched once across retries, got %d fetches", got)
	}
}

func TestDoRequestDoesNotRetryClientErrors(t *testing.T) {
	var fetches atomic.Int64
	authServer := newAuthServer(t, &fetches, 3600)
	defer authServer.Close()

	var calls atomic.Int64
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":300,"message":"Invalid meeting id."}`)
	}))
	defer apiServer.Close()

	client := NewClient(Config{
		AccountID:      "test-account",
		ClientID:       "test-client-id",
		ClientSecret:   "test-secret",
		BaseURL:        apiServer.URL,
		AuthURL:        authServer.URL,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Millisecond,
	})

	resp, err := client.doRequest(context.Background(), http.MethodGet, "/meetings/bad", nil)
	if err != nil {
		t.Fatalf("doRequest failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 API call for a 4xx, got %d", got)
	}
}

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "structured zoom error",
			body:     `{"code":3001,"message":"Meeting does not exist."}`,
			expected: "zoom API error (code 3001): Meeting does not exist.",
		},
		{
			name:     "unstructured body",
			body:     `gateway timeout`,
			expected: "zoom API error: gateway timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErrorResponse([]byte(tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
		})
	}
}
