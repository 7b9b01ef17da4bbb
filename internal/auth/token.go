// Package auth acquires and caches OAuth2 client-credentials bearer tokens
// for flight providers.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/redeflights/flightsearch/pkg/logger"
)

// expiryMargin is subtracted from the provider TTL so a token is refreshed
// before it actually lapses mid-request.
const expiryMargin = 60 * time.Second

// ErrMissingCredentials reports absent client credentials. This is a
// configuration failure and is never retried.
var ErrMissingCredentials = fmt.Errorf("client credentials are not configured")

// Error is a token-endpoint rejection carrying the provider's error
// description when one was returned.
type Error struct {
	Provider string
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Provider + " auth failed: " + e.Detail
	}
	return e.Provider + " auth failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Attempt is one way of presenting credentials to a token endpoint.
// Providers with encoding quirks register several; they are tried in order
// and the last failure wins.
type Attempt struct {
	Name  string
	Build func(ctx context.Context) (*http.Request, error)
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Manager caches one bearer token per provider. The cached token is shared
// mutable state across concurrent searches, so the check-and-set runs under
// a single lock.
type Manager struct {
	provider string
	client   *http.Client
	attempts []Attempt
	log      logger.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewManager(provider string, client *http.Client, log logger.Logger, attempts ...Attempt) *Manager {
	return &Manager{
		provider: provider,
		client:   client,
		attempts: attempts,
		log:      log,
	}
}

// Token returns the cached token while unexpired, otherwise walks the
// attempt list and caches the first success. Expiry is set to
// now + expires_in − 60s.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.expiry) {
		return m.token, nil
	}

	if len(m.attempts) == 0 {
		return "", fmt.Errorf("%s: %w", m.provider, ErrMissingCredentials)
	}

	var lastErr error
	for _, attempt := range m.attempts {
		m.log.Info("requesting provider token", "provider", m.provider, "attempt", attempt.Name)

		token, expiresIn, err := m.exchange(ctx, attempt)
		if err != nil {
			m.log.Warn("token attempt failed", "provider", m.provider, "attempt", attempt.Name, "error", err)
			lastErr = err
			continue
		}

		m.token = token
		m.expiry = time.Now().Add(time.Duration(expiresIn)*time.Second - expiryMargin)
		m.log.Info("provider token acquired", "provider", m.provider, "attempt", attempt.Name)
		return m.token, nil
	}

	return "", lastErr
}

func (m *Manager) exchange(ctx context.Context, attempt Attempt) (string, int, error) {
	req, err := attempt.Build(ctx)
	if err != nil {
		return "", 0, &Error{Provider: m.provider, Err: err}
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", 0, &Error{Provider: m.provider, Err: err}
	}
	defer resp.Body.Close()

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && resp.StatusCode < 300 {
		return "", 0, &Error{Provider: m.provider, Err: err}
	}

	if resp.StatusCode >= 300 || body.AccessToken == "" {
		detail := body.ErrorDescription
		if detail == "" {
			detail = body.ErrorCode
		}
		return "", 0, &Error{
			Provider: m.provider,
			Detail:   detail,
			Err:      fmt.Errorf("token endpoint returned %s", resp.Status),
		}
	}

	return body.AccessToken, body.ExpiresIn, nil
}

// FormCredentials builds an attempt sending client_id/client_secret in the
// form body, as the Amadeus token endpoint expects.
func FormCredentials(tokenURL, clientID, clientSecret string) Attempt {
	return Attempt{
		Name: "form credentials",
		Build: func(ctx context.Context) (*http.Request, error) {
			form := url.Values{}
			form.Set("grant_type", "client_credentials")
			form.Set("client_id", clientID)
			form.Set("client_secret", clientSecret)

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return req, nil
		},
	}
}

// BasicHeader builds an attempt sending a pre-encoded Basic authorization
// value with a bare grant_type body, as the Sabre token endpoint expects.
func BasicHeader(name, tokenURL, credentials string) Attempt {
	return Attempt{
		Name: name,
		Build: func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader("grant_type=client_credentials"))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Authorization", "Basic "+credentials)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return req, nil
		},
	}
}

// DoubleEncodedCredentials produces the double-Base64 credential string the
// Sabre sandbox requires: each half is encoded on its own before the joined
// pair is encoded again.
func DoubleEncodedCredentials(clientID, clientSecret string) string {
	id := base64.StdEncoding.EncodeToString([]byte(clientID))
	secret := base64.StdEncoding.EncodeToString([]byte(clientSecret))
	return base64.StdEncoding.EncodeToString([]byte(id + ":" + secret))
}

// SingleEncodedCredentials produces the standard Basic-auth credential
// string.
func SingleEncodedCredentials(clientID, clientSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
}
