package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeflights/flightsearch/pkg/logger"
)

func tokenServer(t *testing.T, calls *int, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		handler(w, r)
	}))
}

func TestTokenReusedWithinCachedWindow(t *testing.T) {
	calls := 0
	srv := tokenServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"tok-1","expires_in":1800}`)
	})
	defer srv.Close()

	m := NewManager("amadeus", srv.Client(), logger.NewNop(),
		FormCredentials(srv.URL, "id", "secret"))

	first, err := m.Token(context.Background())
	require.NoError(t, err)
	second, err := m.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second acquire must be a cache hit")
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	calls := 0
	srv := tokenServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":1800}`, calls)
	})
	defer srv.Close()

	m := NewManager("amadeus", srv.Client(), logger.NewNop(),
		FormCredentials(srv.URL, "id", "secret"))

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	// Force the cached token past its expiry.
	m.expiry = time.Now().Add(-time.Second)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, 2, calls)
}

func TestTokenMissingCredentials(t *testing.T) {
	m := NewManager("amadeus", http.DefaultClient, logger.NewNop())

	_, err := m.Token(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestTokenFailureCarriesProviderDetail(t *testing.T) {
	calls := 0
	srv := tokenServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client","error_description":"Client credentials are invalid"}`)
	})
	defer srv.Close()

	m := NewManager("amadeus", srv.Client(), logger.NewNop(),
		FormCredentials(srv.URL, "id", "wrong"))

	_, err := m.Token(context.Background())
	require.Error(t, err)

	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "amadeus", authErr.Provider)
	assert.Contains(t, authErr.Error(), "Client credentials are invalid")
}

func TestAttemptsTriedInOrderAcceptingFirstSuccess(t *testing.T) {
	var headers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		if len(headers) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error_description":"bad encoding"}`)
			return
		}
		fmt.Fprint(w, `{"access_token":"tok-single","expires_in":1800}`)
	}))
	defer srv.Close()

	double := DoubleEncodedCredentials("id", "secret")
	single := SingleEncodedCredentials("id", "secret")

	m := NewManager("sabre", srv.Client(), logger.NewNop(),
		BasicHeader("double base64", srv.URL, double),
		BasicHeader("single base64", srv.URL, single),
	)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-single", tok)
	require.Len(t, headers, 2)
	assert.Equal(t, "Basic "+double, headers[0])
	assert.Equal(t, "Basic "+single, headers[1])
}

func TestBothAttemptsFailingSurfacesLastError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error_description":"still invalid"}`)
	}))
	defer srv.Close()

	m := NewManager("sabre", srv.Client(), logger.NewNop(),
		BasicHeader("double base64", srv.URL, DoubleEncodedCredentials("id", "secret")),
		BasicHeader("single base64", srv.URL, SingleEncodedCredentials("id", "secret")),
	)

	_, err := m.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still invalid")
}

func TestCredentialEncodings(t *testing.T) {
	single := SingleEncodedCredentials("user", "pass")
	decoded, err := base64.StdEncoding.DecodeString(single)
	require.NoError(t, err)
	assert.Equal(t, "user:pass", string(decoded))

	double := DoubleEncodedCredentials("user", "pass")
	outer, err := base64.StdEncoding.DecodeString(double)
	require.NoError(t, err)
	assert.Equal(t,
		base64.StdEncoding.EncodeToString([]byte("user"))+":"+base64.StdEncoding.EncodeToString([]byte("pass")),
		string(outer))
}
