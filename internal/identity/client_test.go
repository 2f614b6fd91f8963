package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyReturnsIdentity(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"42","name":"alice","given_name":"Alice","picture":"https://example.com/a.png"}`))
	}))
	defer upstream.Close()

	client := NewClient(&ClientConfig{UserInfoURL: upstream.URL})

	ident, err := client.Verify(context.Background(), "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "42", ident.ID)
	assert.Equal(t, "alice", ident.Name)
	assert.Equal(t, "Alice", ident.GivenName)
}

func TestVerifyToleratesUnknownFields(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"42","name":"alice","picture":"p","locale":"en","verified_email":true}`))
	}))
	defer upstream.Close()

	client := NewClient(&ClientConfig{UserInfoURL: upstream.URL})

	ident, err := client.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "42", ident.ID)
}

func TestVerifyRejectedByProvider(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(&ClientConfig{UserInfoURL: upstream.URL})

		_, err := client.Verify(context.Background(), "expired")
		assert.ErrorIs(t, err, ErrVerificationFailed, "status %d", status)

		upstream.Close()
	}
}

func TestVerifyTransportFailure(t *testing.T) {
	// A closed server produces a connection error; it must map to the
	// same failure as a provider rejection.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	client := NewClient(&ClientConfig{UserInfoURL: upstream.URL, Timeout: time.Second})

	_, err := client.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyEmptyIdentity(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	client := NewClient(&ClientConfig{UserInfoURL: upstream.URL})

	_, err := client.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}
