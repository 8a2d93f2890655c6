package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTokenService("test-secret", ttl, logger)
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	userID := uuid.New()

	token, err := ts.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	// A negative TTL produces a token that is already expired.
	ts := newTestTokenService(-time.Minute)

	token, err := ts.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = ts.ValidateToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	token, err := ts.GenerateToken(uuid.New())
	require.NoError(t, err)

	// Flip one character in every position except the last, whose low
	// bits are base64 padding and may not change the decoded signature.
	for i := 0; i < len(token)-1; i++ {
		flipped := []byte(token)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		if string(flipped) == token {
			continue
		}
		_, err := ts.ValidateToken(string(flipped))
		assert.Error(t, err, "tampered token verified at position %d", i)
	}
}

func TestTokenFromDifferentKeyIsRejected(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := NewTokenService("one-secret", time.Hour, logger)
	verifier := NewTokenService("another-secret", time.Hour, logger)

	token, err := issuer.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestTokenService(time.Hour)
	userID := uuid.New()

	var gotUserID uuid.UUID
	var gotOK bool
	handler := ts.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("x-auth-token", "garbage")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	token, err := ts.GenerateToken(userID)
	require.NoError(t, err)

	t.Run("x-auth-token header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("x-auth-token", token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotOK)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, gotUserID)
	})
}
