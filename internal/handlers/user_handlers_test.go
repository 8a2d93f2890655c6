package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenFetchCurrentUser(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada Lovelace", "ada@example.com")

	w := ts.do(t, http.MethodGet, "/sessions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The secret must never serialize, under any key.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "Ada Lovelace", raw["name"])
	assert.Equal(t, "ada@example.com", raw["email"])
	assert.Contains(t, raw["avatar"], "gravatar.com")
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "hashedPassword")
	assert.NotContains(t, raw, "HashedPassword")
}

func TestCurrentUserRequiresToken(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ada", "ada@example.com")

	w := ts.do(t, http.MethodGet, "/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/sessions", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/identities", "", RegisterRequest{
		Name:     "",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[ErrorResponse](t, w)
	msgs := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		msgs[i] = e.Msg
	}
	assert.Contains(t, msgs, "Name is required")
	assert.Contains(t, msgs, "Please include a valid email")
	assert.Contains(t, msgs, "Please enter a password with 6 or more characters")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ada", "ada@example.com")

	w := ts.do(t, http.MethodPost, "/identities", "", RegisterRequest{
		Name:     "Someone Else",
		Email:    "ada@example.com",
		Password: "password456",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", firstErrorMsg(t, w))

	// No duplicate record was created.
	assert.Len(t, ts.store.users, 1)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ada", "ada@example.com")

	w := ts.do(t, http.MethodPost, "/sessions", "", LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON[TokenResponse](t, w)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ada", "ada@example.com")

	wrongPassword := ts.do(t, http.MethodPost, "/sessions", "", LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	unknownEmail := ts.do(t, http.MethodPost, "/sessions", "", LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	require.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, firstErrorMsg(t, wrongPassword), firstErrorMsg(t, unknownEmail))
}
