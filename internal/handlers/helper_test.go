package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dev-grove/internal/github"
	"dev-grove/internal/middleware"
	"dev-grove/internal/utils"

	"github.com/stretchr/testify/require"
)

type testServer struct {
	store  *fakeStore
	tokens *middleware.TokenService
	server *Server
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newFakeStore()
	tokens := middleware.NewTokenService("test-secret", time.Hour, logger)
	server := NewServer(store, tokens, utils.NewMetricsCollector(), github.NewClient(""), logger)

	return &testServer{
		store:  store,
		tokens: tokens,
		server: server,
		router: server.Router(nil),
	}
}

// do runs one request through the full router. A non-empty token is
// sent in the x-auth-token header.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token.
func (ts *testServer) register(t *testing.T, name, email string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/identities", "", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &value), w.Body.String())
	return value
}

func firstErrorMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeJSON[ErrorResponse](t, w)
	require.NotEmpty(t, resp.Errors)
	return resp.Errors[0].Msg
}
