package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"dev-grove/internal/middleware"
	"dev-grove/internal/models"
	"dev-grove/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// RegisterRequest represents a request to register a new user
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// HandleRegister creates a new account and issues a token.
func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	var msgs []string
	if req.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "Please include a valid email")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "Please enter a password with 6 or more characters")
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs...)
		return
	}

	// Registering an email twice must always fail, never duplicate.
	if _, err := s.DB.GetUserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	} else if !utils.IsErrorCode(err, utils.ErrUserNotFound) {
		s.respondError(w, r, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user := &models.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hashed),
		Avatar:         utils.GravatarURL(req.Email),
		CreatedAt:      time.Now(),
	}

	if err := s.DB.SaveUser(r.Context(), user); err != nil {
		s.respondError(w, r, err)
		return
	}

	token, err := s.Tokens.GenerateToken(user.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// HandleLogin verifies credentials and issues a token. Unknown email
// and wrong password produce the same error so the response does not
// reveal which field was wrong.
func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	var msgs []string
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "Please include a valid email")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		writeError(w, http.StatusBadRequest, msgs...)
		return
	}

	user, err := s.DB.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrUserNotFound) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		s.respondError(w, r, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := s.Tokens.GenerateToken(user.ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// HandleCurrentUser returns the authenticated user's record. The
// hashed secret never serializes.
func (s *Server) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	user, err := s.DB.GetUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
