package handlers

import (
	"encoding/json"
	"net/http"

	"dev-grove/internal/utils"
)

// ErrorMessage is a single client-facing error.
type ErrorMessage struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the wire shape for every failure.
type ErrorResponse struct {
	Errors []ErrorMessage `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, messages ...string) {
	resp := ErrorResponse{Errors: make([]ErrorMessage, len(messages))}
	for i, msg := range messages {
		resp.Errors[i] = ErrorMessage{Msg: msg}
	}
	writeJSON(w, status, resp)
}

// respondError maps an error onto the wire. AppErrors carry their own
// status and a safe message; anything else is logged in full and
// surfaced as an opaque server error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		status := utils.AppErrorToHTTPStatus(appErr.Code)
		if status >= 500 {
			s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path,
				"code", appErr.Code, "error", appErr.Error())
			writeError(w, status, "Server error")
			return
		}
		writeError(w, status, appErr.Message)
		return
	}

	s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "Server error")
}
