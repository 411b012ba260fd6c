package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dpetrovs/authgate/internal/common"
)

type credentialsRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	ProjectID string `json:"project_id"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type tokenResponse struct {
	Status       string `json:"status"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeFailure(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	account, err := s.auth.Register(r.Context(), req.Username, req.Password, req.ProjectID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", account.Username, "project_id", account.ProjectID)
	s.writeJSON(w, http.StatusCreated, statusResponse{Status: "ok", Message: "User registered successfully."})
}

func (s *HTTPServer) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeFailure(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	pair, err := s.auth.Authenticate(r.Context(), req.Username, req.Password, req.ProjectID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{
		Status:       "ok",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	pair, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{
		Status:       "ok",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := s.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleProtected(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		s.writeFailure(w, http.StatusUnauthorized, "Could not validate credentials.")
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Message: fmt.Sprintf("Hello, %s!", claims.Subject),
	})
}

// writeError maps a service error to a status code and failure body. Business
// rejections translate silently; anything else is a backend failure, logged
// and reported as a 500.
func (s *HTTPServer) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrWeakCredential):
		s.writeFailure(w, http.StatusBadRequest, "Password must be at least 8 characters long.")
	case errors.Is(err, common.ErrDuplicateAccount):
		s.writeFailure(w, http.StatusBadRequest, "User already exists.")
	case errors.Is(err, common.ErrInvalidCredentials):
		s.writeFailure(w, http.StatusUnauthorized, "Invalid username or password for the specified project.")
	case errors.Is(err, common.ErrInvalidRefreshToken):
		s.writeFailure(w, http.StatusUnauthorized, "Invalid or expired refresh token.")
	case errors.Is(err, common.ErrInvalidAuthHeader):
		s.writeFailure(w, http.StatusUnauthorized, "Invalid authorization header.")
	case errors.Is(err, common.ErrTokenExpired):
		s.writeFailure(w, http.StatusUnauthorized, "Access token expired.")
	case errors.Is(err, common.ErrTokenMalformed):
		s.writeFailure(w, http.StatusUnauthorized, "Invalid access token.")
	default:
		s.logger.Error(ctx, err.Error())
		s.writeFailure(w, http.StatusInternalServerError, "Internal error.")
	}
}

func (s *HTTPServer) writeFailure(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, statusResponse{Status: "failed", Message: message})
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(context.Background(), err.Error())
	}
}
