package http

import (
	"errors"
	"log/slog"
	"net/http"

	"arthika/internal/core"
	"arthika/internal/services"
)

// loginRetrySeconds is surfaced to clients so they can show the same
// countdown the web UI renders before retrying.
const loginRetrySeconds = 10

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req core.UserProfile
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = sanitizeInput(req.Name)
	req.Email = sanitizeInput(req.Email)

	if err := s.auth.SignUp(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Account created", "email", req.Email)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *Server) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":               "user not found",
				"retry_after_seconds": loginRetrySeconds,
			})
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"name":   user.Name,
		"email":  user.Email,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.auth.Profile(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name":  profile.Name,
		"email": profile.Email,
		"photo": profile.Photo,
	})
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var req core.UserProfile
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = sanitizeInput(req.Name)
	req.Email = sanitizeInput(req.Email)

	if err := s.auth.SaveProfile(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleGetSavings(w http.ResponseWriter, r *http.Request) {
	savings, err := s.auth.Savings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"savings": savings,
		"total":   core.SavingsTotal(savings),
		"advice":  core.SavingsAdvice(savings),
	})
}

func (s *Server) handlePutSavings(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	savings, err := s.auth.SaveSavings(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"savings": savings,
		"total":   core.SavingsTotal(savings),
		"advice":  core.SavingsAdvice(savings),
	})
}

func (s *Server) handleDeleteSavings(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.ClearSavings(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
