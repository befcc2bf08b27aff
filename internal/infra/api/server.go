package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"lawvriksh-onboarding/internal/infra/logging"
	"lawvriksh-onboarding/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server is the authentication backend: the login endpoint the wizard checks
// credentials against.
type Server struct {
	login usecase.LoginUseCase
	log   *zerolog.Logger
}

func NewServer(login usecase.LoginUseCase, logger *zerolog.Logger) *Server {
	return &Server{login: login, log: logger}
}

// Register attaches the backend routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.handleWelcome)
	r.Post("/api/login", s.handleLogin)
}

// RegisterHealth adds a liveness probe.
func RegisterHealth(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the LawVriksh Backend"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
}

type loginResponse struct {
	Message string `json:"message"`
	User    struct {
		Email string `json:"email"`
	} `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var in loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 16<<10)).Decode(&in); err != nil {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "Request body must be JSON with email and passcode."})
		return
	}

	acc, err := s.login.Login(ctx, in.Email, in.Passcode)
	if err != nil {
		status, detail := usecase.LoginFailure(err)
		if status >= 500 && !errors.Is(err, context.Canceled) {
			logging.With(ctx, s.log).Error().Err(err).Int("status", status).Msg("login failed")
		}
		WriteJSON(w, status, map[string]string{"detail": detail})
		return
	}

	var out loginResponse
	out.Message = "Login successful"
	out.User.Email = acc.Email
	WriteJSON(w, http.StatusOK, out)
}
