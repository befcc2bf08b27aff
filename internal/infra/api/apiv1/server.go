// Package apiv1 is the wizard's presentation contract over HTTP.
package apiv1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
	"lawvriksh-onboarding/internal/domain/ports/repository"
	"lawvriksh-onboarding/internal/infra/api"
	"lawvriksh-onboarding/internal/infra/logging"
	"lawvriksh-onboarding/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBody = 64 << 10

type Server struct {
	wizard usecase.WizardUseCase
	issuer adapter.SessionIssuer
	dev    *usecase.DevNavigator
	log    *zerolog.Logger

	limiter repository.RateLimiter
	limit   int
	window  time.Duration
}

func NewServer(wizard usecase.WizardUseCase, issuer adapter.SessionIssuer, logger *zerolog.Logger) *Server {
	return &Server{wizard: wizard, issuer: issuer, log: logger}
}

// WithDevTools mounts the dev navigation routes.
func (s *Server) WithDevTools(nav *usecase.DevNavigator) *Server {
	s.dev = nav
	return s
}

// WithRateLimit caps actions per session and window; limit <= 0 disables it.
func (s *Server) WithRateLimit(l repository.RateLimiter, limit int, window time.Duration) *Server {
	s.limiter, s.limit, s.window = l, limit, window
	return s
}

// RegisterAPIV1 mounts the /api/v1 routes on r.
func RegisterAPIV1(r chi.Router, s *Server) {
	limited := api.RateLimit(s.limiter, s.limit, s.window, func(r *http.Request) string {
		return repository.SessionActionKey(chi.URLParam(r, "id"))
	}, s.log)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/wizard/sessions", func(r chi.Router) {
			r.Post("/", s.startSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.discardSession)
				r.With(limited).Post("/actions", s.dispatch)
			})
		})
		r.Get("/session/me", s.me)
		r.Delete("/session", s.logout)

		if s.dev != nil {
			r.Route("/dev/sessions/{id}", func(r chi.Router) {
				r.Post("/navigate", s.devNavigate)
				r.Post("/reset", s.devReset)
			})
		}
	})
}

type startRequest struct {
	Flow string `json:"flow"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var in startRequest
	if err := decode(r, &in, true); err != nil {
		s.fail(w, r, err)
		return
	}
	var flow model.Flow
	if in.Flow != "" {
		f, err := model.ParseFlow(in.Flow)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		flow = f
	}
	view, err := s.wizard.Start(r.Context(), flow)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, view)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.wizard.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) discardSession(w http.ResponseWriter, r *http.Request) {
	if err := s.wizard.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	var a model.Action
	if err := decode(r, &a, false); err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.wizard.Dispatch(r.Context(), chi.URLParam(r, "id"), a)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if view.Result != nil && view.Result.Token != "" && s.issuer != nil {
		s.issuer.SetCookie(w, view.Result.Token, view.Result.ExpiresAt)
	}
	api.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	if s.issuer == nil {
		api.WriteError(w, http.StatusNotFound, "sessions are not issued")
		return
	}
	claims, err := s.issuer.ParseFromRequest(r)
	if err != nil {
		api.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}
	api.WriteJSON(w, http.StatusOK, claims)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if s.issuer != nil {
		s.issuer.ClearCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}

type navigateRequest struct {
	Page string `json:"page"`
}

func (s *Server) devNavigate(w http.ResponseWriter, r *http.Request) {
	var in navigateRequest
	if err := decode(r, &in, false); err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.dev.Navigate(r.Context(), chi.URLParam(r, "id"), usecase.DevPage(in.Page))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) devReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.dev.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, view)
}

var errBadBody = errors.New("malformed request body")

// decode reads a JSON body into v. An empty body is accepted when optional is set.
func decode(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && optional:
		return nil
	}
	return errors.Join(errBadBody, domain.ErrInvalidArgument, err)
}

// statusFor maps use-case errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUnsupportedPage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrActionNotAllowed),
		errors.Is(err, domain.ErrWizardCompleted),
		errors.Is(err, domain.ErrSessionBusy),
		errors.Is(err, domain.ErrSubmitInFlight),
		errors.Is(err, domain.ErrNoPendingSubmit),
		errors.Is(err, domain.ErrOperationFailed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		logging.With(r.Context(), s.log).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg = "internal error"
	case http.StatusServiceUnavailable:
		logging.With(r.Context(), s.log).Error().Err(err).Str("path", r.URL.Path).Msg("session store unavailable")
		msg = domain.ErrStoreUnavailable.Error()
	}
	if errors.Is(err, errBadBody) {
		msg = errBadBody.Error()
	}
	api.WriteError(w, status, msg)
}
