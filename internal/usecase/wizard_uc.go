package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
	"lawvriksh-onboarding/internal/domain/ports/repository"
	"lawvriksh-onboarding/internal/infra/logging"
	"lawvriksh-onboarding/internal/infra/metrics"
	"lawvriksh-onboarding/internal/wizard"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ WizardUseCase = (*wizardUC)(nil)

// WizardUseCase hosts wizard sessions: one action per session at a time, state kept for
// the session lifetime only.
type WizardUseCase interface {
	Start(ctx context.Context, flow model.Flow) (*model.WizardView, error)
	View(ctx context.Context, sessionID string) (*model.WizardView, error)
	Dispatch(ctx context.Context, sessionID string, a model.Action) (*model.WizardView, error)
	Discard(ctx context.Context, sessionID string) error
	// Reset puts an existing session back at its first step with an empty draft.
	Reset(ctx context.Context, sessionID string) (*model.WizardView, error)
}

type WizardOptions struct {
	Flow           model.Flow
	Policy         wizard.Policy
	LockTTL        time.Duration
	PendingTimeout time.Duration
	Dev            bool
}

var errStaleSubmit = errors.New("authentication outcome never arrived")

type wizardUC struct {
	states  repository.WizardStateRepository
	locker  repository.Locker
	auth    adapter.Authenticator
	intents adapter.IntentPublisher
	issuer  adapter.SessionIssuer
	opts    WizardOptions
	log     *zerolog.Logger
	now     func() time.Time
}

// NewWizardUseCase wires the session host. A nil auth completes logins without a
// credential check.
func NewWizardUseCase(
	states repository.WizardStateRepository,
	locker repository.Locker,
	auth adapter.Authenticator,
	intents adapter.IntentPublisher,
	issuer adapter.SessionIssuer,
	opts WizardOptions,
	logger *zerolog.Logger,
) *wizardUC {
	if opts.Flow == "" {
		opts.Flow = model.FlowOnboarding
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Second
	}
	if opts.PendingTimeout <= 0 {
		opts.PendingTimeout = 30 * time.Second
	}
	opts.Policy.CheckCredentials = auth != nil
	l := logger.With().Str("component", "WizardUC").Logger()
	return &wizardUC{
		states:  states,
		locker:  locker,
		auth:    auth,
		intents: intents,
		issuer:  issuer,
		opts:    opts,
		log:     &l,
		now:     time.Now,
	}
}

func (u *wizardUC) Start(ctx context.Context, flow model.Flow) (*model.WizardView, error) {
	defer logging.TraceDuration(u.log, "WizardUC.Start")()
	if flow == "" {
		flow = u.opts.Flow
	}
	state := model.NewWizardState("", flow)
	if err := u.states.SaveState(ctx, state); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}
	metrics.IncSessionStarted(string(flow))

	ctx = logging.WithFlow(logging.WithSessionID(ctx, state.ID), string(flow))
	logging.With(ctx, u.log).Info().Msg("wizard session started")
	return u.render(state), nil
}

func (u *wizardUC) View(ctx context.Context, sessionID string) (*model.WizardView, error) {
	state, err := u.states.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !u.isStale(state) {
		return u.render(state), nil
	}
	view, err := u.withSession(ctx, sessionID, func(ctx context.Context, c *wizard.Controller) (bool, error) {
		return false, nil
	})
	if errors.Is(err, domain.ErrSessionBusy) {
		return u.render(state), nil
	}
	return view, err
}

func (u *wizardUC) Dispatch(ctx context.Context, sessionID string, a model.Action) (*model.WizardView, error) {
	defer logging.TraceDuration(u.log, "WizardUC.Dispatch")()
	ctx = logging.WithSessionID(ctx, sessionID)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	metrics.IncAction(string(a.Type))

	var creds *model.Credentials
	view, err := u.withSession(ctx, sessionID, func(ctx context.Context, c *wizard.Controller) (bool, error) {
		eff, err := c.Dispatch(a)
		if err != nil {
			return false, err
		}
		u.apply(ctx, c.State(), eff)
		creds = eff.Credentials
		return true, nil
	})
	if err != nil || creds == nil {
		return view, err
	}

	// The pending marker is saved and the lock released; check credentials outside it.
	authErr := u.authenticate(ctx, *creds)
	return u.resolve(ctx, sessionID, authErr)
}

func (u *wizardUC) Discard(ctx context.Context, sessionID string) error {
	if _, err := u.states.GetState(ctx, sessionID); err != nil {
		return err
	}
	if err := u.states.ClearState(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logging.With(logging.WithSessionID(ctx, sessionID), u.log).Info().Msg("wizard session discarded")
	return nil
}

func (u *wizardUC) Reset(ctx context.Context, sessionID string) (*model.WizardView, error) {
	unlock, err := u.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	old, err := u.states.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state := model.NewWizardState(old.ID, old.Flow)
	state.CreatedAt = old.CreatedAt
	if err := u.states.SaveState(ctx, state); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return u.render(state), nil
}

// withSession loads the session under its lock, settles a stale pending submit, runs fn
// and saves when either changed the state.
func (u *wizardUC) withSession(ctx context.Context, sessionID string, fn func(ctx context.Context, c *wizard.Controller) (bool, error)) (*model.WizardView, error) {
	unlock, err := u.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	state, err := u.states.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c := u.controller(state)

	dirty := false
	if u.isStale(state) {
		logging.With(ctx, u.log).Warn().Time("pending_since", state.PendingSince).Msg("settling stale login submit")
		eff, err := c.ResolveAuth(errStaleSubmit)
		if err != nil {
			return nil, err
		}
		u.apply(ctx, state, eff)
		dirty = true
	}

	changed, fnErr := fn(ctx, c)
	if changed || dirty {
		state.Touch()
		if err := u.states.SaveState(ctx, state); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	if fnErr != nil {
		return nil, fnErr
	}
	return u.render(state), nil
}

// resolve applies the authentication outcome. Another request may hold the lock for a
// moment, so it is retried; a session reset in the meantime keeps its new state.
func (u *wizardUC) resolve(ctx context.Context, sessionID string, authErr error) (*model.WizardView, error) {
	var (
		view *model.WizardView
		err  error
	)
	for attempt := 0; attempt < 20; attempt++ {
		view, err = u.withSession(ctx, sessionID, func(ctx context.Context, c *wizard.Controller) (bool, error) {
			eff, err := c.ResolveAuth(authErr)
			if errors.Is(err, domain.ErrNoPendingSubmit) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			u.apply(ctx, c.State(), eff)
			return true, nil
		})
		if !errors.Is(err, domain.ErrSessionBusy) {
			return view, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
	}
	return nil, err
}

func (u *wizardUC) lock(ctx context.Context, sessionID string) (func(), error) {
	key := repository.SessionLockKey(sessionID)
	token, err := u.locker.TryLock(ctx, key, u.opts.LockTTL)
	if err != nil {
		return nil, err
	}
	return func() {
		// release even when the request context is already cancelled
		if err := u.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			logging.With(ctx, u.log).Warn().Err(err).Msg("unlock failed")
		}
	}, nil
}

func (u *wizardUC) controller(state *model.WizardState) *wizard.Controller {
	return wizard.NewController(state, u.opts.Policy)
}

func (u *wizardUC) render(state *model.WizardState) *model.WizardView {
	v := wizard.Render(state, u.opts.Policy)
	return &v
}

func (u *wizardUC) isStale(state *model.WizardState) bool {
	return state.Pending && u.now().Sub(state.PendingSince) > u.opts.PendingTimeout
}

func (u *wizardUC) authenticate(ctx context.Context, creds model.Credentials) error {
	start := u.now()
	err := u.auth.Authenticate(ctx, creds)
	outcome := "success"
	var rejected *model.RejectedError
	switch {
	case err == nil:
	case errors.As(err, &rejected):
		outcome = "rejected"
	default:
		outcome = "transport"
	}
	metrics.ObserveAuthBackend(outcome, time.Since(start).Milliseconds())

	l := logging.With(ctx, u.log)
	if outcome == "transport" {
		l.Warn().Err(err).Msg("authentication backend unreachable")
	} else {
		l.Debug().Str("outcome", outcome).Str("email", logging.Redact(creds.Email, u.opts.Dev)).Msg("credential check finished")
	}
	return err
}

// apply carries out what the controller asked for: metrics, the completion token and
// intent delivery.
func (u *wizardUC) apply(ctx context.Context, state *model.WizardState, eff wizard.Effects) {
	l := logging.With(ctx, u.log)
	if eff.Invalid != "" {
		metrics.IncValidationFailure(string(state.Mode))
		l.Debug().Str("mode", string(state.Mode)).Str("reason", eff.Invalid).Msg("submit refused")
	}
	if eff.Transitioned() {
		metrics.IncTransition(string(eff.From), string(eff.To))
	}
	if eff.Completed && state.Result != nil {
		u.mint(ctx, state)
		metrics.IncSessionCompleted(string(state.Flow), state.Result.Via)
		l.Info().
			Str("via", state.Result.Via).
			Str("email", logging.Redact(state.Result.Email, u.opts.Dev)).
			Msg("wizard completed")
	}
	for _, in := range eff.Intents {
		if err := u.intents.Publish(ctx, in); err != nil {
			metrics.IncIntentDropped(string(in.Kind))
			l.Warn().Err(err).Str("intent", string(in.Kind)).Msg("intent not delivered")
		}
	}
}

func (u *wizardUC) mint(ctx context.Context, state *model.WizardState) {
	if u.issuer == nil {
		return
	}
	r := state.Result
	token, exp, err := u.issuer.Mint(adapter.SessionClaims{
		SessionID:  state.ID,
		Email:      r.Email,
		UserName:   r.UserName,
		Profession: r.Profession,
		Interests:  r.Interests,
		Via:        r.Via,
	})
	if err != nil {
		logging.With(ctx, u.log).Error().Err(err).Msg("failed to mint session token")
		return
	}
	r.Token = token
	r.ExpiresAt = exp
}
