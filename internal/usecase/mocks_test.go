// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
	"lawvriksh-onboarding/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
)

// memStates is an in-memory WizardStateRepository that stores JSON copies, the same
// way the real stores do.
type memStates struct {
	mu      sync.Mutex
	store   map[string][]byte
	saveErr error
	saves   int
}

func newMemStates() *memStates { return &memStates{store: make(map[string][]byte)} }

func (m *memStates) SaveState(ctx context.Context, s *model.WizardState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[s.ID] = b
	m.saves++
	return nil
}

func (m *memStates) GetState(ctx context.Context, id string) (*model.WizardState, error) {
	m.mu.Lock()
	b, ok := m.store[id]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var s model.WizardState
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memStates) ClearState(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// fakeLocker grants each key once; TryLockFunc overrides the behaviour.
type fakeLocker struct {
	mu          sync.Mutex
	held        map[string]string
	TryLockFunc func(ctx context.Context, key string) (string, error)
}

func newFakeLocker() *fakeLocker { return &fakeLocker{held: make(map[string]string)} }

func (l *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if l.TryLockFunc != nil {
		return l.TryLockFunc(ctx, key)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return "", domain.ErrSessionBusy
	}
	l.held[key] = "tok-" + key
	return l.held[key], nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}

func (l *fakeLocker) isHeld(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok
}

type fakeAuth struct {
	AuthenticateFunc func(ctx context.Context, creds model.Credentials) error
	calls            []model.Credentials
}

func (a *fakeAuth) Authenticate(ctx context.Context, creds model.Credentials) error {
	a.calls = append(a.calls, creds)
	if a.AuthenticateFunc != nil {
		return a.AuthenticateFunc(ctx, creds)
	}
	return nil
}

type recordingPublisher struct {
	mu          sync.Mutex
	intents     []model.Intent
	PublishFunc func(ctx context.Context, in model.Intent) error
}

func (p *recordingPublisher) Publish(ctx context.Context, in model.Intent) error {
	if p.PublishFunc != nil {
		if err := p.PublishFunc(ctx, in); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.intents = append(p.intents, in)
	return nil
}

func (p *recordingPublisher) kinds() []model.IntentKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.IntentKind, 0, len(p.intents))
	for _, in := range p.intents {
		out = append(out, in.Kind)
	}
	return out
}

type fakeIssuer struct {
	MintFunc func(c adapter.SessionClaims) (string, time.Time, error)
	minted   []adapter.SessionClaims
}

func (f *fakeIssuer) Mint(c adapter.SessionClaims) (string, time.Time, error) {
	f.minted = append(f.minted, c)
	if f.MintFunc != nil {
		return f.MintFunc(c)
	}
	return "signed-token", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (f *fakeIssuer) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {}

func (f *fakeIssuer) ClearCookie(w http.ResponseWriter) {}

func (f *fakeIssuer) ParseFromRequest(r *http.Request) (*adapter.SessionClaims, error) {
	return nil, domain.ErrNotFound
}

// memCreds is a CredentialRepository over a map; FindFunc overrides lookups.
type memCreds struct {
	mu       sync.Mutex
	users    map[string]string
	FindFunc func(email, passcode string) (*model.Account, error)
	upserts  []repository.Tx
}

func newMemCreds() *memCreds { return &memCreds{users: make(map[string]string)} }

func (m *memCreds) FindByCredentials(ctx context.Context, tx repository.Tx, email, passcode string) (*model.Account, error) {
	if m.FindFunc != nil {
		return m.FindFunc(email, passcode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.users[email]; ok && p == passcode {
		return &model.Account{Email: email}, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memCreds) Upsert(ctx context.Context, tx repository.Tx, email, passcode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[email] = passcode
	m.upserts = append(m.upserts, tx)
	return nil
}

// fakeTxManager runs fn with a marker transaction.
type fakeTxManager struct{ runs int }

func (f *fakeTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	f.runs++
	return fn(ctx, "tx")
}
