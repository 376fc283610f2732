// Package session tracks the authenticated identity for the process
// lifetime, driven by the backend's auth-state notifications.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtz196822-maker/digistore-araby/internal/backend"
	"github.com/mtz196822-maker/digistore-araby/internal/domain"
	"github.com/mtz196822-maker/digistore-araby/internal/notify"
)

type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Backend is the identity slice of the backend this manager consumes.
type Backend interface {
	CurrentSession(ctx context.Context) (*backend.Session, error)
	UserProfile(ctx context.Context, userID string) (*domain.User, error)
	Subscribe() *backend.Subscription
}

const profileTimeout = 10 * time.Second

type Manager struct {
	backend  Backend
	notifier notify.Notifier
	logger   zerolog.Logger

	mu    sync.RWMutex
	state State
	user  *domain.User

	sub       *backend.Subscription
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewManager(b Backend, notifier notify.Notifier, logger zerolog.Logger) *Manager {
	return &Manager{
		backend:  b,
		notifier: notifier,
		logger:   logger,
		state:    StateAnonymous,
	}
}

// Start recovers an existing session, then consumes auth events until
// Close. Recovery failure leaves the manager anonymous; it never
// blocks or breaks startup.
func (m *Manager) Start(ctx context.Context) {
	m.sub = m.backend.Subscribe()
	m.wg.Add(1)
	go m.loop()

	m.recover(ctx)
}

func (m *Manager) recover(ctx context.Context) {
	session, err := m.backend.CurrentSession(ctx)
	if errors.Is(err, backend.ErrNoSession) {
		return
	}
	if err != nil {
		m.logger.Warn().Err(err).Msg("session recovery failed")
		return
	}

	user, err := m.backend.UserProfile(ctx, session.UserID)
	if err != nil {
		m.logger.Warn().Err(err).Str("user_id", session.UserID).Msg("profile fetch failed during recovery")
		return
	}

	m.setAuthenticated(user)
}

func (m *Manager) loop() {
	defer m.wg.Done()
	for ev := range m.sub.Events() {
		m.handleEvent(ev)
	}
}

func (m *Manager) handleEvent(ev backend.AuthEvent) {
	switch ev.Type {
	case backend.AuthEventSignedIn:
		m.setState(StateAuthenticating)

		ctx, cancel := context.WithTimeout(context.Background(), profileTimeout)
		user, err := m.backend.UserProfile(ctx, ev.UserID)
		cancel()
		if err != nil {
			// The backend considers this user signed in, we do not.
			// The next app load retries; not an error toast.
			m.logger.Warn().Err(err).Str("user_id", ev.UserID).Msg("profile fetch failed after sign-in")
			m.setAnonymous()
			return
		}

		m.setAuthenticated(user)
		m.notifier.Notify("Welcome, "+user.Name, notify.SeveritySuccess)

	case backend.AuthEventSignedOut:
		m.setAnonymous()
		m.notifier.Notify("Signed out", notify.SeverityInfo)
	}
}

func (m *Manager) setAuthenticated(user *domain.User) {
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	m.mu.Unlock()
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// CurrentUser returns the cached profile, or nil when anonymous.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticated
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Close unsubscribes from auth events and waits for the consumer
// goroutine to drain. Safe to call more than once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		if m.sub != nil {
			m.sub.Unsubscribe()
			m.wg.Wait()
		}
	})
}
