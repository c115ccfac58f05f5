// Package session holds the signed-in user of this client.
//
// The bearer token is the only persisted state. The user record is derived
// from it by decoding the subject claim and fetching that user from the
// backend, and is published to subscribers whenever it changes.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/token"
	apperrors "github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/errors"
)

var (
	// ErrInvalidToken is returned when a token carries no readable subject
	ErrInvalidToken = apperrors.NewUnauthorizedError("token has no readable subject")

	// ErrSessionChanged is returned when the session was replaced while a
	// sign-in was still fetching its user
	ErrSessionChanged = apperrors.NewConflictError("session changed during sign-in")
)

// UserFetcher loads a user record by email
type UserFetcher interface {
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

// Store holds at most one signed-in user
type Store struct {
	tokens  TokenStore
	users   UserFetcher
	bus     *Broadcast[*entities.User]
	metrics *observability.Metrics

	// persistMu pairs each TokenStore write with the in-memory token change,
	// so the persisted token always matches Token().
	persistMu sync.Mutex

	mu    sync.RWMutex
	token string
	// generation increments on every sign-in and sign-out so a slow
	// fetch cannot publish over a newer session.
	generation uint64
}

// Option configures a Store
type Option func(*Store)

// WithMetrics records session changes
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Store) {
		s.metrics = metrics
	}
}

// NewStore creates an empty session. Call Restore to pick up a token
// persisted by an earlier run.
func NewStore(tokens TokenStore, users UserFetcher, opts ...Option) *Store {
	s := &Store{
		tokens: tokens,
		users:  users,
		bus:    NewBroadcast[*entities.User](nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the current bearer token, empty when signed out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is persisted. Validity and expiry
// are not checked; the backend rejects stale tokens on the next call.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentUser returns the published user, nil when none
func (s *Store) CurrentUser() *entities.User {
	return s.bus.Value()
}

// Subscribe registers fn for user changes. fn immediately receives the
// current user.
func (s *Store) Subscribe(fn func(*entities.User)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Restore loads a persisted token and fetches its user. A token that cannot
// be resolved to a user is discarded.
func (s *Store) Restore(ctx context.Context) error {
	s.persistMu.Lock()
	raw, err := s.tokens.Load(ctx)
	if err != nil {
		s.persistMu.Unlock()
		return fmt.Errorf("failed to load persisted token: %w", err)
	}
	if raw == "" {
		s.persistMu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.token = raw
	s.generation++
	gen := s.generation
	s.mu.Unlock()
	s.persistMu.Unlock()

	_, err = s.resolve(ctx, raw, gen)
	return err
}

// SignIn persists token, fetches the user it names and publishes it. On any
// failure the session is cleared.
func (s *Store) SignIn(ctx context.Context, raw string) (*entities.User, error) {
	s.persistMu.Lock()
	if err := s.tokens.Save(ctx, raw); err != nil {
		s.persistMu.Unlock()
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.token = raw
	s.generation++
	gen := s.generation
	s.mu.Unlock()
	s.persistMu.Unlock()

	return s.resolve(ctx, raw, gen)
}

// Refresh re-fetches the signed-in user, e.g. after a profile edit
func (s *Store) Refresh(ctx context.Context) (*entities.User, error) {
	s.mu.RLock()
	raw, gen := s.token, s.generation
	s.mu.RUnlock()

	if raw == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.resolve(ctx, raw, gen)
}

// SignOut removes the persisted token and publishes "no user"
func (s *Store) SignOut(ctx context.Context) error {
	s.persistMu.Lock()
	s.mu.Lock()
	s.token = ""
	s.generation++
	s.mu.Unlock()
	err := s.tokens.Clear(ctx)
	s.persistMu.Unlock()

	s.publish(ctx, nil)

	observability.LoggerFromContext(ctx).Info().Msg("signed out")
	if err != nil {
		return fmt.Errorf("failed to clear persisted token: %w", err)
	}
	return nil
}

func (s *Store) resolve(ctx context.Context, raw string, gen uint64) (*entities.User, error) {
	logger := observability.LoggerFromContext(ctx)

	email, ok := token.DecodeSubject(raw)
	if !ok {
		logger.Warn().Msg("discarding token without readable subject")
		s.clearIfCurrent(ctx, gen)
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Warn().Err(err).Str("email", email).Msg("failed to fetch signed-in user, clearing session")
		s.clearIfCurrent(ctx, gen)
		return nil, err
	}

	s.mu.RLock()
	current := s.generation == gen
	s.mu.RUnlock()
	if !current {
		return nil, ErrSessionChanged
	}

	s.publish(ctx, user)
	logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("session user loaded")
	return user, nil
}

// clearIfCurrent signs out unless another sign-in or sign-out already
// replaced the session identified by gen.
func (s *Store) clearIfCurrent(ctx context.Context, gen uint64) {
	s.mu.RLock()
	current := s.generation == gen
	s.mu.RUnlock()
	if !current {
		return
	}
	if err := s.SignOut(ctx); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Msg("failed to clear session")
	}
}

func (s *Store) publish(ctx context.Context, user *entities.User) {
	s.bus.Publish(user)
	observability.RecordSessionChange(ctx, s.metrics, user != nil)
}
