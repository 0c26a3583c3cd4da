package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/storage"
	"github.com/spec-kit/ticket-tracker/internal/validation"
	"github.com/spec-kit/ticket-tracker/pkg/util"
)

// AuthService coordinates the mock login/signup/logout flows. Successful
// logins persist the session and user through the Store and refresh the
// in-memory AuthState the presentation layer reads; failures leave both
// untouched.
type AuthService struct {
	store      storage.Store
	registry   *auth.Registry
	dispatcher events.Dispatcher
	logger     *zap.Logger
	delay      time.Duration

	mu    sync.Mutex
	state domain.AuthState
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	Store      storage.Store
	Registry   *auth.Registry
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		store:      deps.Store,
		registry:   deps.Registry,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		delay:      cfg.MockDelay(),
	}
}

// Login checks credentials against the registry after the simulated
// network delay. On success the session token and user record are
// persisted and the auth state flips to authenticated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if errs := validation.LoginForm(email, password); len(errs) > 0 {
		return nil, "", util.NewValidationError("please fix the errors in the form", fieldErrorDetails(errs))
	}
	if err := s.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	user, ok := s.registry.Authenticate(email, password)
	if !ok {
		return nil, "", util.NewUnauthorized("invalid email or password")
	}

	token := auth.IssueToken(user.ID)
	if err := s.persistSession(ctx, user, token); err != nil {
		return nil, "", err
	}
	s.setState(user, token)
	s.publish(ctx, events.EventUserLoggedIn, events.SessionPayload{UserID: user.ID, Email: user.Email})
	return user, token, nil
}

// Signup registers a new account and signs it in. A duplicate email
// fails with a conflict and leaves the registry unchanged.
func (s *AuthService) Signup(ctx context.Context, name, email, password, confirmPassword string) (*domain.User, string, error) {
	if errs := validation.SignupForm(name, email, password, confirmPassword); len(errs) > 0 {
		return nil, "", util.NewValidationError("please fix the errors in the form", fieldErrorDetails(errs))
	}
	if err := s.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	user, err := s.registry.Register(name, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			return nil, "", util.NewConflict(err.Error(), map[string]any{"email": email})
		}
		return nil, "", err
	}

	token := auth.IssueToken(user.ID)
	if err := s.persistSession(ctx, user, token); err != nil {
		return nil, "", err
	}
	s.setState(user, token)
	s.publish(ctx, events.EventUserSignedUp, events.SessionPayload{UserID: user.ID, Email: user.Email})
	return user, token, nil
}

// Logout clears the persisted session and user. Idempotent.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = domain.AuthState{}
	s.mu.Unlock()
	s.publish(ctx, events.EventUserLoggedOut, events.SessionPayload{})
	return nil
}

// ValidateSession reports whether the token carries the expected opaque
// prefix. No expiry or revocation check exists.
func (s *AuthService) ValidateSession(token string) bool {
	return auth.ValidateToken(token)
}

// RestoreSession replays a previously persisted session, if any. The
// state becomes authenticated only when the stored token is prefix-valid
// and a user record is present.
func (s *AuthService) RestoreSession(ctx context.Context) error {
	token, err := s.store.GetSession(ctx)
	if err != nil {
		return err
	}
	user, err := s.store.GetUser(ctx)
	if err != nil {
		return err
	}
	if auth.ValidateToken(token) && user != nil {
		s.setState(user, token)
	}
	return nil
}

// State returns a snapshot of the current auth state.
func (s *AuthService) State() domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuthService) persistSession(ctx context.Context, user *domain.User, token string) error {
	if err := s.store.SetSession(ctx, token); err != nil {
		return err
	}
	return s.store.SetUser(ctx, user)
}

func (s *AuthService) setState(user *domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.AuthState{User: user, Token: token, IsAuthenticated: true}
}

// simulateLatency suspends the calling operation for the configured
// interval, standing in for the network round-trip a real backend would
// cost.
func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func fieldErrorDetails(errs []domain.ValidationError) map[string]any {
	return map[string]any{"field_errors": errs}
}
