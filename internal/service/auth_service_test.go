package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/storage"
	"github.com/spec-kit/ticket-tracker/pkg/util"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tickets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newSeededRegistry(t *testing.T) *auth.Registry {
	t.Helper()
	registry := auth.NewRegistry(bcrypt.MinCost)
	_, err := registry.Register("Demo User", "demo@example.com", "password123")
	require.NoError(t, err)
	return registry
}

func newTestAuthService(t *testing.T, store storage.Store, registry *auth.Registry, delayMillis int) *AuthService {
	t.Helper()
	cfg := config.AuthConfig{MockDelayMillis: delayMillis, BcryptCost: bcrypt.MinCost}
	return NewAuthService(cfg, AuthDependencies{Store: store, Registry: registry})
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestAuthService(t, store, newSeededRegistry(t), 0)

	user, token, err := svc.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Demo User", user.Name)
	assert.True(t, strings.HasPrefix(token, auth.TokenPrefix))

	state := svc.State()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, token, state.Token)

	stored, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, stored)

	storedUser, err := store.GetUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, storedUser)
	assert.Equal(t, user.ID, storedUser.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestAuthService(t, store, newSeededRegistry(t), 0)

	_, _, err := svc.Login(ctx, "demo@example.com", "wrongpass")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)

	// No session was written on failure.
	token, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.False(t, svc.State().IsAuthenticated)
}

func TestLoginValidationFailure(t *testing.T) {
	svc := newTestAuthService(t, newTestStore(t), newSeededRegistry(t), 0)

	_, _, err := svc.Login(context.Background(), "not-an-email", "")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	fieldErrs, ok := domainErr.Details["field_errors"].([]domain.ValidationError)
	require.True(t, ok)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "email", fieldErrs[0].Field)
	assert.Equal(t, "password", fieldErrs[1].Field)
}

func TestSignupSuccess(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	registry := newSeededRegistry(t)
	svc := newTestAuthService(t, store, registry, 0)

	user, token, err := svc.Signup(ctx, "New User", "new@example.com", "secret99", "secret99")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.True(t, strings.HasPrefix(token, auth.TokenPrefix))
	assert.Equal(t, 2, registry.Len())
	assert.True(t, svc.State().IsAuthenticated)

	// The fresh account can authenticate again.
	_, _, err = svc.Login(ctx, "new@example.com", "secret99")
	assert.NoError(t, err)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	registry := newSeededRegistry(t)
	svc := newTestAuthService(t, store, registry, 0)

	_, _, err := svc.Signup(ctx, "Impostor", "demo@example.com", "secret99", "secret99")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// Registry and session are unchanged.
	assert.Equal(t, 1, registry.Len())
	token, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSignupPasswordMismatch(t *testing.T) {
	svc := newTestAuthService(t, newTestStore(t), newSeededRegistry(t), 0)

	_, _, err := svc.Signup(context.Background(), "New User", "new@example.com", "secret99", "secret98")
	require.Error(t, err)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	fieldErrs := domainErr.Details["field_errors"].([]domain.ValidationError)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, domain.ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}, fieldErrs[0])
}

func TestLogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestAuthService(t, store, newSeededRegistry(t), 0)

	_, _, err := svc.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.State().IsAuthenticated)

	token, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := store.GetUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, svc.Logout(ctx))
}

func TestRestoreSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	registry := newSeededRegistry(t)

	first := newTestAuthService(t, store, registry, 0)
	_, token, err := first.Login(ctx, "demo@example.com", "password123")
	require.NoError(t, err)

	// A new service over the same store picks the session back up.
	second := newTestAuthService(t, store, registry, 0)
	require.NoError(t, second.RestoreSession(ctx))

	state := second.State()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, token, state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, "demo@example.com", state.User.Email)
}

func TestRestoreSessionIgnoresForeignToken(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SetSession(ctx, "not_a_mock_token"))
	require.NoError(t, store.SetUser(ctx, &domain.User{ID: "u1", Email: "demo@example.com", Name: "Demo User"}))

	svc := newTestAuthService(t, store, newSeededRegistry(t), 0)
	require.NoError(t, svc.RestoreSession(ctx))
	assert.False(t, svc.State().IsAuthenticated)
}

func TestValidateSession(t *testing.T) {
	svc := newTestAuthService(t, newTestStore(t), newSeededRegistry(t), 0)

	assert.True(t, svc.ValidateSession(auth.IssueToken("u1")))
	assert.False(t, svc.ValidateSession(""))
	assert.False(t, svc.ValidateSession("bearer xyz"))
}

func TestLoginSimulatedLatency(t *testing.T) {
	svc := newTestAuthService(t, newTestStore(t), newSeededRegistry(t), 30)

	start := time.Now()
	_, _, err := svc.Login(context.Background(), "demo@example.com", "password123")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestLoginHonorsContextCancellation(t *testing.T) {
	store := newTestStore(t)
	svc := newTestAuthService(t, store, newSeededRegistry(t), 5000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Login(ctx, "demo@example.com", "password123")
	require.ErrorIs(t, err, context.Canceled)

	token, err := store.GetSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}
