package auth

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// ErrDuplicateEmail is returned when registering an email that already
// has an account.
var ErrDuplicateEmail = errors.New("an account with this email already exists")

// Registry is the in-memory list of known credentials the mock auth flow
// checks against. Entries live only for the process lifetime. Instances
// are injected rather than shared as package state so each caller (and
// each test) owns its own registry.
type Registry struct {
	mu         sync.Mutex
	entries    []registryEntry
	bcryptCost int
}

type registryEntry struct {
	user         domain.User
	passwordHash string
}

// NewRegistry builds an empty registry hashing credentials at the given
// bcrypt cost.
func NewRegistry(bcryptCost int) *Registry {
	if bcryptCost <= 0 {
		bcryptCost = 10
	}
	return &Registry{bcryptCost: bcryptCost}
}

// Register appends a new account. Emails are unique within the registry.
func (r *Registry) Register(name, email, password string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.user.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := HashPassword(password, r.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}
	r.entries = append(r.entries, registryEntry{user: user, passwordHash: hash})
	return &user, nil
}

// Authenticate looks up a matching (email, password) pair.
func (r *Registry) Authenticate(email, password string) (*domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.user.Email != email {
			continue
		}
		if ComparePassword(entry.passwordHash, password) != nil {
			return nil, false
		}
		user := entry.user
		return &user, true
	}
	return nil, false
}

// Len reports the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
