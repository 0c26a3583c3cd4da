// Package storage is the persistence boundary for the tracker. It owns the
// durable copies of the session token, the current user, and the ticket
// collection; callers hold transient copies they must reload after any
// mutation. Every ticket write serializes the full collection back under
// its key.
package storage

import (
	"context"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// Logical record keys in the underlying key-value medium.
const (
	sessionKey = "ticketapp_session"
	userKey    = "ticketapp_user"
	ticketsKey = "ticketapp_tickets"
)

// Store maps logical keys to JSON-serialized records.
type Store interface {
	// GetSession returns the persisted session token, or "" when absent.
	GetSession(ctx context.Context) (string, error)
	SetSession(ctx context.Context, token string) error
	// ClearSession removes the session token and the current user record.
	ClearSession(ctx context.Context) error

	// GetUser returns the persisted user, or nil when absent.
	GetUser(ctx context.Context) (*domain.User, error)
	SetUser(ctx context.Context, user *domain.User) error

	// GetTickets returns the persisted collection in insertion order,
	// empty when absent.
	GetTickets(ctx context.Context) ([]domain.Ticket, error)
	SetTickets(ctx context.Context, tickets []domain.Ticket) error

	// AddTicket appends to the end of the persisted collection.
	AddTicket(ctx context.Context, ticket domain.Ticket) error
	// UpdateTicket merges the patch over the matching ticket, refreshes
	// its UpdatedAt, and returns the stored result. A missing id is a
	// NOT_FOUND error rather than a silent no-op.
	UpdateTicket(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error)
	// DeleteTicket removes the matching ticket and reports how many
	// records went away. Deleting an absent id is not an error.
	DeleteTicket(ctx context.Context, id string) (int, error)

	Close() error
}
