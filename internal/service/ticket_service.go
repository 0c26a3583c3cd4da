package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/storage"
	"github.com/spec-kit/ticket-tracker/internal/validation"
	"github.com/spec-kit/ticket-tracker/pkg/util"
)

// StatusFilterAll selects every ticket regardless of status.
const StatusFilterAll = "all"

// TicketService coordinates ticket workflows. Every mutation follows the
// same protocol: validate, construct or merge the record, persist, then
// reload the full collection into the working view so displayed state
// always reflects durable state.
type TicketService struct {
	store      storage.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu   sync.Mutex
	view []domain.Ticket
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	Store      storage.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketFormInput describes ticket creation payload.
type TicketFormInput struct {
	Title       string
	Description string
	Status      domain.TicketStatus
	Priority    domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create validates the form, builds a ticket with a fresh id and equal
// created/updated timestamps, persists it, and reloads the view. Nothing
// is written when any field fails.
func (s *TicketService) Create(ctx context.Context, input TicketFormInput) (*domain.Ticket, error) {
	if errs := validation.TicketForm(input.Title, string(input.Status), input.Description, string(input.Priority)); len(errs) > 0 {
		return nil, util.NewValidationError("please fix the errors in the form", fieldErrorDetails(errs))
	}

	now := time.Now().UTC()
	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.AddTicket(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketCreated, events.TicketCreatedPayload{
		TicketID: ticket.ID,
		Title:    ticket.Title,
		Status:   ticket.Status,
		Priority: ticket.Priority,
	})
	return &ticket, nil
}

// Update validates the fields the patch sets, merges them over the
// stored ticket, and reloads the view. A missing id surfaces as
// NOT_FOUND; nothing is written on validation failure.
func (s *TicketService) Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	if errs := validatePatch(patch); len(errs) > 0 {
		return nil, util.NewValidationError("please fix the errors in the form", fieldErrorDetails(errs))
	}

	ticket, err := s.store.UpdateTicket(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTicketUpdated, events.TicketUpdatedPayload{
		TicketID: ticket.ID,
		Title:    ticket.Title,
		Status:   ticket.Status,
	})
	return ticket, nil
}

// Delete removes the ticket and reloads the view. Deleting an absent id
// is a no-op that reports zero removed.
func (s *TicketService) Delete(ctx context.Context, id string) (int, error) {
	removed, err := s.store.DeleteTicket(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.reload(ctx); err != nil {
		return 0, err
	}
	if removed > 0 {
		s.publish(ctx, events.EventTicketDeleted, events.TicketDeletedPayload{TicketID: id, Removed: removed})
	}
	return removed, nil
}

// List reloads the collection from the store and returns it.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s.Tickets(), nil
}

// Tickets returns a copy of the last-loaded working view.
func (s *TicketService) Tickets() []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Ticket, len(s.view))
	copy(out, s.view)
	return out
}

// Filter projects the working view down to tickets matching the selected
// status, preserving order. The value "all" (or empty) selects everything.
func (s *TicketService) Filter(status string) []domain.Ticket {
	tickets := s.Tickets()
	if status == "" || status == StatusFilterAll {
		return tickets
	}
	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if string(ticket.Status) == status {
			filtered = append(filtered, ticket)
		}
	}
	return filtered
}

// CountByStatus tallies the working view per status.
func (s *TicketService) CountByStatus() map[domain.TicketStatus]int {
	counts := make(map[domain.TicketStatus]int, 3)
	for _, ticket := range s.Tickets() {
		counts[ticket.Status]++
	}
	return counts
}

// reload pulls the durable collection back into the working view. A
// failing medium is not recoverable here; it surfaces as an internal
// fault ending the operation.
func (s *TicketService) reload(ctx context.Context) error {
	tickets, err := s.store.GetTickets(ctx)
	if err != nil {
		return util.NewInternalError(err)
	}
	s.mu.Lock()
	s.view = tickets
	s.mu.Unlock()
	return nil
}

// validatePatch checks only the fields the patch actually sets; fields
// left nil keep their already-valid stored values.
func validatePatch(patch domain.TicketPatch) []domain.ValidationError {
	var errs []domain.ValidationError
	if patch.Title != nil {
		if err := validation.TicketTitle(*patch.Title); err != nil {
			errs = append(errs, domain.ValidationError{Field: "title", Message: err.Error()})
		}
	}
	if patch.Status != nil {
		if err := validation.TicketStatus(string(*patch.Status)); err != nil {
			errs = append(errs, domain.ValidationError{Field: "status", Message: err.Error()})
		}
	}
	if patch.Description != nil {
		if err := validation.TicketDescription(*patch.Description); err != nil {
			errs = append(errs, domain.ValidationError{Field: "description", Message: err.Error()})
		}
	}
	if patch.Priority != nil {
		if err := validation.TicketPriority(string(*patch.Priority)); err != nil {
			errs = append(errs, domain.ValidationError{Field: "priority", Message: err.Error()})
		}
	}
	return errs
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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
