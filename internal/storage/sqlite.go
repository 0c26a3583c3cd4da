package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/pkg/util"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// sqliteStore persists records as JSON values in a single local SQLite
// file, one value per logical key.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure kv table: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

// Close closes the SQLite handle.
func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) getValue(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *sqliteStore) setValue(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) deleteValue(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key=?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *sqliteStore) GetSession(ctx context.Context) (string, error) {
	raw, ok, err := s.getValue(ctx, sessionKey)
	if err != nil || !ok {
		return "", err
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return "", fmt.Errorf("decode session: %w", err)
	}
	return token, nil
}

func (s *sqliteStore) SetSession(ctx context.Context, token string) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.setValue(ctx, sessionKey, raw)
}

func (s *sqliteStore) ClearSession(ctx context.Context) error {
	if err := s.deleteValue(ctx, sessionKey); err != nil {
		return err
	}
	return s.deleteValue(ctx, userKey)
}

func (s *sqliteStore) GetUser(ctx context.Context) (*domain.User, error) {
	raw, ok, err := s.getValue(ctx, userKey)
	if err != nil || !ok {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (s *sqliteStore) SetUser(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.setValue(ctx, userKey, raw)
}

func (s *sqliteStore) GetTickets(ctx context.Context) ([]domain.Ticket, error) {
	raw, ok, err := s.getValue(ctx, ticketsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Ticket{}, nil
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

func (s *sqliteStore) SetTickets(ctx context.Context, tickets []domain.Ticket) error {
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	raw, err := json.Marshal(tickets)
	if err != nil {
		return err
	}
	return s.setValue(ctx, ticketsKey, raw)
}

func (s *sqliteStore) AddTicket(ctx context.Context, ticket domain.Ticket) error {
	tickets, err := s.GetTickets(ctx)
	if err != nil {
		return err
	}
	return s.SetTickets(ctx, append(tickets, ticket))
}

func (s *sqliteStore) UpdateTicket(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	tickets, err := s.GetTickets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		patch.Apply(&tickets[i])
		tickets[i].UpdatedAt = time.Now().UTC()
		if err := s.SetTickets(ctx, tickets); err != nil {
			return nil, err
		}
		updated := tickets[i]
		return &updated, nil
	}
	return nil, util.NewNotFound("ticket", map[string]any{"id": id})
}

func (s *sqliteStore) DeleteTicket(ctx context.Context, id string) (int, error) {
	tickets, err := s.GetTickets(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.ID == id {
			continue
		}
		kept = append(kept, ticket)
	}
	removed := len(tickets) - len(kept)
	if err := s.SetTickets(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}
