package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ticket_store.go -package=mocks dupfinder-ai/internal/storage TicketStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// TicketStore defines the interface for ticket bookkeeping operations.
type TicketStore interface {
	// GetByID gets a ticket record by its ticket key.
	// Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*TicketRecord, error)
	// Upsert inserts a new ticket record or updates an existing one.
	Upsert(ctx context.Context, ticket *TicketRecord) error
}

// TicketRepo provides methods for ticket operations.
// It implements the TicketStore interface.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo creates a new TicketRepo.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// GetByID gets a ticket record by its ticket key.
// Returns nil and ErrNotFound if not found.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*TicketRecord, error) {
	var ticket TicketRecord
	var updatedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, summary, status, resolution, priority, hash, updated_at FROM tickets WHERE id = ?",
		id,
	).Scan(&ticket.ID, &ticket.Summary, &ticket.Status, &ticket.Resolution, &ticket.Priority, &ticket.Hash, &updatedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket: %w", err)
	}

	ticket.UpdatedAt, err = time.Parse("2006-01-02 15:04:05", updatedAtStr)
	if err != nil {
		// SQLite may store timestamps in RFC3339 depending on how they were written
		ticket.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
		}
	}

	return &ticket, nil
}

// Upsert inserts a new ticket record or updates an existing one, refreshing
// the content hash and metadata columns.
func (r *TicketRepo) Upsert(ctx context.Context, ticket *TicketRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, summary, status, resolution, priority, hash, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET
		 summary = excluded.summary, status = excluded.status, resolution = excluded.resolution,
		 priority = excluded.priority, hash = excluded.hash, updated_at = CURRENT_TIMESTAMP`,
		ticket.ID, ticket.Summary, ticket.Status, ticket.Resolution, ticket.Priority, ticket.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ticket: %w", err)
	}

	return nil
}
