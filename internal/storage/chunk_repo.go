package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks dupfinder-ai/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ChunkStore defines the interface for chunk bookkeeping operations.
type ChunkStore interface {
	// Insert inserts a single chunk record.
	Insert(ctx context.Context, chunk *ChunkRecord) error
	// DeleteByTicket deletes all chunk records for a given ticket.
	DeleteByTicket(ctx context.Context, ticketID string) error
	// ListIDsByTicket returns all chunk IDs for a ticket, ordered by chunk_index.
	ListIDsByTicket(ctx context.Context, ticketID string) ([]string, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Insert inserts a single chunk record. Re-indexing overwrites by chunk ID.
func (r *ChunkRepo) Insert(ctx context.Context, chunk *ChunkRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chunks (id, ticket_id, chunk_index, byte_len) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 ticket_id = excluded.ticket_id, chunk_index = excluded.chunk_index, byte_len = excluded.byte_len`,
		chunk.ID, chunk.TicketID, chunk.ChunkIndex, chunk.ByteLen,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// DeleteByTicket deletes all chunk records for a given ticket.
// Used when re-indexing a ticket to remove stale chunk rows first.
func (r *ChunkRepo) DeleteByTicket(ctx context.Context, ticketID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM chunks WHERE ticket_id = ?", ticketID)
	if err != nil {
		return fmt.Errorf("failed to delete chunks by ticket: %w", err)
	}
	return nil
}

// ListIDsByTicket returns all chunk IDs for a ticket, ordered by chunk_index.
// Returns an empty slice if no chunks exist (not an error). Used to find the
// vector store points to delete before re-indexing.
func (r *ChunkRepo) ListIDsByTicket(ctx context.Context, ticketID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM chunks WHERE ticket_id = ? ORDER BY chunk_index",
		ticketID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chunk ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}
