package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *TicketRepo {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return NewTicketRepo(db)
}

func TestTicketRepo_GetByID_NotFound(t *testing.T) {
	repo := newTestDB(t)

	_, err := repo.GetByID(context.Background(), "GM-404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestTicketRepo_UpsertAndGet(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	ticket := &TicketRecord{
		ID:         "GM-247999",
		Summary:    "Robot stuck at charging station",
		Status:     "Closed",
		Resolution: "Fixed",
		Priority:   "P1",
		Hash:       "abc123",
	}

	if err := repo.Upsert(ctx, ticket); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "GM-247999")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Summary != ticket.Summary {
		t.Errorf("GetByID() Summary = %q, want %q", got.Summary, ticket.Summary)
	}
	if got.Hash != "abc123" {
		t.Errorf("GetByID() Hash = %q, want abc123", got.Hash)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("GetByID() UpdatedAt should be set")
	}
}

func TestTicketRepo_Upsert_UpdatesExisting(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	first := &TicketRecord{ID: "GM-1", Summary: "old summary", Hash: "hash1"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	second := &TicketRecord{ID: "GM-1", Summary: "new summary", Status: "Open", Hash: "hash2"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert() second error = %v", err)
	}

	got, err := repo.GetByID(ctx, "GM-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Summary != "new summary" {
		t.Errorf("GetByID() Summary = %q, want new summary", got.Summary)
	}
	if got.Hash != "hash2" {
		t.Errorf("GetByID() Hash = %q, want hash2", got.Hash)
	}
}
