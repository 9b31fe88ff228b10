package indexer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	indexermocks "dupfinder-ai/internal/indexer/mocks"
	"dupfinder-ai/internal/storage"
	storagemocks "dupfinder-ai/internal/storage/mocks"
	"dupfinder-ai/internal/ticket"
	"dupfinder-ai/internal/vectorstore"
	vsmocks "dupfinder-ai/internal/vectorstore/mocks"
)

type pipelineMocks struct {
	tickets  *storagemocks.MockTicketStore
	chunks   *storagemocks.MockChunkStore
	embedder *indexermocks.MockEmbedder
	store    *vsmocks.MockVectorStore
}

func newTestPipeline(t *testing.T, maxChunkBytes int) (*Pipeline, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := pipelineMocks{
		tickets:  storagemocks.NewMockTicketStore(ctrl),
		chunks:   storagemocks.NewMockChunkStore(ctrl),
		embedder: indexermocks.NewMockEmbedder(ctrl),
		store:    vsmocks.NewMockVectorStore(ctrl),
	}

	return NewPipeline(m.tickets, m.chunks, m.embedder, m.store, "tickets", maxChunkBytes), m
}

func TestPipeline_IndexTicket_SingleChunk(t *testing.T) {
	pipeline, m := newTestPipeline(t, 0)
	ctx := context.Background()

	doc := ticket.Document{
		ID:   "GM-1",
		Text: "Robot stuck at charging station",
		Metadata: map[string]string{
			ticket.MetaSummary: "Robot stuck",
			ticket.MetaStatus:  "Closed",
		},
	}

	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-1").Return(nil, storage.ErrNotFound)
	m.embedder.EXPECT().EmbedTexts(gomock.Any(), []string{doc.Text}).Return([][]float32{{0.1, 0.2}}, nil)

	var gotPoints []vectorstore.Point
	m.store.EXPECT().Upsert(gomock.Any(), "tickets", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, points []vectorstore.Point) error {
			gotPoints = points
			return nil
		})

	m.chunks.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *storage.ChunkRecord) error {
			if rec.ID != "GM-1" || rec.TicketID != "GM-1" || rec.ChunkIndex != 0 {
				t.Errorf("Insert() record = %+v", rec)
			}
			return nil
		})

	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *storage.TicketRecord) error {
			if rec.Summary != "Robot stuck" || rec.Hash == "" {
				t.Errorf("Upsert() record = %+v", rec)
			}
			return nil
		})

	res, err := pipeline.IndexTicket(ctx, doc)
	if err != nil {
		t.Fatalf("IndexTicket() error = %v", err)
	}

	if res.ChunksTotal != 1 || res.ChunksIndexed != 1 || res.ChunksFailed != 0 || res.Skipped {
		t.Errorf("IndexTicket() result = %+v", res)
	}

	if len(gotPoints) != 1 {
		t.Fatalf("Upsert() got %d points, want 1", len(gotPoints))
	}
	point := gotPoints[0]
	if point.ChunkID != "GM-1" {
		t.Errorf("point ChunkID = %q, want bare ticket ID for single chunk", point.ChunkID)
	}
	if point.Meta[ticket.MetaTicketID] != "GM-1" {
		t.Errorf("point missing ticket_id metadata: %v", point.Meta)
	}
	if _, ok := point.Meta[ticket.MetaIsChunked]; ok {
		t.Error("single-chunk point should not carry chunk bookkeeping metadata")
	}
}

func TestPipeline_IndexTicket_SkipsUnchanged(t *testing.T) {
	pipeline, m := newTestPipeline(t, 0)

	doc := ticket.Document{ID: "GM-1", Text: "same content"}
	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-1").Return(
		&storage.TicketRecord{ID: "GM-1", Hash: contentHash(doc.Text)}, nil)

	res, err := pipeline.IndexTicket(context.Background(), doc)
	if err != nil {
		t.Fatalf("IndexTicket() error = %v", err)
	}
	if !res.Skipped {
		t.Error("IndexTicket() should skip unchanged ticket")
	}
	if res.ChunksIndexed != 0 {
		t.Errorf("IndexTicket() ChunksIndexed = %d, want 0", res.ChunksIndexed)
	}
}

func TestPipeline_IndexTicket_ReindexRemovesOldChunks(t *testing.T) {
	pipeline, m := newTestPipeline(t, 0)

	doc := ticket.Document{ID: "GM-1", Text: "new content"}
	oldIDs := []string{"GM-1_chunk0", "GM-1_chunk1"}

	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-1").Return(
		&storage.TicketRecord{ID: "GM-1", Hash: "stale"}, nil)
	m.chunks.EXPECT().ListIDsByTicket(gomock.Any(), "GM-1").Return(oldIDs, nil)
	m.store.EXPECT().Delete(gomock.Any(), "tickets", oldIDs).Return(nil)
	m.chunks.EXPECT().DeleteByTicket(gomock.Any(), "GM-1").Return(nil)

	m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{0.5}}, nil)
	m.store.EXPECT().Upsert(gomock.Any(), "tickets", gomock.Any()).Return(nil)
	m.chunks.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := pipeline.IndexTicket(context.Background(), doc)
	if err != nil {
		t.Fatalf("IndexTicket() error = %v", err)
	}
	if res.ChunksIndexed != 1 {
		t.Errorf("IndexTicket() ChunksIndexed = %d, want 1", res.ChunksIndexed)
	}
}

func TestPipeline_IndexTicket_ChunkFailureIsolated(t *testing.T) {
	// Budget of 10 bytes splits the three paragraphs into three chunks.
	pipeline, m := newTestPipeline(t, 10)

	doc := ticket.Document{ID: "GM-1", Text: "aaaa\n\nbbbb\n\ncccc"}

	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-1").Return(nil, storage.ErrNotFound)

	m.embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"aaaa"}).Return([][]float32{{0.1}}, nil)
	m.embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"bbbb"}).Return(nil, errors.New("provider unavailable"))
	m.embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"cccc"}).Return([][]float32{{0.3}}, nil)

	var upserted []string
	m.store.EXPECT().Upsert(gomock.Any(), "tickets", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, points []vectorstore.Point) error {
			for _, p := range points {
				upserted = append(upserted, p.ChunkID)
			}
			return nil
		}).Times(2)
	m.chunks.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *storage.TicketRecord) error {
			if rec.Hash != "" {
				t.Error("hash should not be recorded when chunks failed")
			}
			return nil
		})

	res, err := pipeline.IndexTicket(context.Background(), doc)
	if err != nil {
		t.Fatalf("IndexTicket() error = %v, chunk failures must not fail the ticket", err)
	}

	if res.ChunksTotal != 3 || res.ChunksIndexed != 2 || res.ChunksFailed != 1 {
		t.Errorf("IndexTicket() result = %+v, want 3 total / 2 indexed / 1 failed", res)
	}

	want := []string{"GM-1_chunk0", "GM-1_chunk2"}
	if len(upserted) != 2 || upserted[0] != want[0] || upserted[1] != want[1] {
		t.Errorf("upserted chunk IDs = %v, want %v", upserted, want)
	}
}

func TestPipeline_IndexTicket_MultiChunkMetadata(t *testing.T) {
	pipeline, m := newTestPipeline(t, 10)

	doc := ticket.Document{ID: "GM-1", Text: "aaaa\n\nbbbb"}

	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-1").Return(nil, storage.ErrNotFound)
	m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{0.1}}, nil).Times(2)

	var points []vectorstore.Point
	m.store.EXPECT().Upsert(gomock.Any(), "tickets", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, ps []vectorstore.Point) error {
			points = append(points, ps...)
			return nil
		}).Times(2)
	m.chunks.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	if _, err := pipeline.IndexTicket(context.Background(), doc); err != nil {
		t.Fatalf("IndexTicket() error = %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	for i, p := range points {
		if !strings.HasPrefix(p.ChunkID, "GM-1_chunk") {
			t.Errorf("point %d ChunkID = %q, want _chunk suffix", i, p.ChunkID)
		}
		if p.Meta[ticket.MetaIsChunked] != "true" {
			t.Errorf("point %d missing is_chunked metadata", i)
		}
		if p.Meta[ticket.MetaTotalChunks] != "2" {
			t.Errorf("point %d total_chunks = %q, want 2", i, p.Meta[ticket.MetaTotalChunks])
		}
	}
	if points[0].Meta[ticket.MetaChunkIndex] != "0" || points[1].Meta[ticket.MetaChunkIndex] != "1" {
		t.Errorf("chunk_index metadata = %q, %q",
			points[0].Meta[ticket.MetaChunkIndex], points[1].Meta[ticket.MetaChunkIndex])
	}
}

func TestPipeline_IndexAll(t *testing.T) {
	pipeline, m := newTestPipeline(t, 0)

	docs := []ticket.Document{
		{ID: "GM-1", Text: "first"},
		{ID: "GM-2", Text: "second"},
		{ID: "GM-3", Text: "third"},
	}

	// GM-1 indexes, GM-2 is unchanged, GM-3 fails at lookup.
	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-1").Return(nil, storage.ErrNotFound)
	m.embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"first"}).Return([][]float32{{0.1}}, nil)
	m.store.EXPECT().Upsert(gomock.Any(), "tickets", gomock.Any()).Return(nil)
	m.chunks.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-2").Return(
		&storage.TicketRecord{ID: "GM-2", Hash: contentHash("second")}, nil)

	m.tickets.EXPECT().GetByID(gomock.Any(), "GM-3").Return(nil, errors.New("db locked"))

	summary, err := pipeline.IndexAll(context.Background(), docs)
	if err != nil {
		t.Fatalf("IndexAll() error = %v", err)
	}

	if summary.TicketsIndexed != 1 || summary.TicketsSkipped != 1 || summary.TicketsFailed != 1 {
		t.Errorf("IndexAll() summary = %+v", summary)
	}
	if summary.ChunksIndexed != 1 {
		t.Errorf("IndexAll() ChunksIndexed = %d, want 1", summary.ChunksIndexed)
	}
}

func TestPipeline_IndexAll_Cancellation(t *testing.T) {
	pipeline, _ := newTestPipeline(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.IndexAll(ctx, []ticket.Document{{ID: "GM-1", Text: "x"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("IndexAll() error = %v, want context.Canceled", err)
	}
}
