package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"dupfinder-ai/internal/contextutil"
	"dupfinder-ai/internal/storage"
	"dupfinder-ai/internal/ticket"
	"dupfinder-ai/internal/vectorstore"
)

// Pipeline drives the ingest path for a ticket document: chunk the
// consolidated text, embed each chunk, and write the vectors and
// bookkeeping rows. Each chunk is embedded in its own call so that one
// bad chunk cannot take down the rest of the ticket.
type Pipeline struct {
	tickets    storage.TicketStore
	chunks     storage.ChunkStore
	embedder   Embedder
	store      vectorstore.VectorStore
	chunker    *ByteChunker
	collection string
}

func NewPipeline(tickets storage.TicketStore, chunks storage.ChunkStore, embedder Embedder, store vectorstore.VectorStore, collection string, maxChunkBytes int) *Pipeline {
	return &Pipeline{
		tickets:    tickets,
		chunks:     chunks,
		embedder:   embedder,
		store:      store,
		chunker:    NewByteChunker(maxChunkBytes),
		collection: collection,
	}
}

// IndexTicket indexes one ticket document. Unchanged tickets are
// detected by content hash and skipped. Re-indexed tickets have their
// previous chunks removed first so stale vectors cannot linger when
// the new split produces fewer chunks.
func (p *Pipeline) IndexTicket(ctx context.Context, doc ticket.Document) (IndexResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	res := IndexResult{TicketID: doc.ID}

	hash := contentHash(doc.Text)

	existing, err := p.tickets.GetByID(ctx, doc.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return res, fmt.Errorf("failed to look up ticket %s: %w", doc.ID, err)
	}
	if existing != nil && existing.Hash == hash {
		logger.Debug("ticket unchanged, skipping", "ticket_id", doc.ID)
		res.Skipped = true
		return res, nil
	}

	if existing != nil {
		if err := p.removeOldChunks(ctx, doc.ID); err != nil {
			return res, err
		}
	}

	chunks := p.chunker.Split(doc.Text)
	res.ChunksTotal = len(chunks)

	for i, text := range chunks {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		chunkID := ticket.ChunkID(doc.ID, i, len(chunks))
		if err := p.indexChunk(ctx, doc, chunkID, text, i, len(chunks)); err != nil {
			res.ChunksFailed++
			logger.Warn("failed to index chunk",
				"ticket_id", doc.ID,
				"chunk_id", chunkID,
				"error", err)
			continue
		}
		res.ChunksIndexed++
	}

	record := &storage.TicketRecord{
		ID:         doc.ID,
		Summary:    doc.Metadata[ticket.MetaSummary],
		Status:     doc.Metadata[ticket.MetaStatus],
		Resolution: doc.Metadata[ticket.MetaResolution],
		Priority:   doc.Metadata[ticket.MetaPriority],
	}
	// Only record the content hash when every chunk made it in, so the
	// next run re-indexes tickets with failed chunks instead of skipping.
	if res.ChunksFailed == 0 {
		record.Hash = hash
	}
	if err := p.tickets.Upsert(ctx, record); err != nil {
		return res, fmt.Errorf("failed to record ticket %s: %w", doc.ID, err)
	}

	logger.Info("indexed ticket",
		"ticket_id", doc.ID,
		"chunks_total", res.ChunksTotal,
		"chunks_indexed", res.ChunksIndexed,
		"chunks_failed", res.ChunksFailed)

	return res, nil
}

// IndexAll indexes a batch of documents. Per-ticket failures are
// counted and logged but do not stop the batch; context cancellation
// does.
func (p *Pipeline) IndexAll(ctx context.Context, docs []ticket.Document) (IndexSummary, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var summary IndexSummary

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res, err := p.IndexTicket(ctx, doc)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return summary, err
			}
			logger.Error("failed to index ticket", "ticket_id", doc.ID, "error", err)
		}
		summary.add(res, err)
	}

	return summary, nil
}

func (p *Pipeline) indexChunk(ctx context.Context, doc ticket.Document, chunkID, text string, index, total int) error {
	vectors, err := p.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return fmt.Errorf("failed to embed chunk: %w", err)
	}
	if len(vectors) != 1 {
		return fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}

	point := vectorstore.Point{
		ChunkID: chunkID,
		Vec:     vectors[0],
		Content: text,
		Meta:    chunkMetadata(doc, index, total),
	}
	if err := p.store.Upsert(ctx, p.collection, []vectorstore.Point{point}); err != nil {
		return fmt.Errorf("failed to upsert vector: %w", err)
	}

	record := &storage.ChunkRecord{
		ID:         chunkID,
		TicketID:   doc.ID,
		ChunkIndex: index,
		ByteLen:    len(text),
	}
	if err := p.chunks.Insert(ctx, record); err != nil {
		return fmt.Errorf("failed to record chunk: %w", err)
	}

	return nil
}

func (p *Pipeline) removeOldChunks(ctx context.Context, ticketID string) error {
	ids, err := p.chunks.ListIDsByTicket(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("failed to list chunks for %s: %w", ticketID, err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := p.store.Delete(ctx, p.collection, ids); err != nil {
		return fmt.Errorf("failed to delete vectors for %s: %w", ticketID, err)
	}
	if err := p.chunks.DeleteByTicket(ctx, ticketID); err != nil {
		return fmt.Errorf("failed to delete chunk records for %s: %w", ticketID, err)
	}

	return nil
}

// chunkMetadata builds the payload stored with each chunk vector. The
// ticket ID is always present; chunk bookkeeping fields are only added
// when the ticket was actually split.
func chunkMetadata(doc ticket.Document, index, total int) map[string]string {
	meta := make(map[string]string, len(doc.Metadata)+4)
	for k, v := range doc.Metadata {
		meta[k] = v
	}
	meta[ticket.MetaTicketID] = doc.ID

	if total > 1 {
		meta[ticket.MetaChunkIndex] = strconv.Itoa(index)
		meta[ticket.MetaTotalChunks] = strconv.Itoa(total)
		meta[ticket.MetaIsChunked] = "true"
	}

	return meta
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
