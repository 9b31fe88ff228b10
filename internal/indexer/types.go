package indexer

//go:generate mockgen -destination=mocks/mock_embedder.go -package=mocks dupfinder-ai/internal/indexer Embedder

import "context"

// Embedder turns text into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IndexResult reports the outcome of indexing a single ticket.
type IndexResult struct {
	TicketID      string
	ChunksTotal   int
	ChunksIndexed int
	ChunksFailed  int
	Skipped       bool
}

// IndexSummary aggregates results across a batch run.
type IndexSummary struct {
	TicketsIndexed int
	TicketsSkipped int
	TicketsFailed  int
	ChunksIndexed  int
	ChunksFailed   int
}

func (s *IndexSummary) add(res IndexResult, err error) {
	switch {
	case err != nil:
		s.TicketsFailed++
	case res.Skipped:
		s.TicketsSkipped++
	default:
		s.TicketsIndexed++
	}
	s.ChunksIndexed += res.ChunksIndexed
	s.ChunksFailed += res.ChunksFailed
}
