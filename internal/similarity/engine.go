package similarity

import (
	"context"
	"fmt"

	"dupfinder-ai/internal/vectorstore"
)

const (
	// DefaultTopK is how many candidate tickets a search returns when the
	// caller does not say.
	DefaultTopK = 5

	// DefaultOversample is the chunk-level overfetch factor. A single
	// ticket can occupy many of the nearest chunk slots, so the engine
	// asks the store for topK*oversample chunks to be confident that topK
	// distinct tickets survive grouping.
	DefaultOversample = 8
)

// Embedder turns text into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Engine answers "which known tickets look like this text" by embedding
// the query, searching the chunk index, and regrouping chunk hits into
// ranked whole tickets.
type Engine struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
	oversample int
}

func NewEngine(embedder Embedder, store vectorstore.VectorStore, collection string, oversample int) *Engine {
	if oversample <= 0 {
		oversample = DefaultOversample
	}
	return &Engine{
		embedder:   embedder,
		store:      store,
		collection: collection,
		oversample: oversample,
	}
}

// FindSimilar returns up to topK tickets most similar to text, closest
// first. excludeTicketID is dropped from the results so a ticket compared
// against the index never matches itself.
func (e *Engine) FindSimilar(ctx context.Context, text string, topK int, excludeTicketID string) ([]RankedTicket, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	vectors, err := e.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 query embedding, got %d", len(vectors))
	}

	hits, err := e.store.Nearest(ctx, e.collection, vectors[0], topK*e.oversample)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	return Rank(ctx, hits, topK, excludeTicketID), nil
}
