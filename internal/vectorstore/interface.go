package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks dupfinder-ai/internal/vectorstore VectorStore

import "context"

// Point is one chunk vector together with its stored payload.
type Point struct {
	ChunkID string
	Vec     []float32
	Content string
	Meta    map[string]string
}

// SearchHit is a nearest-neighbor candidate returned by Nearest. Distance
// is cosine distance: non-negative, smaller means more similar.
type SearchHit struct {
	ChunkID  string
	Content  string
	Distance float32
	Meta     map[string]string
}

// VectorStore defines the operations the indexing and query paths need from
// the vector database. Upserts are keyed by chunk ID and overwrite: re-ups
// to the same chunk ID resolve to last write wins.
type VectorStore interface {
	// Upsert inserts or overwrites points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Nearest returns up to n hits ordered by ascending distance.
	Nearest(ctx context.Context, collection string, query []float32, n int) ([]SearchHit, error)

	// Delete removes points by their chunk IDs.
	Delete(ctx context.Context, collection string, chunkIDs []string) error
}
