package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"dupfinder-ai/internal/contextutil"
)

// pointNamespace is the UUIDv5 namespace for deriving Qdrant point IDs from
// chunk IDs. Qdrant only accepts UUID or integer point IDs, while chunk IDs
// are suffix-encoded ticket strings, so each chunk ID is hashed into a
// stable UUID and the original chunk ID is kept in the payload.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Payload keys reserved by the store; everything else in a point's payload
// is chunk metadata.
const (
	payloadChunkID = "chunk_id"
	payloadContent = "content"
)

// QdrantStore implements VectorStore using Qdrant with a cosine-distance
// collection. Qdrant reports cosine similarity scores; the store converts
// them to distances (1 - score) so callers always see smaller-is-closer.
type QdrantStore struct {
	client *qdrant.Client
}

// NewQdrantStore creates a new Qdrant vector store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) is derived from the HTTP port.
func NewQdrantStore(urlStr string) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{client: client}, nil
}

// PointID derives the stable Qdrant point UUID for a chunk ID.
func PointID(chunkID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(chunkID)).String()
}

// Upsert inserts or overwrites points in the collection.
func (s *QdrantStore) Upsert(ctx context.Context, collection string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, point := range points {
		payload := map[string]any{
			payloadChunkID: point.ChunkID,
			payloadContent: point.Content,
		}
		for k, v := range point.Meta {
			payload[k] = v
		}

		qdrantPoints = append(qdrantPoints, &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(point.ChunkID)),
			Vectors: qdrant.NewVectors(point.Vec...),
			Payload: qdrant.NewValueMap(payload),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.DebugContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// Nearest returns up to n hits ordered by ascending cosine distance.
func (s *QdrantStore) Nearest(ctx context.Context, collection string, query []float32, n int) ([]SearchHit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		return nil, fmt.Errorf("n must be greater than 0")
	}

	limit := uint64(n)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to query points", "collection", collection, "n", n, "error", err)
		return nil, fmt.Errorf("failed to query points: %w", err)
	}

	hits := make([]SearchHit, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		hits = append(hits, hitFromScoredPoint(point))
	}

	logger.DebugContext(ctx, "nearest query completed", "collection", collection, "n", n, "hits", len(hits))
	return hits, nil
}

// Delete removes points by their chunk IDs.
func (s *QdrantStore) Delete(ctx context.Context, collection string, chunkIDs []string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(chunkIDs) == 0 {
		return nil
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(chunkIDs))
	for _, chunkID := range chunkIDs {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(PointID(chunkID)))
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points:         qdrant.NewPointsSelector(qdrantIDs...),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete points", "collection", collection, "count", len(chunkIDs), "error", err)
		return fmt.Errorf("failed to delete points: %w", err)
	}

	logger.DebugContext(ctx, "deleted points", "collection", collection, "count", len(chunkIDs))
	return nil
}

// CollectionExists checks if a collection exists.
func (s *QdrantStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return exists, nil
}

// EnsureCollection ensures a cosine-distance collection exists with the
// specified vector size, validating the size when it already exists.
func (s *QdrantStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", collection, "vector_size", vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	config := info.Config
	if config == nil || config.Params == nil {
		return fmt.Errorf("collection config is invalid")
	}
	vectorsConfig := config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return fmt.Errorf("collection vectors config is invalid")
	}
	params := vectorsConfig.GetParams()
	if params == nil || params.Size == 0 {
		return fmt.Errorf("could not determine collection vector size")
	}

	if int(params.Size) != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, params.Size)
	}

	logger.DebugContext(ctx, "collection validated", "collection", collection, "vector_size", vectorSize)
	return nil
}

// hitFromScoredPoint converts a Qdrant scored point into a SearchHit,
// separating the reserved payload keys from chunk metadata and converting
// the similarity score into a distance.
func hitFromScoredPoint(point *qdrant.ScoredPoint) SearchHit {
	hit := SearchHit{
		Distance: 1 - point.Score,
		Meta:     make(map[string]string),
	}

	for key, value := range point.Payload {
		if value == nil {
			continue
		}
		str := payloadString(value)
		switch key {
		case payloadChunkID:
			hit.ChunkID = str
		case payloadContent:
			hit.Content = str
		default:
			hit.Meta[key] = str
		}
	}

	return hit
}

// payloadString renders a Qdrant payload value as a string. Metadata is
// stored string-valued by the pipeline, but values written by other tools
// are coerced rather than dropped.
func payloadString(v *qdrant.Value) string {
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return strconv.FormatInt(val.IntegerValue, 10)
	case *qdrant.Value_DoubleValue:
		return strconv.FormatFloat(val.DoubleValue, 'f', -1, 64)
	case *qdrant.Value_BoolValue:
		return strconv.FormatBool(val.BoolValue)
	default:
		return ""
	}
}
