package similarity

// ChunkHit is one stored chunk returned by a vector search, resolved to
// the ticket it belongs to.
type ChunkHit struct {
	ChunkID    string
	ChunkIndex int
	Content    string
	Distance   float32
}

// RankedTicket is a whole ticket reassembled from its matching chunks.
// BestDistance is the smallest distance across the ticket's chunks, so a
// ticket is ranked by its closest chunk rather than an average that long
// tickets would dilute. Similarity is 1 - BestDistance, which is only
// meaningful for cosine distances in [0,1]; BestDistance is the raw value.
type RankedTicket struct {
	TicketID        string
	Metadata        map[string]string
	BestDistance    float32
	Similarity      float32
	ChunkCount      int
	Chunks          []ChunkHit
	CombinedContent string
}
