package storage

import "time"

// TicketRecord is the bookkeeping row for an indexed ticket. The hash of
// the consolidated text is used to skip re-indexing unchanged tickets.
type TicketRecord struct {
	ID         string // Ticket key, e.g. "GM-247999"
	Summary    string
	Status     string
	Resolution string
	Priority   string
	Hash       string // SHA256 hex of the consolidated ticket text
	UpdatedAt  time.Time
}

// ChunkRecord is the bookkeeping row for one stored chunk. The ID matches
// the chunk ID written to the vector store.
type ChunkRecord struct {
	ID         string // Chunk ID: bare ticket ID or "<ticket>_chunkN"
	TicketID   string
	ChunkIndex int
	ByteLen    int // UTF-8 byte length of the chunk content
}
