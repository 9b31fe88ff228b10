package ticket

import (
	"strconv"
	"strings"
)

// ChunkBoundary separates chunk contents when a multi-chunk ticket is
// reassembled into a single document at query time. The marker is kept
// visible so downstream consumers (and humans) can see where stored chunks
// were joined.
const ChunkBoundary = "\n\n--- CHUNK BOUNDARY ---\n\n"

const chunkMarker = "_chunk"

// Metadata keys attached to stored chunks by the indexing pipeline.
const (
	MetaTicketID    = "ticket_id"
	MetaChunkIndex  = "chunk_index"
	MetaTotalChunks = "total_chunks"
	MetaIsChunked   = "is_chunked"
)

// Metadata keys carried over from the upstream issue tracker.
const (
	MetaSummary    = "summary"
	MetaStatus     = "status"
	MetaResolution = "resolution"
	MetaPriority   = "priority"
)

// Document is one logical ticket to be indexed. Metadata is flat and
// string-valued: acquisition code normalizes richer upstream field shapes
// (lists, nested objects) before a Document is constructed, so every chunk
// of a document stores byte-identical metadata.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// ChunkRef identifies a single stored chunk of a ticket.
type ChunkRef struct {
	TicketID string
	Index    int
}

// ChunkID returns the stored identifier for chunk index of a ticket that
// produced total chunks. A ticket that fits in a single chunk keeps its bare
// ticket ID, so single-chunk entries remain addressable by ticket ID; only
// multi-chunk tickets get the _chunkN suffix.
func ChunkID(ticketID string, index, total int) string {
	if total <= 1 {
		return ticketID
	}
	return ticketID + chunkMarker + strconv.Itoa(index)
}

// ParseChunkID recovers the ticket ID and chunk index from a stored chunk
// identifier. An ID without a trailing numeric _chunk suffix maps to index 0
// with the whole ID as the ticket ID, so unrecognized IDs degrade to
// single-chunk tickets instead of failing.
func ParseChunkID(id string) ChunkRef {
	pos := strings.LastIndex(id, chunkMarker)
	if pos < 0 {
		return ChunkRef{TicketID: id}
	}
	index, err := strconv.Atoi(id[pos+len(chunkMarker):])
	if err != nil || index < 0 {
		return ChunkRef{TicketID: id}
	}
	return ChunkRef{TicketID: id[:pos], Index: index}
}
