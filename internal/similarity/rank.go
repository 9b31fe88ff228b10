package similarity

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"dupfinder-ai/internal/contextutil"
	"dupfinder-ai/internal/ticket"
	"dupfinder-ai/internal/vectorstore"
)

type ticketGroup struct {
	ticketID string
	metadata map[string]string
	metaFrom int
	chunks   []ChunkHit
	best     float32
}

// Rank groups chunk-level search hits into whole tickets and returns the
// topK closest ones, ordered by best distance with ticket ID as the tie
// breaker. A ticket matched by several chunks appears once. Hits belonging
// to excludeTicketID are dropped, so a ticket never reports itself as its
// own duplicate.
func Rank(ctx context.Context, hits []vectorstore.SearchHit, topK int, excludeTicketID string) []RankedTicket {
	logger := contextutil.LoggerFromContext(ctx)

	groups := make(map[string]*ticketGroup)
	var order []string

	for _, hit := range hits {
		ticketID, chunkIndex := resolveHit(hit)
		if ticketID == excludeTicketID {
			continue
		}

		group, ok := groups[ticketID]
		if !ok {
			group = &ticketGroup{
				ticketID: ticketID,
				metadata: hit.Meta,
				metaFrom: chunkIndex,
				best:     hit.Distance,
			}
			groups[ticketID] = group
			order = append(order, ticketID)
		}

		group.chunks = append(group.chunks, ChunkHit{
			ChunkID:    hit.ChunkID,
			ChunkIndex: chunkIndex,
			Content:    hit.Content,
			Distance:   hit.Distance,
		})
		if hit.Distance < group.best {
			group.best = hit.Distance
		}

		// The earliest chunk's metadata represents the ticket. Chunks of
		// one ticket are written with identical metadata, so a mismatch
		// means the index holds chunks from different versions of it.
		if chunkIndex < group.metaFrom {
			if !metadataEqual(group.metadata, hit.Meta) {
				logger.Warn("inconsistent metadata across chunks of one ticket",
					"ticket_id", ticketID,
					"chunk_id", hit.ChunkID)
			}
			group.metadata = hit.Meta
			group.metaFrom = chunkIndex
		} else if !metadataEqual(group.metadata, hit.Meta) {
			logger.Warn("inconsistent metadata across chunks of one ticket",
				"ticket_id", ticketID,
				"chunk_id", hit.ChunkID)
		}
	}

	ranked := make([]RankedTicket, 0, len(order))
	for _, ticketID := range order {
		ranked = append(ranked, buildRankedTicket(groups[ticketID]))
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].BestDistance != ranked[j].BestDistance {
			return ranked[i].BestDistance < ranked[j].BestDistance
		}
		return ranked[i].TicketID < ranked[j].TicketID
	})

	if topK >= 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}

	return ranked
}

// resolveHit determines which ticket a hit belongs to. Stored metadata is
// authoritative; the chunk ID is parsed only for entries written before
// ticket_id metadata existed.
func resolveHit(hit vectorstore.SearchHit) (ticketID string, chunkIndex int) {
	ref := ticket.ParseChunkID(hit.ChunkID)
	ticketID, chunkIndex = ref.TicketID, ref.Index

	if id := hit.Meta[ticket.MetaTicketID]; id != "" {
		ticketID = id
	}
	if raw := hit.Meta[ticket.MetaChunkIndex]; raw != "" {
		if idx, err := strconv.Atoi(raw); err == nil && idx >= 0 {
			chunkIndex = idx
		}
	}

	return ticketID, chunkIndex
}

func buildRankedTicket(group *ticketGroup) RankedTicket {
	sort.Slice(group.chunks, func(i, j int) bool {
		if group.chunks[i].ChunkIndex != group.chunks[j].ChunkIndex {
			return group.chunks[i].ChunkIndex < group.chunks[j].ChunkIndex
		}
		return group.chunks[i].ChunkID < group.chunks[j].ChunkID
	})

	contents := make([]string, len(group.chunks))
	for i, chunk := range group.chunks {
		contents[i] = chunk.Content
	}

	return RankedTicket{
		TicketID:        group.ticketID,
		Metadata:        group.metadata,
		BestDistance:    group.best,
		Similarity:      1 - group.best,
		ChunkCount:      len(group.chunks),
		Chunks:          group.chunks,
		CombinedContent: strings.Join(contents, ticket.ChunkBoundary),
	}
}

// metadataEqual compares chunk metadata ignoring chunk_index, which
// legitimately differs between chunks of the same ticket.
func metadataEqual(a, b map[string]string) bool {
	count := func(m map[string]string) int {
		n := len(m)
		if _, ok := m[ticket.MetaChunkIndex]; ok {
			n--
		}
		return n
	}
	if count(a) != count(b) {
		return false
	}
	for k, v := range a {
		if k == ticket.MetaChunkIndex {
			continue
		}
		if b[k] != v {
			return false
		}
	}
	return true
}
