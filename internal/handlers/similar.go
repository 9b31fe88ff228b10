package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dupfinder-ai/internal/contextutil"
	"dupfinder-ai/internal/service"
	"dupfinder-ai/internal/similarity"
	"dupfinder-ai/internal/ticket"
)

// SimilarHandler handles HTTP requests for similarity search.
type SimilarHandler struct {
	ticketService service.TicketService
}

// NewSimilarHandler creates a new SimilarHandler.
func NewSimilarHandler(ticketService service.TicketService) *SimilarHandler {
	return &SimilarHandler{ticketService: ticketService}
}

// SimilarTicket is one match in the HTTP response.
type SimilarTicket struct {
	TicketID   string  `json:"ticket_id"`
	Similarity float32 `json:"similarity_score"`
	Summary    string  `json:"summary,omitempty"`
	Status     string  `json:"status,omitempty"`
	Resolution string  `json:"resolution,omitempty"`
	Priority   string  `json:"priority,omitempty"`
	ChunkCount int     `json:"num_chunks"`
}

// SimilarResponse represents the HTTP response payload for similarity search.
type SimilarResponse struct {
	TicketID       string          `json:"ticket_id"`
	SimilarTickets []SimilarTicket `json:"similar_tickets"`
}

// ServeHTTP handles GET /api/tickets/{key}/similar requests.
func (h *SimilarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	key := chi.URLParam(r, "key")

	topK := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil || k <= 0 {
			logger.WarnContext(ctx, "invalid k parameter", "k", raw)
			writeError(w, http.StatusBadRequest, "Query parameter k must be a positive integer")
			return
		}
		topK = k
	}

	similar, err := h.ticketService.FindSimilar(ctx, key, topK)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to find similar tickets")
		return
	}

	resp := SimilarResponse{
		TicketID:       key,
		SimilarTickets: toSimilarTickets(similar),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func toSimilarTickets(similar []similarity.RankedTicket) []SimilarTicket {
	out := make([]SimilarTicket, 0, len(similar))
	for _, rt := range similar {
		out = append(out, SimilarTicket{
			TicketID:   rt.TicketID,
			Similarity: rt.Similarity,
			Summary:    rt.Metadata[ticket.MetaSummary],
			Status:     rt.Metadata[ticket.MetaStatus],
			Resolution: rt.Metadata[ticket.MetaResolution],
			Priority:   rt.Metadata[ticket.MetaPriority],
			ChunkCount: rt.ChunkCount,
		})
	}
	return out
}
