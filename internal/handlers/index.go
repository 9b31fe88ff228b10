package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dupfinder-ai/internal/contextutil"
	"dupfinder-ai/internal/service"
)

// IndexHandler handles HTTP requests to index a ticket.
type IndexHandler struct {
	ticketService service.TicketService
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(ticketService service.TicketService) *IndexHandler {
	return &IndexHandler{ticketService: ticketService}
}

// IndexResponse represents the HTTP response payload for indexing.
type IndexResponse struct {
	TicketID      string `json:"ticket_id"`
	ChunksTotal   int    `json:"chunks_total"`
	ChunksIndexed int    `json:"chunks_indexed"`
	ChunksFailed  int    `json:"chunks_failed"`
	Skipped       bool   `json:"skipped"`
}

// ServeHTTP handles POST /api/tickets/{key}/index requests.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	key := chi.URLParam(r, "key")

	res, err := h.ticketService.IndexTicket(ctx, key)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to index ticket")
		return
	}

	resp := IndexResponse{
		TicketID:      res.TicketID,
		ChunksTotal:   res.ChunksTotal,
		ChunksIndexed: res.ChunksIndexed,
		ChunksFailed:  res.ChunksFailed,
		Skipped:       res.Skipped,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
