package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"dupfinder-ai/internal/contextutil"
	"dupfinder-ai/internal/service"
)

// AnalyzeHandler handles HTTP requests for full duplicate analysis.
type AnalyzeHandler struct {
	ticketService service.TicketService
	markdown      goldmark.Markdown
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(ticketService service.TicketService) *AnalyzeHandler {
	return &AnalyzeHandler{
		ticketService: ticketService,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// AnalyzeRequest represents the HTTP request payload for analysis.
type AnalyzeRequest struct {
	TicketKey string `json:"ticket_key"`
	TopK      int    `json:"top_k,omitempty"`
}

// AnalyzeResponse represents the HTTP response payload for analysis.
type AnalyzeResponse struct {
	TicketID       string          `json:"ticket_id"`
	Summary        string          `json:"summary"`
	Analysis       string          `json:"analysis"`
	SimilarTickets []SimilarTicket `json:"similar_tickets"`
}

// ServeHTTP handles POST /api/analyze requests. The analysis text is
// markdown; clients that accept text/html get it rendered.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.ticketService.Analyze(ctx, req.TicketKey, req.TopK)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to analyze ticket")
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(result.AnalysisText), &buf); err != nil {
			logger.ErrorContext(ctx, "failed to render analysis markdown", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to render analysis")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
		return
	}

	resp := AnalyzeResponse{
		TicketID:       result.TicketID,
		Summary:        result.Summary,
		Analysis:       result.AnalysisText,
		SimilarTickets: toSimilarTickets(result.SimilarTickets),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
