package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ticket_service.go -package=mocks dupfinder-ai/internal/service TicketSource,TicketIndexer,SimilaritySearcher,TicketAnalyzer,TicketService

import (
	"context"
	"errors"
	"log/slog"

	"dupfinder-ai/internal/analysis"
	"dupfinder-ai/internal/contextutil"
	"dupfinder-ai/internal/indexer"
	"dupfinder-ai/internal/jira"
	"dupfinder-ai/internal/similarity"
	"dupfinder-ai/internal/ticket"
)

// TicketSource fetches tickets from the issue tracker.
// This interface is defined from the service layer's perspective (consumer-first).
type TicketSource interface {
	FetchTicket(ctx context.Context, key string) (*jira.Ticket, error)
}

// TicketIndexer writes ticket documents into the vector index.
type TicketIndexer interface {
	IndexTicket(ctx context.Context, doc ticket.Document) (indexer.IndexResult, error)
}

// SimilaritySearcher finds historical tickets similar to a text.
type SimilaritySearcher interface {
	FindSimilar(ctx context.Context, text string, topK int, excludeTicketID string) ([]similarity.RankedTicket, error)
}

// TicketAnalyzer produces an LLM analysis of a ticket against its matches.
type TicketAnalyzer interface {
	Analyze(ctx context.Context, t *jira.Ticket, similar []similarity.RankedTicket) (*analysis.Result, error)
}

// TicketService is the application-level API: everything the HTTP handlers
// and the CLI can do with a ticket.
type TicketService interface {
	// IndexTicket fetches a ticket from the tracker and indexes it.
	IndexTicket(ctx context.Context, key string) (indexer.IndexResult, error)
	// FindSimilar returns the topK historical tickets closest to the given
	// ticket, never including the ticket itself.
	FindSimilar(ctx context.Context, key string, topK int) ([]similarity.RankedTicket, error)
	// Analyze runs the full duplicate analysis for a ticket.
	Analyze(ctx context.Context, key string, topK int) (*analysis.Result, error)
}

type ticketService struct {
	source   TicketSource
	indexer  TicketIndexer
	searcher SimilaritySearcher
	analyzer TicketAnalyzer
	logger   *slog.Logger
}

// NewTicketService creates a new TicketService.
func NewTicketService(source TicketSource, idx TicketIndexer, searcher SimilaritySearcher, analyzer TicketAnalyzer) TicketService {
	return &ticketService{
		source:   source,
		indexer:  idx,
		searcher: searcher,
		analyzer: analyzer,
		logger:   slog.Default(),
	}
}

func (s *ticketService) IndexTicket(ctx context.Context, key string) (indexer.IndexResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	t, err := s.fetch(ctx, key)
	if err != nil {
		return indexer.IndexResult{}, err
	}

	res, err := s.indexer.IndexTicket(ctx, jira.Document(t))
	if err != nil {
		logger.ErrorContext(ctx, "failed to index ticket", "ticket_id", key, "error", err)
		return res, WrapError(err, "failed to index ticket")
	}

	logger.InfoContext(ctx, "ticket indexed",
		"ticket_id", key,
		"chunks_indexed", res.ChunksIndexed,
		"skipped", res.Skipped)
	return res, nil
}

func (s *ticketService) FindSimilar(ctx context.Context, key string, topK int) ([]similarity.RankedTicket, error) {
	logger := contextutil.LoggerFromContext(ctx)

	t, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	similar, err := s.searcher.FindSimilar(ctx, jira.ConsolidatedText(t), topK, t.Key)
	if err != nil {
		logger.ErrorContext(ctx, "similarity search failed", "ticket_id", key, "error", err)
		return nil, WrapError(err, "failed to search for similar tickets")
	}

	logger.InfoContext(ctx, "similarity search complete", "ticket_id", key, "matches", len(similar))
	return similar, nil
}

func (s *ticketService) Analyze(ctx context.Context, key string, topK int) (*analysis.Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	t, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	similar, err := s.searcher.FindSimilar(ctx, jira.ConsolidatedText(t), topK, t.Key)
	if err != nil {
		logger.ErrorContext(ctx, "similarity search failed", "ticket_id", key, "error", err)
		return nil, WrapError(err, "failed to search for similar tickets")
	}

	result, err := s.analyzer.Analyze(ctx, t, similar)
	if err != nil {
		logger.ErrorContext(ctx, "analysis failed", "ticket_id", key, "error", err)
		return nil, WrapError(err, "failed to analyze ticket")
	}

	logger.InfoContext(ctx, "analysis complete",
		"ticket_id", key,
		"similar_tickets", len(similar),
		"analysis_bytes", len(result.AnalysisText))
	return result, nil
}

func (s *ticketService) fetch(ctx context.Context, key string) (*jira.Ticket, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if key == "" {
		logger.WarnContext(ctx, "empty ticket key in request")
		return nil, &ValidationError{Field: "key", Message: "cannot be empty"}
	}

	t, err := s.source.FetchTicket(ctx, key)
	if err != nil {
		if errors.Is(err, jira.ErrTicketNotFound) {
			logger.WarnContext(ctx, "ticket not found", "ticket_id", key)
			return nil, WrapError(ErrTicketNotFound, key)
		}
		logger.ErrorContext(ctx, "failed to fetch ticket", "ticket_id", key, "error", err)
		return nil, WrapError(err, "failed to fetch ticket")
	}

	return t, nil
}
