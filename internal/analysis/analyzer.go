package analysis

//go:generate mockgen -destination=mocks/mock_completer.go -package=mocks dupfinder-ai/internal/analysis Completer

import (
	"context"
	"fmt"

	"dupfinder-ai/internal/contextutil"
	"dupfinder-ai/internal/jira"
	"dupfinder-ai/internal/similarity"
)

// Completer produces a chat completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Result is the outcome of analyzing a ticket against its closest
// historical matches.
type Result struct {
	TicketID       string
	Summary        string
	SimilarTickets []similarity.RankedTicket
	AnalysisText   string
}

// Analyzer asks the LLM to compare a new ticket against similar historical
// tickets and produce an actionable duplicate-analysis comment.
type Analyzer struct {
	llm Completer
}

func NewAnalyzer(llm Completer) *Analyzer {
	return &Analyzer{llm: llm}
}

// Analyze builds the analysis prompt and runs it through the LLM. An empty
// similar set is still analyzed; the prompt says so and the model reports
// low confidence.
func (a *Analyzer) Analyze(ctx context.Context, t *jira.Ticket, similar []similarity.RankedTicket) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := BuildPrompt(t, similar)
	logger.Debug("built analysis prompt",
		"ticket_id", t.Key,
		"prompt_bytes", len(prompt),
		"similar_tickets", len(similar))

	text, err := a.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis for %s: %w", t.Key, err)
	}

	return &Result{
		TicketID:       t.Key,
		Summary:        t.Summary,
		SimilarTickets: similar,
		AnalysisText:   text,
	}, nil
}
