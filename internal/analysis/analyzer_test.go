package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"dupfinder-ai/internal/analysis/mocks"
)

func TestAnalyzer_Analyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	llm := mocks.NewMockCompleter(ctrl)

	llm.EXPECT().
		Complete(gomock.Any(), systemPrompt, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, user string) (string, error) {
			if !strings.Contains(user, "GM-300") {
				t.Errorf("prompt missing ticket ID:\n%s", user[:200])
			}
			return "Likely duplicate of GM-100.", nil
		})

	analyzer := NewAnalyzer(llm)
	result, err := analyzer.Analyze(context.Background(), sampleTicket(), sampleSimilar())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.TicketID != "GM-300" {
		t.Errorf("Analyze() TicketID = %q, want GM-300", result.TicketID)
	}
	if result.AnalysisText != "Likely duplicate of GM-100." {
		t.Errorf("Analyze() AnalysisText = %q", result.AnalysisText)
	}
	if len(result.SimilarTickets) != 2 {
		t.Errorf("Analyze() kept %d similar tickets, want 2", len(result.SimilarTickets))
	}
}

func TestAnalyzer_Analyze_LLMError(t *testing.T) {
	ctrl := gomock.NewController(t)
	llm := mocks.NewMockCompleter(ctrl)

	llm.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("model overloaded"))

	analyzer := NewAnalyzer(llm)
	_, err := analyzer.Analyze(context.Background(), sampleTicket(), nil)
	if err == nil {
		t.Fatal("Analyze() expected error when LLM fails")
	}
}
