package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"dupfinder-ai/internal/analysis"
	"dupfinder-ai/internal/indexer"
	"dupfinder-ai/internal/jira"
	"dupfinder-ai/internal/service/mocks"
	"dupfinder-ai/internal/similarity"
	"dupfinder-ai/internal/ticket"
)

type serviceMocks struct {
	source   *mocks.MockTicketSource
	indexer  *mocks.MockTicketIndexer
	searcher *mocks.MockSimilaritySearcher
	analyzer *mocks.MockTicketAnalyzer
}

func newTestService(t *testing.T) (TicketService, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		source:   mocks.NewMockTicketSource(ctrl),
		indexer:  mocks.NewMockTicketIndexer(ctrl),
		searcher: mocks.NewMockSimilaritySearcher(ctrl),
		analyzer: mocks.NewMockTicketAnalyzer(ctrl),
	}

	return NewTicketService(m.source, m.indexer, m.searcher, m.analyzer), m
}

func fetchedTicket() *jira.Ticket {
	return &jira.Ticket{
		Key:     "GM-300",
		Summary: "Conveyor belt jam alarm",
		Status:  "Open",
	}
}

func TestTicketService_IndexTicket(t *testing.T) {
	svc, m := newTestService(t)

	m.source.EXPECT().FetchTicket(gomock.Any(), "GM-300").Return(fetchedTicket(), nil)
	m.indexer.EXPECT().IndexTicket(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc ticket.Document) (indexer.IndexResult, error) {
			if doc.ID != "GM-300" {
				t.Errorf("IndexTicket() doc.ID = %q, want GM-300", doc.ID)
			}
			if !strings.Contains(doc.Text, "Conveyor belt jam alarm") {
				t.Error("IndexTicket() doc.Text missing consolidated content")
			}
			return indexer.IndexResult{TicketID: doc.ID, ChunksTotal: 1, ChunksIndexed: 1}, nil
		})

	res, err := svc.IndexTicket(context.Background(), "GM-300")
	if err != nil {
		t.Fatalf("IndexTicket() error = %v", err)
	}
	if res.ChunksIndexed != 1 {
		t.Errorf("IndexTicket() ChunksIndexed = %d, want 1", res.ChunksIndexed)
	}
}

func TestTicketService_IndexTicket_EmptyKey(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.IndexTicket(context.Background(), "")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("IndexTicket(\"\") error = %v, want ValidationError", err)
	}
}

func TestTicketService_IndexTicket_NotFound(t *testing.T) {
	svc, m := newTestService(t)

	m.source.EXPECT().FetchTicket(gomock.Any(), "GM-404").Return(nil, jira.ErrTicketNotFound)

	_, err := svc.IndexTicket(context.Background(), "GM-404")
	if !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("IndexTicket() error = %v, want ErrTicketNotFound", err)
	}
}

func TestTicketService_FindSimilar(t *testing.T) {
	svc, m := newTestService(t)

	ranked := []similarity.RankedTicket{{TicketID: "GM-100", Similarity: 0.9}}

	m.source.EXPECT().FetchTicket(gomock.Any(), "GM-300").Return(fetchedTicket(), nil)
	m.searcher.EXPECT().FindSimilar(gomock.Any(), gomock.Any(), 5, "GM-300").DoAndReturn(
		func(_ context.Context, text string, _ int, _ string) ([]similarity.RankedTicket, error) {
			if !strings.Contains(text, "Conveyor belt jam alarm") {
				t.Error("FindSimilar() query text missing ticket content")
			}
			return ranked, nil
		})

	got, err := svc.FindSimilar(context.Background(), "GM-300", 5)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(got) != 1 || got[0].TicketID != "GM-100" {
		t.Errorf("FindSimilar() = %+v", got)
	}
}

func TestTicketService_FindSimilar_SearchError(t *testing.T) {
	svc, m := newTestService(t)

	m.source.EXPECT().FetchTicket(gomock.Any(), "GM-300").Return(fetchedTicket(), nil)
	m.searcher.EXPECT().FindSimilar(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("store down"))

	_, err := svc.FindSimilar(context.Background(), "GM-300", 5)
	if err == nil {
		t.Fatal("FindSimilar() expected error")
	}
}

func TestTicketService_Analyze(t *testing.T) {
	svc, m := newTestService(t)

	ranked := []similarity.RankedTicket{{TicketID: "GM-100", Similarity: 0.9}}

	m.source.EXPECT().FetchTicket(gomock.Any(), "GM-300").Return(fetchedTicket(), nil)
	m.searcher.EXPECT().FindSimilar(gomock.Any(), gomock.Any(), 3, "GM-300").Return(ranked, nil)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), ranked).Return(&analysis.Result{
		TicketID:     "GM-300",
		AnalysisText: "Likely duplicate of GM-100.",
	}, nil)

	result, err := svc.Analyze(context.Background(), "GM-300", 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.AnalysisText != "Likely duplicate of GM-100." {
		t.Errorf("Analyze() AnalysisText = %q", result.AnalysisText)
	}
}

func TestTicketService_Analyze_AnalyzerError(t *testing.T) {
	svc, m := newTestService(t)

	m.source.EXPECT().FetchTicket(gomock.Any(), "GM-300").Return(fetchedTicket(), nil)
	m.searcher.EXPECT().FindSimilar(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("model overloaded"))

	_, err := svc.Analyze(context.Background(), "GM-300", 5)
	if err == nil {
		t.Fatal("Analyze() expected error")
	}
}
