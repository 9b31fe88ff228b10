// Command indexctl bulk-loads exported ticket dumps into the vector index.
//
// It reads consolidated ticket text files (one per ticket, named
// <TICKET-KEY>_consolidated.txt) from a directory and runs them through the
// same indexing pipeline the API uses, so a pre-exported corpus can be
// indexed without hitting the issue tracker.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"dupfinder-ai/internal/config"
	"dupfinder-ai/internal/indexer"
	"dupfinder-ai/internal/llm"
	"dupfinder-ai/internal/storage"
	"dupfinder-ai/internal/ticket"
	"dupfinder-ai/internal/vectorstore"
)

const consolidatedSuffix = "_consolidated.txt"

func main() {
	var limit int

	rootCmd := &cobra.Command{
		Use:           "indexctl",
		Short:         "Bulk indexing tool for the duplicate ticket finder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	indexCmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Index all consolidated ticket files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd.Context(), args[0], limit)
		},
	}
	indexCmd.Flags().IntVar(&limit, "limit", 0, "index at most N tickets (0 = no limit)")

	rootCmd.AddCommand(indexCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("indexctl: %v", err)
	}
}

func runIndex(ctx context.Context, dir string, limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))

	docs, err := loadDocuments(dir, limit)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no %s files found in %s", consolidatedSuffix, dir)
	}
	slog.Info("Loaded ticket dumps", "dir", dir, "tickets", len(docs))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		return fmt.Errorf("failed to ensure Qdrant collection: %w", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	pipeline := indexer.NewPipeline(
		storage.NewTicketRepo(db),
		storage.NewChunkRepo(db),
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		cfg.ChunkMaxBytes,
	)

	summary, err := pipeline.IndexAll(ctx, docs)
	if err != nil {
		return fmt.Errorf("indexing aborted: %w", err)
	}

	fmt.Printf("Indexed %d tickets (%d chunks), skipped %d unchanged, %d failed (%d chunk failures)\n",
		summary.TicketsIndexed, summary.ChunksIndexed,
		summary.TicketsSkipped, summary.TicketsFailed, summary.ChunksFailed)
	if summary.TicketsFailed > 0 {
		return fmt.Errorf("%d tickets failed to index", summary.TicketsFailed)
	}
	return nil
}

// loadDocuments reads every consolidated dump in dir, in lexical order so
// repeated runs index the corpus in the same order.
func loadDocuments(dir string, limit int) ([]ticket.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), consolidatedSuffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	docs := make([]ticket.Document, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		key := strings.TrimSuffix(name, consolidatedSuffix)
		docs = append(docs, ticket.Document{
			ID:   key,
			Text: string(data),
			Metadata: map[string]string{
				ticket.MetaTicketID: key,
			},
		})
	}
	return docs, nil
}
