package indexer

import (
	"log/slog"
	"strings"
	"sync/atomic"
)

// DefaultMaxChunkBytes leaves headroom under the embedding provider's
// 36000-byte payload ceiling so that multi-byte runes near a chunk boundary
// cannot push a request over the limit.
const DefaultMaxChunkBytes = 30000

// ByteChunker splits ticket text into chunks whose UTF-8 encoding fits a
// byte budget. It prefers natural boundaries: paragraphs first, sentences
// inside an oversized paragraph, and raw byte windows only when a single
// sentence exceeds the budget on its own.
type ByteChunker struct {
	maxBytes       int
	logger         *slog.Logger
	degradedSplits atomic.Int64
}

// NewByteChunker creates a chunker with the given byte budget. A budget of
// zero or less falls back to DefaultMaxChunkBytes.
func NewByteChunker(maxBytes int) *ByteChunker {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxChunkBytes
	}
	return &ByteChunker{
		maxBytes: maxBytes,
		logger:   slog.Default(),
	}
}

// MaxBytes returns the configured byte budget.
func (c *ByteChunker) MaxBytes() int {
	return c.maxBytes
}

// Split breaks text into chunks of at most the configured byte budget.
// It always returns at least one chunk and never fails: text that already
// fits the budget (inclusive) is returned untouched as a single chunk, and
// an empty input yields a single empty chunk. Identical input always
// produces an identical chunk sequence.
func (c *ByteChunker) Split(text string) []string {
	if len(text) <= c.maxBytes {
		return []string{text}
	}

	var chunks []string
	current := ""

	for _, paragraph := range strings.Split(text, "\n\n") {
		candidate := paragraph
		if current != "" {
			candidate = current + "\n\n" + paragraph
		}
		if len(candidate) <= c.maxBytes {
			current = candidate
			continue
		}

		// Seal the running chunk; the paragraph that did not fit starts
		// the next one, unless it needs splitting itself.
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if len(paragraph) > c.maxBytes {
			chunks = append(chunks, c.splitParagraph(paragraph)...)
		} else {
			current = paragraph
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	// Text made entirely of paragraph separators produces only empty
	// paragraphs, which the greedy fill never emits. Still return one
	// chunk so every document has at least one.
	if len(chunks) == 0 {
		return []string{""}
	}

	return chunks
}

// splitParagraph splits an oversized paragraph at sentence boundaries,
// using "period followed by space" as the sentence heuristic, with the same
// greedy-fill rule as the paragraph level.
func (c *ByteChunker) splitParagraph(paragraph string) []string {
	var chunks []string
	current := ""

	sentences := strings.Split(strings.ReplaceAll(paragraph, ". ", ".\n"), "\n")
	for _, sentence := range sentences {
		candidate := sentence
		if current != "" {
			candidate = current + " " + sentence
		}
		if len(candidate) <= c.maxBytes {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if len(sentence) > c.maxBytes {
			chunks = append(chunks, c.splitBytes(sentence)...)
		} else {
			current = sentence
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// splitBytes is the last-resort split: fixed-size byte windows over the
// UTF-8 encoding. A multi-byte rune straddling a window edge is dropped by
// the permissive decode, so this path can lose characters; it is counted
// and logged so operators can watch its frequency as a data-quality signal.
func (c *ByteChunker) splitBytes(sentence string) []string {
	var chunks []string
	for start := 0; start < len(sentence); start += c.maxBytes {
		end := start + c.maxBytes
		if end > len(sentence) {
			end = len(sentence)
		}
		chunks = append(chunks, strings.ToValidUTF8(sentence[start:end], ""))
	}

	c.degradedSplits.Add(1)
	c.logger.Warn("degraded chunking: no natural boundary within byte budget, used raw byte windows",
		"sentence_bytes", len(sentence),
		"max_bytes", c.maxBytes,
		"windows", len(chunks),
	)

	return chunks
}

// DegradedSplits reports how many times the raw byte-window fallback ran
// since the chunker was created.
func (c *ByteChunker) DegradedSplits() int64 {
	return c.degradedSplits.Load()
}
