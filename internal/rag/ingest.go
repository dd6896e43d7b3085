package rag

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// Chunking parameters for corpus ingestion.
const (
	chunkSize    = 1000
	chunkOverlap = 100
)

// IngestDocuments splits the given texts into overlapping chunks, embeds
// them, and upserts them into the index. Called once at startup after
// Rebuild; ingestion failures here are fatal to the caller, unlike query-time
// retrieval which degrades.
func IngestDocuments(ctx context.Context, embedder Embedder, index Index, texts []string) error {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	var chunks []string
	for _, text := range texts {
		parts, err := splitter.SplitText(text)
		if err != nil {
			return fmt.Errorf("rag: failed to split document: %w", err)
		}
		chunks = append(chunks, parts...)
	}
	if len(chunks) == 0 {
		return nil
	}

	vectors, err := embedder.Embed(ctx, chunks)
	if err != nil {
		return fmt.Errorf("rag: failed to embed corpus: %w", err)
	}

	ids := make([]string, len(chunks))
	for i := range chunks {
		ids[i] = fmt.Sprintf("doc_%d", i)
	}
	if err := index.Upsert(ctx, ids, vectors, chunks); err != nil {
		return fmt.Errorf("rag: failed to upsert corpus: %w", err)
	}
	return nil
}
