package rag

import (
	"context"

	"github.com/gharfix/gharfix-ai-platform/internal/observability/metrics"
	"github.com/gharfix/gharfix-ai-platform/pkg/logging"
)

const (
	minTopK = 1
	maxTopK = 5
)

// Retriever answers "which passages are relevant to this query". Retrieval is
// best-effort: any embedding or index failure degrades to an empty result so
// the generator can still answer, just without retrieved grounding.
type Retriever struct {
	embedder Embedder
	index    Index
	logger   *logging.Logger
	metrics  *metrics.ChatMetrics
}

// NewRetriever creates a retriever. Metrics may be nil.
func NewRetriever(embedder Embedder, index Index, logger *logging.Logger, m *metrics.ChatMetrics) *Retriever {
	if embedder == nil {
		panic("rag: embedder cannot be nil")
	}
	if index == nil {
		panic("rag: index cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Retriever{embedder: embedder, index: index, logger: logger, metrics: m}
}

// Search embeds the query and returns up to k passages in relevance order,
// most relevant first. k is clamped to [1,5]. Failures return an empty slice.
func (r *Retriever) Search(ctx context.Context, query string, k int) []string {
	if k < minTopK {
		k = minTopK
	}
	if k > maxTopK {
		k = maxTopK
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		r.logger.Warn("retrieval degraded: embedding failed", "error", err)
		r.metrics.ObserveRetrievalFailure()
		return nil
	}

	passages, err := r.index.Query(ctx, vectors[0], k)
	if err != nil {
		r.logger.Warn("retrieval degraded: index query failed", "error", err)
		r.metrics.ObserveRetrievalFailure()
		return nil
	}
	return passages
}
