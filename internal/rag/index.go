package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Index is the nearest-neighbor store over knowledge passages. The internal
// similarity metric is the index's own business; callers only rely on the
// ordering. Rebuild gives delete-then-recreate semantics so a stale
// collection from a previous run is never reused.
type Index interface {
	Rebuild(ctx context.Context) error
	Upsert(ctx context.Context, ids []string, vectors [][]float32, documents []string) error
	Query(ctx context.Context, vector []float32, k int) ([]string, error)
}

type indexedDoc struct {
	id        string
	embedding []float32
	content   string
}

// MemoryIndex is an in-memory cosine-similarity index. The corpus is small
// enough that a linear scan beats anything cleverer.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs []indexedDoc
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Rebuild drops every stored passage.
func (x *MemoryIndex) Rebuild(_ context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.docs = nil
	return nil
}

// Upsert stores passages, replacing any existing entry with the same id.
func (x *MemoryIndex) Upsert(_ context.Context, ids []string, vectors [][]float32, documents []string) error {
	if len(ids) != len(vectors) || len(ids) != len(documents) {
		return fmt.Errorf("rag: upsert length mismatch: %d ids, %d vectors, %d documents", len(ids), len(vectors), len(documents))
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	for i, id := range ids {
		doc := indexedDoc{id: id, embedding: vectors[i], content: documents[i]}
		replaced := false
		for j := range x.docs {
			if x.docs[j].id == id {
				x.docs[j] = doc
				replaced = true
				break
			}
		}
		if !replaced {
			x.docs = append(x.docs, doc)
		}
	}
	return nil
}

// Query returns the k most similar passages, most relevant first.
func (x *MemoryIndex) Query(_ context.Context, vector []float32, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()
	if len(x.docs) == 0 {
		return nil, nil
	}

	type scored struct {
		score   float64
		content string
	}
	results := make([]scored, 0, len(x.docs))
	for _, doc := range x.docs {
		results = append(results, scored{score: cosineSimilarity(vector, doc.embedding), content: doc.content})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = results[i].content
	}
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
