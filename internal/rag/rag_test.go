package rag

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbeddingAPI returns canned vectors keyed by input position.
type fakeEmbeddingAPI struct {
	vectors [][]float32
	shuffle bool
	err     error
}

func (f *fakeEmbeddingAPI) CreateEmbeddings(_ context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	if f.err != nil {
		return openai.EmbeddingResponse{}, f.err
	}
	resp := openai.EmbeddingResponse{}
	for i, vec := range f.vectors {
		resp.Data = append(resp.Data, openai.Embedding{Index: i, Embedding: vec})
	}
	if f.shuffle && len(resp.Data) > 1 {
		resp.Data[0], resp.Data[1] = resp.Data[1], resp.Data[0]
	}
	return resp, nil
}

// fakeEmbedder implements Embedder directly, mapping each text to a fixed
// vector.
type fakeEmbedder struct {
	byText map[string][]float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := f.byText[text]; ok {
			out[i] = vec
		} else {
			out[i] = []float32{0, 0, 1}
		}
	}
	return out, nil
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	api := &fakeEmbeddingAPI{vectors: [][]float32{{1, 0}, {0, 1}}}
	embedder := NewOpenAIEmbedder(api, "")

	vectors, err := embedder.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 0}, vectors[0])
	assert.Equal(t, []float32{0, 1}, vectors[1])
}

func TestOpenAIEmbedder_NormalizesResponseOrder(t *testing.T) {
	api := &fakeEmbeddingAPI{vectors: [][]float32{{1, 0}, {0, 1}}, shuffle: true}
	embedder := NewOpenAIEmbedder(api, "")

	vectors, err := embedder.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vectors[0], "vectors follow input order regardless of response order")
	assert.Equal(t, []float32{0, 1}, vectors[1])
}

func TestOpenAIEmbedder_SizeMismatch(t *testing.T) {
	api := &fakeEmbeddingAPI{vectors: [][]float32{{1, 0}}}
	embedder := NewOpenAIEmbedder(api, "")

	_, err := embedder.Embed(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size mismatch")
}

func TestOpenAIEmbedder_EmptyInput(t *testing.T) {
	embedder := NewOpenAIEmbedder(&fakeEmbeddingAPI{}, "")
	vectors, err := embedder.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestMemoryIndex_QueryOrdersByRelevance(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()

	require.NoError(t, index.Upsert(ctx,
		[]string{"doc_0", "doc_1", "doc_2"},
		[][]float32{{1, 0, 0}, {0, 1, 0}, {0.9, 0.1, 0}},
		[]string{"plumbing passage", "city passage", "repair passage"},
	))

	got, err := index.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"plumbing passage", "repair passage"}, got)
}

func TestMemoryIndex_RebuildClears(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()

	require.NoError(t, index.Upsert(ctx, []string{"doc_0"}, [][]float32{{1}}, []string{"old passage"}))
	require.NoError(t, index.Rebuild(ctx))

	got, err := index.Query(ctx, []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, got, "a rebuilt index never serves a previous run's passages")
}

func TestMemoryIndex_UpsertReplacesById(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()

	require.NoError(t, index.Upsert(ctx, []string{"doc_0"}, [][]float32{{1, 0}}, []string{"v1"}))
	require.NoError(t, index.Upsert(ctx, []string{"doc_0"}, [][]float32{{1, 0}}, []string{"v2"}))

	got, err := index.Query(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, got)
}

func TestMemoryIndex_UpsertLengthMismatch(t *testing.T) {
	err := NewMemoryIndex().Upsert(context.Background(), []string{"a"}, nil, []string{"x"})
	require.Error(t, err)
}

func TestRetriever_Search(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()
	require.NoError(t, index.Upsert(ctx,
		[]string{"doc_0", "doc_1"},
		[][]float32{{1, 0, 0}, {0, 1, 0}},
		[]string{"services overview", "cities list"},
	))
	embedder := &fakeEmbedder{byText: map[string][]float32{
		"what services do you offer": {1, 0, 0},
	}}

	r := NewRetriever(embedder, index, nil, nil)
	got := r.Search(ctx, "what services do you offer", 1)
	assert.Equal(t, []string{"services overview"}, got)
}

func TestRetriever_ClampsK(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()
	ids := []string{"doc_0", "doc_1", "doc_2", "doc_3", "doc_4", "doc_5", "doc_6"}
	vectors := make([][]float32, len(ids))
	docs := make([]string, len(ids))
	for i := range ids {
		vectors[i] = []float32{1, float32(i)}
		docs[i] = "p"
	}
	require.NoError(t, index.Upsert(ctx, ids, vectors, docs))
	embedder := &fakeEmbedder{}

	r := NewRetriever(embedder, index, nil, nil)
	assert.Len(t, r.Search(ctx, "q", 100), 5, "k clamps to 5")
	assert.Len(t, r.Search(ctx, "q", 0), 1, "k clamps to 1")
	assert.Len(t, r.Search(ctx, "q", -3), 1)
}

func TestRetriever_DegradesOnEmbeddingFailure(t *testing.T) {
	index := NewMemoryIndex()
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}

	r := NewRetriever(embedder, index, nil, nil)
	got := r.Search(context.Background(), "q", 3)
	assert.Empty(t, got, "embedding failure must degrade to empty, not propagate")
}

type failingIndex struct{}

func (failingIndex) Rebuild(context.Context) error                                { return nil }
func (failingIndex) Upsert(context.Context, []string, [][]float32, []string) error { return nil }
func (failingIndex) Query(context.Context, []float32, int) ([]string, error) {
	return nil, errors.New("index offline")
}

func TestRetriever_DegradesOnIndexFailure(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{}, failingIndex{}, nil, nil)
	got := r.Search(context.Background(), "q", 3)
	assert.Empty(t, got)
}

func TestIngestDocuments(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex()
	embedder := &fakeEmbedder{}

	err := IngestDocuments(ctx, embedder, index, []string{"GharFix offers plumbing and electrical services across seven cities."})
	require.NoError(t, err)

	got, err := index.Query(ctx, []float32{0, 0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "plumbing")
}
