// Package rag implements retrieval over the knowledge corpus: an embedding
// adapter, a nearest-neighbor index rebuilt fresh at startup, and a retriever
// that degrades to an empty context instead of failing the conversation.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns texts into vectors. Implementations normalize whatever
// single-vs-batch response shape the backing service uses: the returned slice
// always has one vector per input text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type embeddingAPI interface {
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIEmbedder embeds texts with the OpenAI embeddings endpoint.
type OpenAIEmbedder struct {
	client embeddingAPI
	model  string
}

// NewOpenAIEmbedder creates an embedder. An empty model defaults to
// text-embedding-3-small.
func NewOpenAIEmbedder(client embeddingAPI, model string) *OpenAIEmbedder {
	if client == nil {
		panic("rag: embedding client cannot be nil")
	}
	if strings.TrimSpace(model) == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIEmbedder{client: client, model: model}
}

// Embed returns one vector per input text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, &openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("rag: embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("rag: embedding response was empty")
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("rag: embedding response size mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	// Responses are not guaranteed to arrive in request order; Index carries
	// the position.
	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("rag: embedding response index %d out of range", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	for i, vec := range vectors {
		if vec == nil {
			return nil, fmt.Errorf("rag: embedding response missing vector for text %d", i)
		}
	}
	return vectors, nil
}
