// Package conversation contains the dialogue engine: the router that decides
// per message between the structured booking flow and retrieval-augmented
// generation, the prompt assembler, and the text-generation clients.
package conversation

import "context"

// TokenUsage reports generation cost when the provider exposes it.
type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// GenerateRequest is a single-shot instruction prompt. Conversation history
// and retrieved context are already assembled into Prompt by the caller.
type GenerateRequest struct {
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
}

// GenerateResponse is the provider-agnostic completion result.
type GenerateResponse struct {
	Text  string
	Usage TokenUsage
}

// Generator abstracts the text-generation service. Implementations may fail
// (timeout, quota, malformed response); the Service converts every failure
// into a fixed user-facing apology.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}
