package conversation

import (
	"context"
	"log/slog"
)

// FallbackGenerator wraps a primary generator with a fallback provider.
// If the primary fails, it automatically retries with the fallback.
type FallbackGenerator struct {
	primary  Generator
	fallback Generator
	logger   *slog.Logger
}

// NewFallbackGenerator creates a fallback-enabled generator. If fallback is
// nil, only the primary provider is used.
func NewFallbackGenerator(primary, fallback Generator, logger *slog.Logger) *FallbackGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackGenerator{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Generate tries the primary provider and retries with the fallback when the
// primary fails.
func (g *FallbackGenerator) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	resp, err := g.primary.Generate(ctx, req)
	if err == nil {
		return resp, nil
	}

	g.logger.Warn("primary generator failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", g.fallback != nil,
	)

	if g.fallback == nil {
		return GenerateResponse{}, err
	}

	fallbackResp, fallbackErr := g.fallback.Generate(ctx, req)
	if fallbackErr != nil {
		g.logger.Error("fallback generator also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return GenerateResponse{}, fallbackErr
	}

	g.logger.Info("fallback generator succeeded after primary failure")
	return fallbackResp, nil
}
