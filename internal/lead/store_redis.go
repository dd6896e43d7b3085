package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// draftTTL bounds how long an abandoned booking flow survives. A customer who
// walks away mid-flow starts fresh next time.
const draftTTL = time.Hour

// RedisDraftStore persists drafts in Redis so the booking flow survives a
// process restart and can be shared across instances.
type RedisDraftStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewRedisDraftStore creates a Redis-backed draft store.
func NewRedisDraftStore(client *redis.Client, tracer trace.Tracer) *RedisDraftStore {
	if client == nil {
		panic("lead: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("gharfix.internal.lead.drafts")
	}
	return &RedisDraftStore{redis: client, tracer: tracer}
}

func draftKey(conversationID string) string {
	return fmt.Sprintf("lead_draft:%s", conversationID)
}

// Get loads the draft, or (nil, nil) when no booking is in progress.
func (s *RedisDraftStore) Get(ctx context.Context, conversationID string) (*Draft, error) {
	ctx, span := s.tracer.Start(ctx, "lead.get_draft")
	defer span.End()

	data, err := s.redis.Get(ctx, draftKey(conversationID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("lead: failed to load draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("lead: failed to decode draft: %w", err)
	}
	return &draft, nil
}

// Put persists the draft with a bounded TTL.
func (s *RedisDraftStore) Put(ctx context.Context, conversationID string, draft *Draft) error {
	ctx, span := s.tracer.Start(ctx, "lead.put_draft")
	defer span.End()

	data, err := json.Marshal(draft)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("lead: failed to marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKey(conversationID), data, draftTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("lead: failed to persist draft: %w", err)
	}
	return nil
}

// Delete removes the draft; deleting a missing draft is a no-op.
func (s *RedisDraftStore) Delete(ctx context.Context, conversationID string) error {
	ctx, span := s.tracer.Start(ctx, "lead.delete_draft")
	defer span.End()

	if err := s.redis.Del(ctx, draftKey(conversationID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("lead: failed to delete draft: %w", err)
	}
	return nil
}
