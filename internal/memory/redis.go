package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const historyTTL = 24 * time.Hour

// RedisStore keeps conversation history in a Redis list so multiple instances
// can share it. Same contract as MemoryStore: MaxTurns retained, FIFO.
type RedisStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewRedisStore creates a Redis-backed history store.
func NewRedisStore(client *redis.Client, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("memory: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("gharfix.internal.memory")
	}
	return &RedisStore{redis: client, tracer: tracer}
}

func historyKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s", conversationID)
}

// Record appends a turn and trims the list to the most recent MaxTurns.
func (s *RedisStore) Record(ctx context.Context, conversationID, userText, assistantText string) error {
	ctx, span := s.tracer.Start(ctx, "memory.record_turn")
	defer span.End()

	data, err := json.Marshal(Turn{User: userText, Assistant: assistantText})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("memory: failed to marshal turn: %w", err)
	}

	key := historyKey(conversationID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -MaxTurns, -1)
	pipe.Expire(ctx, key, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("memory: failed to persist turn: %w", err)
	}
	return nil
}

// Recent returns the retained turns in insertion order.
func (s *RedisStore) Recent(ctx context.Context, conversationID string) ([]Turn, error) {
	ctx, span := s.tracer.Start(ctx, "memory.load_turns")
	defer span.End()

	items, err := s.redis.LRange(ctx, historyKey(conversationID), 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("memory: failed to load turns: %w", err)
	}

	turns := make([]Turn, 0, len(items))
	for _, item := range items {
		var turn Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("memory: failed to decode turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
