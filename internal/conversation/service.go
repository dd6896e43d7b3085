package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gharfix/gharfix-ai-platform/internal/lead"
	"github.com/gharfix/gharfix-ai-platform/internal/memory"
	"github.com/gharfix/gharfix-ai-platform/internal/observability/metrics"
	"github.com/gharfix/gharfix-ai-platform/pkg/logging"
)

const (
	answerTemperature = 0.4
	answerMaxTokens   = 512
)

// Retriever fetches grounding passages for a question. Failures degrade to an
// empty slice inside the implementation, never an error.
type Retriever interface {
	Search(ctx context.Context, query string, k int) []string
}

// Service routes each inbound message: an open booking draft always continues
// the booking flow, a trigger phrase starts one, anything else goes through
// retrieval and generation. All state mutation for one conversation is
// serialized; different conversations never block each other.
type Service struct {
	flow      *lead.Flow
	memory    memory.Store
	retriever Retriever
	generator Generator
	corpus    string

	contactPhone string
	topK         int

	logger  *logging.Logger
	metrics *metrics.ChatMetrics

	locks sync.Map // conversationID -> *convLock
}

type convLock struct {
	mu   sync.Mutex
	refs int
}

// ServiceConfig wires the Service's collaborators. Flow, Memory, Retriever,
// and Generator are required.
type ServiceConfig struct {
	Flow         *lead.Flow
	Memory       memory.Store
	Retriever    Retriever
	Generator    Generator
	Corpus       string
	ContactPhone string
	TopK         int
	Logger       *logging.Logger
	Metrics      *metrics.ChatMetrics
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.Flow == nil || cfg.Memory == nil || cfg.Retriever == nil || cfg.Generator == nil {
		panic("conversation: flow, memory, retriever, and generator are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		flow:         cfg.Flow,
		memory:       cfg.Memory,
		retriever:    cfg.Retriever,
		generator:    cfg.Generator,
		corpus:       cfg.Corpus,
		contactPhone: cfg.ContactPhone,
		topK:         cfg.TopK,
		logger:       logger,
		metrics:      cfg.Metrics,
	}
}

// Handle processes one inbound message and always returns user-facing text.
// Internal failures are logged and converted to a fixed apology; raw error
// strings never reach the user.
func (s *Service) Handle(ctx context.Context, conversationID, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "I didn't catch that. Could you type your question again?"
	}

	lock := s.acquire(conversationID)
	inBooking, err := s.flow.Active(ctx, conversationID)
	if err != nil {
		s.release(conversationID, lock)
		s.logger.Error("draft lookup failed", "conversation_id", conversationID, "error", err.Error())
		s.metrics.ObserveMessage("booking", "error")
		return s.apology()
	}

	switch {
	case inBooking:
		reply := s.advanceBooking(ctx, conversationID, message)
		s.release(conversationID, lock)
		return reply
	case s.flow.Phrases().IsTrigger(message):
		reply := s.startBooking(ctx, conversationID, message)
		s.release(conversationID, lock)
		return reply
	}
	// Retrieval and generation are network-bound; the conversation lock is
	// not held across them.
	s.release(conversationID, lock)

	return s.answer(ctx, conversationID, message)
}

// advanceBooking feeds the message to the state machine. Intermediate booking
// turns are recorded into memory so free-form answers after a booking see the
// whole exchange.
func (s *Service) advanceBooking(ctx context.Context, conversationID, message string) string {
	outcome, err := s.flow.Advance(ctx, conversationID, message)
	if err != nil {
		s.logger.Error("booking flow failed", "conversation_id", conversationID, "error", err.Error())
		s.metrics.ObserveMessage("booking", "error")
		return s.apology()
	}

	s.record(ctx, conversationID, message, outcome.Reply)
	if outcome.Submitted {
		s.metrics.ObserveLeadSubmitted()
		s.logger.Info("lead submitted",
			"conversation_id", conversationID,
			"request_id", outcome.Handoff.RequestID,
		)
	}
	s.metrics.ObserveMessage("booking", "ok")
	return outcome.Reply
}

func (s *Service) startBooking(ctx context.Context, conversationID, message string) string {
	reply, err := s.flow.Start(ctx, conversationID)
	if err != nil {
		s.logger.Error("booking start failed", "conversation_id", conversationID, "error", err.Error())
		s.metrics.ObserveMessage("booking", "error")
		return s.apology()
	}
	s.record(ctx, conversationID, message, reply)
	s.metrics.ObserveMessage("booking", "ok")
	return reply
}

// answer runs the retrieval-augmented generation path and records the turn.
func (s *Service) answer(ctx context.Context, conversationID, message string) string {
	turns, err := s.memory.Recent(ctx, conversationID)
	if err != nil {
		s.logger.Warn("history lookup failed, answering without it",
			"conversation_id", conversationID, "error", err.Error())
		turns = nil
	}

	passages := s.retriever.Search(ctx, message, s.topK)

	prompt := BuildPrompt(PromptInput{
		History:      memory.Render(turns),
		Corpus:       s.corpus,
		Passages:     passages,
		Question:     message,
		ContactPhone: s.contactPhone,
	})

	start := time.Now()
	resp, err := s.generator.Generate(ctx, GenerateRequest{
		Prompt:          prompt,
		Temperature:     answerTemperature,
		MaxOutputTokens: answerMaxTokens,
	})
	s.metrics.ObserveLLMLatency(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("generation failed", "conversation_id", conversationID, "error", err.Error())
		s.metrics.ObserveMessage("freeform", "error")
		// The apology is recorded too, so later turns see that this answer
		// failed.
		apology := s.apology()
		s.recordLocked(ctx, conversationID, message, apology)
		return apology
	}

	reply := EnforcePolicy(resp.Text, message, s.flow.Services(), s.contactPhone)
	s.recordLocked(ctx, conversationID, message, reply)
	s.metrics.ObserveMessage("freeform", "ok")
	return reply
}

func (s *Service) apology() string {
	return fmt.Sprintf("Sorry, I'm having trouble answering right now. Please call or WhatsApp us at %s and our team will help you directly.", s.contactPhone)
}

// record writes a turn while the caller already holds the conversation lock.
func (s *Service) record(ctx context.Context, conversationID, userText, assistantText string) {
	if err := s.memory.Record(ctx, conversationID, userText, assistantText); err != nil {
		s.logger.Warn("failed to record turn", "conversation_id", conversationID, "error", err.Error())
	}
}

// recordLocked reacquires the conversation lock around the memory write.
func (s *Service) recordLocked(ctx context.Context, conversationID, userText, assistantText string) {
	lock := s.acquire(conversationID)
	defer s.release(conversationID, lock)
	s.record(ctx, conversationID, userText, assistantText)
}

// acquire returns the per-conversation lock, held on return. Locks are
// refcounted and removed from the map when the last holder releases, so the
// map does not grow with every conversation ever seen.
func (s *Service) acquire(conversationID string) *convLock {
	for {
		v, _ := s.locks.LoadOrStore(conversationID, &convLock{})
		cl := v.(*convLock)
		cl.mu.Lock()
		cl.refs++
		if current, ok := s.locks.Load(conversationID); ok && current == v {
			return cl
		}
		// Lost a race with release deleting the entry. Retry.
		cl.refs--
		cl.mu.Unlock()
	}
}

func (s *Service) release(conversationID string, cl *convLock) {
	cl.refs--
	if cl.refs == 0 {
		s.locks.Delete(conversationID)
	}
	cl.mu.Unlock()
}
