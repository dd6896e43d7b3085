package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gharfix/gharfix-ai-platform/internal/validate"
	"github.com/gharfix/gharfix-ai-platform/pkg/logging"
)

// Outcome is the result of feeding one message to the flow.
type Outcome struct {
	Reply     string
	Submitted bool
	Cancelled bool
	// Handoff is set only when Submitted is true.
	Handoff *Handoff
}

// Flow drives the booking state machine:
// name → phone → service → location → confirm → submitted | cancelled.
// It owns no locking; the caller serializes messages per conversation.
type Flow struct {
	drafts         DraftStore
	services       []string
	cities         []string
	phrases        Phrases
	whatsAppNumber string
	contactPhone   string
	logger         *logging.Logger
	now            func() time.Time
}

// FlowConfig wires the flow's collaborators and catalogs.
type FlowConfig struct {
	Drafts         DraftStore
	Services       []string
	Cities         []string
	Phrases        Phrases
	WhatsAppNumber string
	ContactPhone   string
	Logger         *logging.Logger
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewFlow creates a booking flow.
func NewFlow(cfg FlowConfig) *Flow {
	if cfg.Drafts == nil {
		panic("lead: draft store cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if len(cfg.Phrases.Triggers) == 0 {
		cfg.Phrases = DefaultPhrases()
	}
	return &Flow{
		drafts:         cfg.Drafts,
		services:       cfg.Services,
		cities:         cfg.Cities,
		phrases:        cfg.Phrases,
		whatsAppNumber: cfg.WhatsAppNumber,
		contactPhone:   cfg.ContactPhone,
		logger:         cfg.Logger,
		now:            cfg.Now,
	}
}

// Phrases exposes the configured keyword sets so the router can test for
// booking triggers without reaching into the flow.
func (f *Flow) Phrases() Phrases { return f.phrases }

// Services exposes the catalog the flow validates against.
func (f *Flow) Services() []string { return f.services }

// Active reports whether the conversation has an open draft.
func (f *Flow) Active(ctx context.Context, conversationID string) (bool, error) {
	draft, err := f.drafts.Get(ctx, conversationID)
	if err != nil {
		return false, err
	}
	return draft != nil, nil
}

// Start opens a fresh draft at the name step and returns the first prompt.
func (f *Flow) Start(ctx context.Context, conversationID string) (string, error) {
	draft := &Draft{Step: StepName, StartedAt: f.now()}
	if err := f.drafts.Put(ctx, conversationID, draft); err != nil {
		return "", err
	}
	f.logger.Info("booking flow started", "conversation_id", conversationID)
	return "Great, let's get you booked! First, what's your name?", nil
}

// Advance feeds one user message to the open draft and returns the reply.
// Calling Advance without an open draft is a programming error.
func (f *Flow) Advance(ctx context.Context, conversationID, message string) (Outcome, error) {
	draft, err := f.drafts.Get(ctx, conversationID)
	if err != nil {
		return Outcome{}, err
	}
	if draft == nil {
		return Outcome{}, errors.New("lead: no draft open for conversation")
	}

	// The side exit is available from every state.
	if f.phrases.IsCancel(message) {
		return f.cancel(ctx, conversationID, draft)
	}

	switch draft.Step {
	case StepName:
		return f.collectName(ctx, conversationID, draft, message)
	case StepPhone:
		return f.collectPhone(ctx, conversationID, draft, message)
	case StepService:
		return f.collectService(ctx, conversationID, draft, message)
	case StepLocation:
		return f.collectLocation(ctx, conversationID, draft, message)
	case StepConfirm:
		return f.confirm(ctx, conversationID, draft, message)
	default:
		// Unknown step means a corrupt draft; drop it rather than wedge the
		// conversation.
		_ = f.drafts.Delete(ctx, conversationID)
		return Outcome{}, fmt.Errorf("lead: unknown step %q", draft.Step)
	}
}

func (f *Flow) collectName(ctx context.Context, conversationID string, draft *Draft, message string) (Outcome, error) {
	name, err := validate.Name(message)
	if err != nil {
		return Outcome{Reply: err.Error()}, nil
	}
	draft.Name = name
	draft.Step = StepPhone
	if err := f.drafts.Put(ctx, conversationID, draft); err != nil {
		return Outcome{}, err
	}
	return Outcome{Reply: fmt.Sprintf("Thanks, %s! What's your 10-digit mobile number?", name)}, nil
}

func (f *Flow) collectPhone(ctx context.Context, conversationID string, draft *Draft, message string) (Outcome, error) {
	phone, err := validate.Phone(message)
	if err != nil {
		return Outcome{Reply: err.Error()}, nil
	}
	draft.Phone = phone
	draft.Step = StepService
	if err := f.drafts.Put(ctx, conversationID, draft); err != nil {
		return Outcome{}, err
	}
	return Outcome{Reply: "Got it. Which service do you need?\n" + f.serviceList()}, nil
}

func (f *Flow) collectService(ctx context.Context, conversationID string, draft *Draft, message string) (Outcome, error) {
	service, err := validate.Service(message, f.services)
	if err != nil {
		// Not a validation failure: the text simply matched nothing we
		// offer. Re-list the catalog and stay on this step.
		return Outcome{Reply: "I couldn't match that to a service we offer. Please pick one of these:\n" + f.serviceList()}, nil
	}
	draft.Service = service
	draft.Step = StepLocation
	if err := f.drafts.Put(ctx, conversationID, draft); err != nil {
		return Outcome{}, err
	}
	return Outcome{Reply: fmt.Sprintf("%s it is. Which area or city should we come to?", service)}, nil
}

func (f *Flow) collectLocation(ctx context.Context, conversationID string, draft *Draft, message string) (Outcome, error) {
	location, err := validate.Location(message, f.cities)
	if err != nil {
		return Outcome{Reply: err.Error()}, nil
	}
	draft.Location = location
	draft.RequestID = NewRequestID(f.now())
	draft.Step = StepConfirm
	if err := f.drafts.Put(ctx, conversationID, draft); err != nil {
		return Outcome{}, err
	}
	return Outcome{Reply: f.summary(draft)}, nil
}

func (f *Flow) confirm(ctx context.Context, conversationID string, draft *Draft, message string) (Outcome, error) {
	switch {
	case f.phrases.IsAffirmative(message):
		handoff := NewHandoff(draft, f.whatsAppNumber, f.now())
		if err := f.drafts.Delete(ctx, conversationID); err != nil {
			return Outcome{}, err
		}
		f.logger.Info("booking submitted",
			"conversation_id", conversationID,
			"request_id", handoff.RequestID,
			"service", handoff.Service,
			"location", handoff.Location,
		)
		reply := fmt.Sprintf(
			"Booking confirmed! Your request ID is %s.\nTap here to send the details to our team on WhatsApp: %s\nOr call us anytime at %s.",
			handoff.RequestID, handoff.DeepLink, f.contactPhone,
		)
		return Outcome{Reply: reply, Submitted: true, Handoff: &handoff}, nil
	case f.phrases.IsNegative(message):
		return f.cancel(ctx, conversationID, draft)
	default:
		return Outcome{Reply: "Just to be sure: reply \"yes\" to confirm the booking or \"no\" to cancel."}, nil
	}
}

func (f *Flow) cancel(ctx context.Context, conversationID string, draft *Draft) (Outcome, error) {
	if err := f.drafts.Delete(ctx, conversationID); err != nil {
		return Outcome{}, err
	}
	f.logger.Info("booking cancelled", "conversation_id", conversationID, "step", string(draft.Step))
	return Outcome{
		Reply:     "No problem, I've cancelled that booking. Ask me anything else, or say \"book\" whenever you're ready.",
		Cancelled: true,
	}, nil
}

func (f *Flow) summary(draft *Draft) string {
	var b strings.Builder
	b.WriteString("Almost done! Please confirm your booking:\n")
	b.WriteString(fmt.Sprintf("Request ID: %s\n", draft.RequestID))
	b.WriteString(fmt.Sprintf("Name: %s\n", draft.Name))
	b.WriteString(fmt.Sprintf("Phone: %s\n", draft.Phone))
	b.WriteString(fmt.Sprintf("Service: %s\n", draft.Service))
	b.WriteString(fmt.Sprintf("Location: %s\n", draft.Location))
	b.WriteString("Reply \"yes\" to confirm or \"no\" to cancel.")
	return b.String()
}

func (f *Flow) serviceList() string {
	var b strings.Builder
	for i, svc := range f.services {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, svc))
	}
	return strings.TrimRight(b.String(), "\n")
}
