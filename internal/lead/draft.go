// Package lead implements the structured booking flow: a per-conversation
// finite-state machine that collects and validates lead details step by step,
// then hands the confirmed lead to a human channel via a WhatsApp deep link.
package lead

import (
	"context"
	"time"
)

// Step identifies the field the flow is currently collecting.
type Step string

const (
	StepName     Step = "name"
	StepPhone    Step = "phone"
	StepService  Step = "service"
	StepLocation Step = "location"
	StepConfirm  Step = "confirm"
)

// Draft is the in-progress lead for one conversation. Fields populate
// monotonically as steps complete; the draft is deleted on submit, cancel or
// exit. A conversation is "mid-booking" exactly when its draft exists.
type Draft struct {
	Step      Step      `json:"step"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Service   string    `json:"service,omitempty"`
	Location  string    `json:"location,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// DraftStore persists in-progress drafts keyed by conversation ID. Get
// returns (nil, nil) when no draft exists. Implementations must be safe for
// concurrent use.
type DraftStore interface {
	Get(ctx context.Context, conversationID string) (*Draft, error)
	Put(ctx context.Context, conversationID string, draft *Draft) error
	Delete(ctx context.Context, conversationID string) error
}
