package lead

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// IST is the fixed offset zone used for request IDs and handoff timestamps.
// Service areas are all in India, so local time is always UTC+5:30.
var IST = time.FixedZone("IST", 5*3600+30*60)

// Handoff is the structured payload emitted when a lead is confirmed. The
// message template and its URL encoding are a compatibility surface with the
// downstream WhatsApp channel; changing either breaks the human side.
type Handoff struct {
	RequestID string
	Name      string
	Phone     string
	Service   string
	Location  string
	Date      string
	Time      string
	DeepLink  string
}

// NewRequestID derives a request identifier from the current IST time.
// Two submissions in the same second collide, a documented limitation of
// the timestamp-only scheme.
func NewRequestID(now time.Time) string {
	return "CHAT-" + now.In(IST).Format("20060102150405")
}

// NewHandoff builds the handoff payload for a completed draft.
func NewHandoff(draft *Draft, whatsAppNumber string, now time.Time) Handoff {
	local := now.In(IST)
	h := Handoff{
		RequestID: draft.RequestID,
		Name:      draft.Name,
		Phone:     draft.Phone,
		Service:   draft.Service,
		Location:  draft.Location,
		Date:      local.Format("02 Jan 2006"),
		Time:      local.Format("03:04 PM"),
	}
	h.DeepLink = fmt.Sprintf("https://wa.me/%s?text=%s", whatsAppNumber, url.QueryEscape(h.Message()))
	return h
}

// Message renders the fixed-format handoff template embedded in the deep link.
func (h Handoff) Message() string {
	var b strings.Builder
	b.WriteString("New Booking Request\n")
	b.WriteString(fmt.Sprintf("Request ID: %s\n", h.RequestID))
	b.WriteString(fmt.Sprintf("Date: %s\n", h.Date))
	b.WriteString(fmt.Sprintf("Time: %s\n", h.Time))
	b.WriteString(fmt.Sprintf("Name: %s\n", h.Name))
	b.WriteString(fmt.Sprintf("Phone: %s\n", h.Phone))
	b.WriteString(fmt.Sprintf("Service: %s\n", h.Service))
	b.WriteString(fmt.Sprintf("Location: %s\n", h.Location))
	b.WriteString("Status: Pending Confirmation")
	return b.String()
}
