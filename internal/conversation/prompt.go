package conversation

import (
	"fmt"
	"strings"
)

// promptRules is the persona and policy preamble sent ahead of every
// free-form question. %s slots are the contact phone number.
const promptRules = `You are GharFix's official customer assistant. Answer clearly and concisely.
You are an AI assistant who knows everything about the services mentioned in the context below.
Provide one precaution to the user about the issue they are describing.
Rules:
- Use the information in the context below.
- If the context is not helpful, answer generally in 2-3 sentences.
- Tone: professional, supportive, and helpful.
- Keep answers under 5 sentences unless asked for all services.
- If the user asks for ALL services, list every service in the context clearly (numbered).
- For bookings or pricing, ask them to WhatsApp or call us at %s.
- If a service is not available, say: "I don't think we provide that service, but please call/message at %s for confirmation".
- If the user asks about a service or city the context does not cover, clearly say GharFix does not offer that yet and suggest confirming at %s.
- Plain text only. Do not use markdown, asterisks, or numbered headings outside of service lists.`

// PromptInput carries the pieces the assembler joins into one instruction
// block. History is already rendered ("User: ...\nAssistant: ..."), Corpus is
// the static knowledge text, Passages are the retrieved snippets for this
// question.
type PromptInput struct {
	History      string
	Corpus       string
	Passages     []string
	Question     string
	ContactPhone string
}

// BuildPrompt assembles rules, history, context, and the question in a fixed
// order. Empty sections are skipped rather than emitted as bare headers.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(promptRules, in.ContactPhone, in.ContactPhone, in.ContactPhone))
	b.WriteString("\n\n")

	if strings.TrimSpace(in.History) != "" {
		b.WriteString("Conversation so far:\n")
		b.WriteString(in.History)
		b.WriteString("\n\n")
	}

	b.WriteString("Context:\n")
	b.WriteString(strings.TrimSpace(in.Corpus))
	b.WriteString("\n")
	for _, passage := range in.Passages {
		if strings.TrimSpace(passage) == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(passage))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Question: ")
	b.WriteString(strings.TrimSpace(in.Question))
	b.WriteString("\n\nAnswer:")
	return b.String()
}

var fullListPhrases = []string{
	"all services",
	"all the services",
	"every service",
	"full list",
	"complete list",
	"list of services",
	"list your services",
	"what services",
	"which services",
	"services do you offer",
	"services do you provide",
}

// WantsFullList reports whether the user explicitly asked to see the whole
// service catalog.
func WantsFullList(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range fullListPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var pricePhrases = []string{
	"price",
	"pricing",
	"cost",
	"charge",
	"charges",
	"how much",
	"rate",
	"rates",
	"fee",
	"fees",
}

// IsPriceQuestion reports whether the user is asking about pricing. Pricing
// answers always redirect to the human channel, never a generated figure.
func IsPriceQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range pricePhrases {
		if containsWordOrPhrase(lower, phrase) {
			return true
		}
	}
	return false
}

// containsWordOrPhrase matches multi-word phrases by substring and single
// words on word boundaries, so "rate" does not fire on "operate".
func containsWordOrPhrase(lower, phrase string) bool {
	if strings.Contains(phrase, " ") {
		return strings.Contains(lower, phrase)
	}
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if word == phrase {
			return true
		}
	}
	return false
}
