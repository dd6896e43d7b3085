package conversation

import (
	"fmt"
	"regexp"
	"strings"
)

const maxAnswerSentences = 5

var markupPattern = regexp.MustCompile("[*_`~]+|^#+\\s*")

var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

// EnforcePolicy post-checks a generated reply against the output rules: strip
// markdown, redirect price questions to the human channel, guarantee the full
// numbered catalog when the user asked for it, and clamp everything else to
// five sentences. The model is instructed to do all of this already; the
// guard makes it a hard guarantee.
func EnforcePolicy(reply, userMessage string, services []string, contactPhone string) string {
	cleaned := stripMarkup(reply)

	if IsPriceQuestion(userMessage) {
		return fmt.Sprintf("For pricing and bookings, please WhatsApp or call us at %s and our team will share the latest rates with you.", contactPhone)
	}

	if WantsFullList(userMessage) {
		if containsEveryService(cleaned, services) {
			return cleaned
		}
		return canonicalServiceList(services, contactPhone)
	}

	return clampSentences(cleaned, maxAnswerSentences)
}

func stripMarkup(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = markupPattern.ReplaceAllString(line, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func containsEveryService(reply string, services []string) bool {
	lower := strings.ToLower(reply)
	for _, svc := range services {
		if !strings.Contains(lower, strings.ToLower(svc)) {
			return false
		}
	}
	return true
}

func canonicalServiceList(services []string, contactPhone string) string {
	var b strings.Builder
	b.WriteString("Here are all the services GharFix offers:\n")
	for i, svc := range services {
		fmt.Fprintf(&b, "%d. %s\n", i+1, svc)
	}
	fmt.Fprintf(&b, "To book any of these, WhatsApp or call us at %s.", contactPhone)
	return b.String()
}

// clampSentences keeps at most limit sentences, counting terminal punctuation
// runs. Replies without terminal punctuation pass through unchanged.
func clampSentences(text string, limit int) string {
	ends := sentenceEnd.FindAllStringIndex(text, -1)
	if len(ends) <= limit {
		return text
	}
	cut := ends[limit-1][1]
	return strings.TrimSpace(text[:cut])
}
