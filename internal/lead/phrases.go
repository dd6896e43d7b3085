package lead

import "strings"

// Phrases holds the externally-configurable keyword sets that drive flow
// control: what starts a booking, what abandons it, and how a confirmation
// answer is read. Keeping these injectable makes the behavior tunable without
// code changes.
type Phrases struct {
	Triggers    []string
	Cancels     []string
	Affirmative []string
	Negative    []string
}

// DefaultPhrases returns the stock keyword sets.
func DefaultPhrases() Phrases {
	return Phrases{
		Triggers:    []string{"book", "booking", "schedule", "appointment", "reserve"},
		Cancels:     []string{"cancel", "exit", "stop", "quit", "nevermind", "never mind"},
		Affirmative: []string{"yes", "y", "yeah", "yep", "yup", "confirm", "ok", "okay", "sure", "haan"},
		Negative:    []string{"no", "n", "nope", "nah"},
	}
}

// IsTrigger reports whether the message should start a booking flow. Checked
// only when the conversation is not already mid-booking.
func (p Phrases) IsTrigger(message string) bool {
	return containsAny(message, p.Triggers)
}

// IsCancel reports whether the message abandons an in-progress flow.
func (p Phrases) IsCancel(message string) bool {
	return containsAny(message, p.Cancels)
}

// IsAffirmative reports a positive confirmation answer.
func (p Phrases) IsAffirmative(message string) bool {
	return matchesAny(message, p.Affirmative)
}

// IsNegative reports a negative confirmation answer.
func (p Phrases) IsNegative(message string) bool {
	return matchesAny(message, p.Negative)
}

// containsAny matches single-word phrases on word boundaries and multi-word
// phrases by substring. "I want to book a plumber" triggers on "book", but
// "MacBook" does not, and a name like "Christopher" does not cancel on
// "stop".
func containsAny(message string, phrases []string) bool {
	lower := strings.ToLower(message)
	words := splitWords(lower)
	for _, phrase := range phrases {
		phrase = strings.ToLower(phrase)
		if strings.Contains(phrase, " ") {
			if strings.Contains(lower, phrase) {
				return true
			}
			continue
		}
		for _, word := range words {
			if word == phrase {
				return true
			}
		}
	}
	return false
}

func splitWords(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

// matchesAny does whole-message matching; confirmation answers are short, and
// substring matching would read "yes" out of "eyes".
func matchesAny(message string, phrases []string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	lower = strings.TrimRight(lower, ".!")
	for _, phrase := range phrases {
		if lower == phrase {
			return true
		}
	}
	return false
}
