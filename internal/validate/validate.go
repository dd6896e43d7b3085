// Package validate contains the pure field validators used by the lead
// collection flow. Each validator takes raw user text and returns either the
// normalized value or a rejection error whose message is shown to the user as
// a re-prompt. Malformed input is an expected case here, never a fault.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrServiceNotOffered signals that the text matched nothing in the service
// catalog. Callers present the catalog again instead of treating it as a
// validation failure.
var ErrServiceNotOffered = errors.New("validate: service not offered")

var (
	namePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z .']*$`)
	locationPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .,'\-]*$`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// commandTokens are words that indicate the user typed a command or question
// instead of their name.
var commandTokens = []string{"list", "help", "price", "book", "menu", "service", "cancel"}

// nonAnswers are replies that carry no usable location.
var nonAnswers = []string{"idk", "not sure", "dont know", "don't know", "no idea", "dunno", "na", "n/a", "nothing"}

// mobilePrefixes are the leading digits of valid Indian mobile numbers.
const mobilePrefixes = "6789"

// Name checks a customer name and returns it with each word capitalized.
func Name(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	// Word-level check so legitimate names containing a token ("Callista")
	// are not rejected.
	for _, word := range strings.Fields(strings.ToLower(name)) {
		for _, tok := range commandTokens {
			if word == tok || word == tok+"s" {
				return "", fmt.Errorf("that doesn't look like a name. Please share your name, like \"Rohan Sharma\"")
			}
		}
	}
	if len(name) < 2 || len(name) > 50 {
		return "", fmt.Errorf("please enter a name between 2 and 50 characters")
	}
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("names can only contain letters, spaces, periods and apostrophes")
	}
	return TitleCase(name), nil
}

// Phone checks a 10-digit Indian mobile number. Separators are stripped
// first, so "98765-43210" style input still validates. The returned value is
// the bare 10 digits.
func Phone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return "", fmt.Errorf("a phone number needs exactly 10 digits, I counted %d", len(digits))
	}
	if !strings.ContainsRune(mobilePrefixes, rune(digits[0])) {
		return "", fmt.Errorf("mobile numbers start with 6, 7, 8 or 9, please check the number")
	}
	return digits, nil
}

// Service matches user text against the service catalog, case-insensitively
// and in either containment direction ("plumbing" matches "Plumbing
// Services", "I need the full macbook repair services" matches "MacBook
// Repair Services"). The first catalog entry that matches wins. No match
// returns ErrServiceNotOffered.
func Service(raw string, services []string) (string, error) {
	input := strings.ToLower(strings.TrimSpace(raw))
	if input == "" {
		return "", ErrServiceNotOffered
	}
	for _, svc := range services {
		lower := strings.ToLower(svc)
		if strings.Contains(lower, input) || strings.Contains(input, lower) {
			return svc, nil
		}
	}
	return "", ErrServiceNotOffered
}

// Location checks an area/city answer. Catalog cities normalize to canonical
// casing; anything else that still looks like a place name is accepted
// verbatim, title-cased. Stricter matching would over-reject legitimate but
// unlisted areas.
func Location(raw string, cities []string) (string, error) {
	loc := strings.TrimSpace(raw)
	lower := strings.ToLower(loc)
	for _, na := range nonAnswers {
		if lower == na {
			return "", fmt.Errorf("no problem, just share the area or city you'd like the service in")
		}
	}
	if len(loc) < 3 || !strings.ContainsFunc(loc, isLetter) {
		return "", fmt.Errorf("please share your area or city name (at least 3 letters)")
	}
	// Exact match first so "navi mumbai" resolves to Navi Mumbai, not Mumbai.
	for _, city := range cities {
		if strings.ToLower(city) == lower {
			return city, nil
		}
	}
	for _, city := range cities {
		cityLower := strings.ToLower(city)
		if strings.Contains(cityLower, lower) || strings.Contains(lower, cityLower) {
			return city, nil
		}
	}
	if !locationPattern.MatchString(loc) {
		return "", fmt.Errorf("that doesn't look like a place name, please share your area or city")
	}
	return TitleCase(loc), nil
}

// TitleCase capitalizes the first letter of each space-separated word and
// lowercases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
