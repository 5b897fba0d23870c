// Package phone normalizes the phone numbers collected from intake
// forms and user profiles. Indonesia is the default region for inputs
// without a country prefix.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "ID"

// NormalizeE164 renders input in E.164. Values that do not parse as a
// valid number come back trimmed but otherwise untouched, so a bad
// entry is stored rather than silently dropped.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Digits strips every non-digit character. Duplicate detection compares
// numbers in this form so formatting differences never mask a match.
func Digits(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
