// Package rules holds the per-field validation logic that decides whether a
// customization input counts as complete, and the shape-dependent
// requiredness resolution that feeds the session checklist.
package rules

import (
	"strings"

	"customizer/internal/domain"
)

// CountWords splits on whitespace runs, matching how the storefront counts
// engraving words. Leading and trailing whitespace does not create words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CheckText validates a text value against the field's word limit. It
// returns the completion flag for the field and a non-nil error only when
// the value violates the limit. An empty value is a valid state that is
// simply not complete.
func CheckText(field domain.Field, value string) (bool, error) {
	words := CountWords(value)
	if words == 0 {
		return false, nil
	}
	if field.MaxWords > 0 && words > field.MaxWords {
		return false, domain.ErrWordLimit
	}
	return true, nil
}
