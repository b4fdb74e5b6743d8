package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MaxTermLength caps stored search terms, matching the column width.
const MaxTermLength = 255

// SearchLogEntry is one row of the help-search log: a distinct
// (tenant, term) pair with its hit counter and timestamps.
type SearchLogEntry struct {
	ID            int64
	TenantID      int64
	SearchTerm    string
	SearchURL     string
	SearchCount   int
	FirstSearched time.Time
	LastSearched  time.Time
}

// NormalizeTerm sanitizes a raw user-entered search term: control
// characters are stripped, internal whitespace collapses to single
// spaces, the result is trimmed and capped at MaxTermLength.
// Returns "" for terms that are empty after cleanup.
func NormalizeTerm(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastSpace := false
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}

	term := strings.TrimSpace(b.String())
	if runes := []rune(term); len(runes) > MaxTermLength {
		term = strings.TrimSpace(string(runes[:MaxTermLength]))
	}
	return term
}

// ValidateSearchLogEntry validates a SearchLogEntry instance
func ValidateSearchLogEntry(e *SearchLogEntry) error {
	if e == nil {
		return NewDomainError(ErrCodeValidation, "search log entry cannot be nil")
	}
	if e.TenantID <= 0 {
		return NewDomainError(ErrCodeValidation, "tenant ID is required")
	}
	if e.SearchTerm == "" {
		return ErrEmptyTerm
	}
	if utf8.RuneCountInString(e.SearchTerm) > MaxTermLength {
		return NewDomainError(ErrCodeValidation, "search term exceeds maximum length")
	}
	if e.SearchCount < 1 {
		return NewDomainError(ErrCodeValidation, "search count must be at least 1")
	}
	return nil
}
