package literature

import (
	"fmt"
	"strings"
)

// Filter narrows a search. The zero value matches everything.
type Filter struct {
	// FromYear and ToYear bound the publication year, inclusive.
	// Zero leaves that end open.
	FromYear int
	ToYear   int

	// PublicationTypes keeps articles of any listed type, such as
	// "Review" or "Randomized Controlled Trial".
	PublicationTypes []string
}

// IsZero reports whether f filters nothing.
func (f Filter) IsZero() bool {
	return f.FromYear == 0 && f.ToYear == 0 && len(f.Types()) == 0
}

// HasYearRange reports whether either year bound is set.
func (f Filter) HasYearRange() bool {
	return f.FromYear != 0 || f.ToYear != 0
}

// Types returns the trimmed, non-blank publication types.
func (f Filter) Types() []string {
	var out []string
	for _, t := range f.PublicationTypes {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Validate rejects negative years and an inverted range.
func (f Filter) Validate() error {
	if f.FromYear < 0 || f.ToYear < 0 {
		return fmt.Errorf("%w: negative year", ErrInvalidFilter)
	}
	if f.FromYear != 0 && f.ToYear != 0 && f.FromYear > f.ToYear {
		return fmt.Errorf("%w: from year %d is after to year %d", ErrInvalidFilter, f.FromYear, f.ToYear)
	}
	for _, t := range f.Types() {
		if strings.ContainsAny(t, `"[]`) {
			return fmt.Errorf("%w: publication type %q", ErrInvalidFilter, t)
		}
	}
	return nil
}
