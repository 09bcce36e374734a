package registration

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is the standard address check the registration form applies.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rules holds the structural bounds a draft is checked against.
type Rules struct {
	MinMembers int
	MaxMembers int
	Categories CategorySet
}

// ValidationResult is the outcome of checking a draft. When invalid, Field
// names the first violated field in form order and Message is the
// user-facing explanation for it.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(field, message string) ValidationResult {
	return ValidationResult{Field: field, Message: message}
}

// Validate checks a draft against the rules. It reports the first violation
// in form order so the user gets one actionable message at a time: team name
// first, then category, then each member's fields in order, then the roster
// size. The draft is never modified; the same input always yields the same
// result.
func (r Rules) Validate(draft *TeamDraft) ValidationResult {
	if strings.TrimSpace(draft.TeamName) == "" {
		return invalid("team name", "please enter your team name")
	}

	category := strings.TrimSpace(draft.Category)
	if category == "" {
		return invalid("category", "please choose a category")
	}
	if !r.Categories.Contains(category) {
		return invalid("category", fmt.Sprintf("unknown category %q", category))
	}

	for i, m := range draft.Members {
		n := i + 1
		if strings.TrimSpace(m.Name) == "" {
			return invalid("member name", fmt.Sprintf("please enter a name for member %d", n))
		}
		email := strings.TrimSpace(m.Email)
		if email == "" {
			return invalid("member email", fmt.Sprintf("please enter an email address for member %d", n))
		}
		if !emailPattern.MatchString(email) {
			return invalid("member email", fmt.Sprintf("please enter a valid email address for member %d", n))
		}
		if strings.TrimSpace(m.Phone) == "" {
			return invalid("member phone", fmt.Sprintf("please enter a phone number for member %d", n))
		}
		if strings.TrimSpace(m.College) == "" {
			return invalid("member college", fmt.Sprintf("please enter a college name for member %d", n))
		}
	}

	if len(draft.Members) < r.MinMembers || len(draft.Members) > r.MaxMembers {
		return invalid("member count", fmt.Sprintf("teams must have between %d and %d members", r.MinMembers, r.MaxMembers))
	}

	return valid()
}
