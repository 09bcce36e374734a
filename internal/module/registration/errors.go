package registration

import (
	"errors"
	"fmt"
)

// Registration module errors.
var (
	ErrTeamFull           = errors.New("team member limit reached")
	ErrMinimumRoster      = errors.New("at least the minimum roster must remain")
	ErrInvalidMemberIndex = errors.New("no such member")
	ErrUnknownField       = errors.New("unknown member field")
	ErrSubmitInFlight     = errors.New("a submission is already in progress")
	ErrNotEditing         = errors.New("draft is no longer editable")
	ErrDraftNotFound      = errors.New("draft session not found")
	ErrRepository         = errors.New("registration could not be saved")
)

// ValidationError carries the first rule violated by a draft.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AsValidationError returns the ValidationError wrapped in err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
