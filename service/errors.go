package service

import "github.com/pkg/errors"

// Error taxonomy for the core services. Every error is scoped to one
// request; nothing here is fatal to the process.
var (
	// ErrNotFound: the referenced post or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the actor lacks permission on the target entity.
	ErrForbidden = errors.New("forbidden")
	// ErrSelfFollow: a user attempted to follow itself.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrConflict: a toggle lost a race on a uniqueness constraint. The
	// caller may retry it once as a fresh toggle.
	ErrConflict = errors.New("conflict on uniqueness constraint")
)

// ValidationError is a user-correctable input failure. The reason is
// safe to return verbatim in an API response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation returns true iff err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
