package person

import "errors"

var (
	ErrNotFound      = errors.New("person not found")
	ErrMissingField  = &ValidationError{Message: "Name or number is missing"}
	ErrDuplicateName = &ValidationError{Message: "Name must be unique"}
)

// ValidationError reports input that was rejected before touching the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
