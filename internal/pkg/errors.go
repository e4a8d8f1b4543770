package pkg

import (
	"errors"
)

// Error kinds. Every error a service returns matches exactly one of them with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrForbidden   = errors.New("forbidden")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)

// Error pairs a kind with a message that is safe to show to the end user.
// Cause, when set, is kept for logs only.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func Validation(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Msg: msg} }

func Conflict(msg string) error { return &Error{Kind: ErrConflict, Msg: msg} }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

func Persistence(cause error) error {
	return &Error{Kind: ErrPersistence, Msg: "something went wrong, please try again later", Cause: cause}
}

// Message returns the user-facing text of err. Errors outside the taxonomy are
// treated as persistence failures so their text never reaches the user.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != ErrPersistence {
		return e.Msg
	}
	return "something went wrong, please try again later"
}
