package auth

import (
	"errors"
	"strings"

	"github.com/ghaggin/tourpal/internal/api"
)

const emailNotConfirmed = "email is not confirmed"

// Error is a failed account operation, carrying the message to show the
// user.
type Error struct {
	Op      string
	Message string
	// Errors lists field validation failures reported by the server.
	Errors []string
	Cause  error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// EmailNotConfirmed reports whether the account exists but its address has
// not been confirmed yet.
func (e *Error) EmailNotConfirmed() bool {
	return strings.Contains(strings.ToLower(e.Message), emailNotConfirmed)
}

func newError(op string, message string) *Error {
	return &Error{Op: op, Message: message}
}

// wrapError turns a client failure into an *Error, keeping the server's
// message when there is one.
func wrapError(op string, err error, fallback string) *Error {
	e := &Error{
		Op:      op,
		Message: api.MessageOf(err, fallback),
		Cause:   err,
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		e.Errors = apiErr.Errors
	}

	return e
}
