package models

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict is returned when a unique attribute (email, username) is already taken.
	ErrConflict = errors.New("conflict")
	// ErrAuth is returned for bad credentials or unusable tokens.
	ErrAuth = errors.New("invalid email or password")
	// ErrValidation is returned for input that cannot be stored as given.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when no row has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the acting identity does not own the record.
	ErrForbidden = errors.New("not authorized")
)

// AuthFailureMessage is shown for every failed login, whatever the cause.
const AuthFailureMessage = "Invalid email or password."

// Problem is a domain error whose Message can be shown to the user as is.
type Problem struct {
	Kind    error
	Message string
}

func (p *Problem) Error() string {
	return p.Kind.Error() + ": " + p.Message
}

func (p *Problem) Unwrap() error {
	return p.Kind
}

// Problemf builds a Problem of the given kind.
func Problemf(kind error, format string, args ...any) error {
	return &Problem{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing text carried by err, or fallback.
func Message(err error, fallback string) string {
	var p *Problem
	if errors.As(err, &p) && p.Message != "" {
		return p.Message
	}
	return fallback
}
