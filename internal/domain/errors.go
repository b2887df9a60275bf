package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindValidation       Kind = "VALIDATION"
	KindSignatureInvalid Kind = "SIGNATURE_INVALID"
	KindNotFound         Kind = "NOT_FOUND"
	KindUpstream         Kind = "UPSTREAM"
	KindPersistence      Kind = "PERSISTENCE"
	KindMethodNotAllowed Kind = "METHOD_NOT_ALLOWED"
	KindUnauthorized     Kind = "UNAUTHORIZED"
)

// FieldError is one entry of a validation detail list.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error carries a user-facing message; Err holds the cause, which is logged
// and never sent to clients.
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, details []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NewSignatureInvalid() *Error {
	return &Error{Kind: KindSignatureInvalid, Message: "Invalid payment signature"}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewUpstreamError(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func NewPersistenceError(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// ErrNotFound is returned by stores when a row does not exist.
var ErrNotFound = errors.New("record not found")

// KindOf returns the Kind of err, or "" for unclassified errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
