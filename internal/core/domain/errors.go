package domain

import "errors"

// ErrorKind classifies user-visible failures so the HTTP layer can pick a
// status code without inspecting messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindRateLimited
	KindUpstream
)

// UserError carries a message (and optional hint) safe to show to callers.
type UserError struct {
	Kind    ErrorKind `json:"-"`
	Message string    `json:"message"`
	Hint    string    `json:"hint,omitempty"`
}

func (e *UserError) Error() string {
	if e.Hint != "" {
		return e.Message + " (" + e.Hint + ")"
	}
	return e.Message
}

// Invalid reports a request validation failure.
func Invalid(message, hint string) *UserError {
	return &UserError{Kind: KindValidation, Message: message, Hint: hint}
}

// NotFound reports that the place could not be resolved.
func NotFound(message, hint string) *UserError {
	return &UserError{Kind: KindNotFound, Message: message, Hint: hint}
}

// RateLimited reports an upstream 429.
func RateLimited(message, hint string) *UserError {
	return &UserError{Kind: KindRateLimited, Message: message, Hint: hint}
}

// Upstream reports a failed or unusable upstream response.
func Upstream(message, hint string) *UserError {
	return &UserError{Kind: KindUpstream, Message: message, Hint: hint}
}

// AsUserError unwraps err into a *UserError if one is in the chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
