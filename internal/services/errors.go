package services

import "errors"

// Error kinds. Every *Error wraps exactly one of them, so callers match with
// errors.Is(err, ErrValidation) regardless of wrapping.
var (
	ErrValidation     = errors.New("validation error")
	ErrAuthorization  = errors.New("authorization error")
	ErrAuthentication = errors.New("authentication error")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

// Error is a business rule violation with a message safe to show to the
// caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// AuthorizationError builds the error returned when a known principal may not
// perform an action.
func AuthorizationError(msg string) error {
	return &Error{Kind: ErrAuthorization, Message: msg}
}

func notFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func conflictError(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// AuthenticationError builds the error returned for a missing or unusable
// credential.
func AuthenticationError(msg string) error {
	return &Error{Kind: ErrAuthentication, Message: msg}
}

// Message returns the user-facing message carried by err, or "" when err is
// not a business error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

const (
	msgElectionNotFound  = "Election not found"
	msgNotActive         = "Election is not active"
	msgAlreadyVoted      = "You have already voted"
	msgStatusChanged     = "Election status has changed"
	msgForbidden         = "You do not have permission to perform this action"
	msgInactiveAccount   = "Account is inactive"
	msgNotPublished      = "Results have not been published yet"
	msgInvalidCandidate  = "Invalid candidate for this election"
	msgOutsideVotingTime = "Election is not within its voting period"
)
