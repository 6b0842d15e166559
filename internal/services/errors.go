// Package services defines the business logic of the gift calendar: vote
// aggregation, invitations, reveals, calendars and user profiles.
//
// This file centralizes the service-level error taxonomy. Every error returned
// by a service method carries a Kind so the handler layer can translate it
// into an HTTP status without inspecting messages. Predictable failures are
// exposed as sentinels and can be matched with errors.Is.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/gift-calendar/internal/repo"
)

// Kind classifies service errors.
type Kind uint8

const (
	// KindDependencyFailure covers store errors and anything unclassified.
	KindDependencyFailure Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInvalidInput
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	default:
		return "dependency_failure"
	}
}

// Error is the concrete error type returned by services.
type Error struct {
	Kind    Kind
	Op      string // operation, e.g. "VoteService.Submit"
	Message string // safe to show to the caller
	Err     error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && isSentinel(e.Err):
		return e.Op + ": " + e.Message
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return e.Op + ": " + e.Message
	case e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// isSentinel reports whether err is a bare sentinel, whose text would only
// repeat the wrapper's message.
func isSentinel(err error) bool {
	se, ok := err.(*Error)
	return ok && se.Op == "" && se.Err == nil
}

// KindOf returns the Kind of err. Errors that are not *Error are treated as
// dependency failures.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindDependencyFailure
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return "internal error"
}

func newErr(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

// Sentinels. Wrapped instances keep their Kind and message and still match
// with errors.Is.
var (
	ErrUnauthenticated = newErr(KindUnauthorized, "authentication required")

	ErrSelfVote         = newErr(KindForbidden, "you cannot vote on your own calendar")
	ErrNotInviteOwner   = newErr(KindForbidden, "this invitation belongs to another calendar")
	ErrTestModeDisabled = newErr(KindForbidden, "test mode is disabled")

	ErrUserNotFound       = newErr(KindNotFound, "user not found")
	ErrCalendarNotFound   = newErr(KindNotFound, "calendar not found")
	ErrCategoryNotFound   = newErr(KindNotFound, "category not found")
	ErrInvitationNotFound = newErr(KindNotFound, "invitation not found")

	ErrNoAnswers      = newErr(KindInvalidInput, "no answers provided")
	ErrEmptyAnswer    = newErr(KindInvalidInput, "answer is empty")
	ErrNoValidAnswers = newErr(KindInvalidInput, "no valid answers to submit")
	ErrNoEmails       = newErr(KindInvalidInput, "no valid email addresses provided")
	ErrNoCalendarCode = newErr(KindInvalidInput, "generate your calendar before inviting friends")
	ErrInvalidName    = newErr(KindInvalidInput, "name must be between 1 and 100 characters")

	ErrAlreadyVoted    = newErr(KindConflict, "you have already voted for this category")
	ErrVotingClosed    = newErr(KindConflict, "voting has closed for this year")
	ErrVotingDisabled  = newErr(KindConflict, "voting has been closed for this calendar")
	ErrDeadlinePassed  = newErr(KindConflict, "voting deadline has passed")
	ErrDayLocked       = newErr(KindConflict, "this day is still locked")
	ErrCodeUnavailable = newErr(KindDependencyFailure, "could not allocate a unique calendar code")
)

// wrap attaches op to err. Service errors keep their kind and message; store
// errors become dependency failures; repo.ErrNotFound becomes notFound when
// one is given.
func wrap(op string, err error, notFound ...*Error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return &Error{Kind: se.Kind, Op: op, Message: se.Message, Err: err}
	}
	if len(notFound) > 0 && errors.Is(err, repo.ErrNotFound) {
		nf := notFound[0]
		return &Error{Kind: nf.Kind, Op: op, Message: nf.Message, Err: nf}
	}
	return &Error{Kind: KindDependencyFailure, Op: op, Message: "storage unavailable", Err: err}
}
