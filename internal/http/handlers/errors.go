package handlers

import (
	"errors"
	"net/http"

	"github.com/tbourn/gift-calendar/internal/services"
)

// Error codes returned in the "code" field of the error envelope. Generic
// codes mirror the HTTP status; domain codes name the rule that was hit so
// clients can branch without parsing messages.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeSelfVote         = "self_vote"
	ErrCodeAlreadyVoted     = "already_voted"
	ErrCodeVotingClosed     = "voting_closed"
	ErrCodeDayLocked        = "day_locked"
	ErrCodeTestModeDisabled = "test_mode_disabled"
	ErrCodeNoCalendarCode   = "no_calendar_code"
	ErrCodeInvalidEmails    = "invalid_emails"
)

// domainCodes refines the generic code of a few sentinels.
var domainCodes = []struct {
	err  error
	code string
}{
	{services.ErrSelfVote, ErrCodeSelfVote},
	{services.ErrAlreadyVoted, ErrCodeAlreadyVoted},
	{services.ErrVotingClosed, ErrCodeVotingClosed},
	{services.ErrVotingDisabled, ErrCodeVotingClosed},
	{services.ErrDeadlinePassed, ErrCodeVotingClosed},
	{services.ErrDayLocked, ErrCodeDayLocked},
	{services.ErrTestModeDisabled, ErrCodeTestModeDisabled},
	{services.ErrNoCalendarCode, ErrCodeNoCalendarCode},
	{services.ErrNoEmails, ErrCodeInvalidEmails},
}

// statusOf maps a service error to its HTTP status and envelope code.
func statusOf(err error) (int, string) {
	status, code := http.StatusInternalServerError, ErrCodeInternal
	switch services.KindOf(err) {
	case services.KindUnauthorized:
		status, code = http.StatusUnauthorized, ErrCodeUnauthorized
	case services.KindForbidden:
		status, code = http.StatusForbidden, ErrCodeForbidden
	case services.KindNotFound:
		status, code = http.StatusNotFound, ErrCodeNotFound
	case services.KindInvalidInput:
		status, code = http.StatusBadRequest, ErrCodeBadRequest
	case services.KindConflict:
		status, code = http.StatusConflict, ErrCodeConflict
	default:
		return status, code
	}
	for _, dc := range domainCodes {
		if errors.Is(err, dc.err) {
			return status, dc.code
		}
	}
	return status, code
}
