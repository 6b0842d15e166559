// Vote HTTP handlers.
//
//   - POST /votes   (submit answers to a friend's calendar)
//
// Idempotency: when the client sends an Idempotency-Key, the first
// successful response is stored under (user, "POST /votes", key) and the
// middleware replays it for retries, so a retried batch never reports the
// categories it already recorded as conflicts.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/gift-calendar/internal/http/middleware"
	"github.com/tbourn/gift-calendar/internal/repo"
	"github.com/tbourn/gift-calendar/internal/services"
	"github.com/tbourn/gift-calendar/internal/utils"
)

//
// DTOs
//

// SubmitVotesRequest carries one raw answer per category id.
type SubmitVotesRequest struct {
	CalendarOwnerID string            `json:"calendar_owner_id" binding:"required" example:"auth0|5f7c8ec7c33c6c004bbafe82"`
	Answers         map[string]string `json:"answers" binding:"required" example:"1:Golden retriever"`
	// InviteToken links the vote to the invitation it came from.
	InviteToken string `json:"invite_token,omitempty" example:"9b2f1a64-4d1f-4e8e-9d52-3c6f0f5d2a10"`
}

// SubmitVotesResponse is the per-category outcome of a batch.
type SubmitVotesResponse struct {
	Submitted int                        `json:"submitted"`
	Accepted  []services.AcceptedAnswer `json:"accepted"`
	Errors    []services.CategoryError  `json:"errors"`
}

// SubmitVotesError is returned when no category of the batch was recorded.
type SubmitVotesError struct {
	ErrorResponse
	Errors []services.CategoryError `json:"errors"`
}

// parseBatch turns JSON keys into category ids.
func parseBatch(in map[string]string) (map[int]string, bool) {
	out := make(map[int]string, len(in))
	for k, v := range in {
		id, valid := utils.PositiveID(k)
		if !valid {
			return nil, false
		}
		out[id] = v
	}
	return out, true
}

//
// Handlers
//

// SubmitVotes godoc
// @ID          submitVotes
// @Summary     Answer a friend's calendar
// @Description Records one answer per category. Answers are normalized and merged with identical answers from other friends.
// @Description Categories fail independently; the batch fails only when none was recorded.
// @Description Supports idempotency via the Idempotency-Key header (same key → same response).
// @Tags        Votes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header    string                        false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body      handlers.SubmitVotesRequest   true   "Answers keyed by category id"
// @Success     200              {object}  handlers.SubmitVotesResponse
// @Failure     400              {object}  handlers.SubmitVotesError    "No valid answers"
// @Failure     401              {object}  handlers.ErrorResponse
// @Failure     403              {object}  handlers.ErrorResponse       "Own calendar"
// @Failure     404              {object}  handlers.ErrorResponse       "Calendar not found"
// @Failure     409              {object}  handlers.SubmitVotesError    "Already voted or voting closed"
// @Failure     500              {object}  handlers.ErrorResponse
// @Router      /votes [post]
func (h *Handlers) SubmitVotes(c *gin.Context) {
	var req SubmitVotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "calendar_owner_id and answers required")
		return
	}
	batch, valid := parseBatch(req.Answers)
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "answers must be keyed by category id")
		return
	}

	res, err := h.votes.Submit(c.Request.Context(), principal(c),
		strings.TrimSpace(req.CalendarOwnerID), batch, strings.TrimSpace(req.InviteToken))
	if err != nil {
		if res == nil {
			failErr(c, err)
			return
		}
		status, code := statusOf(err)
		c.AbortWithStatusJSON(status, SubmitVotesError{
			ErrorResponse: envelope(c, code, services.MessageOf(err)),
			Errors:        nonNil(res.Errors),
		})
		return
	}

	out := SubmitVotesResponse{
		Submitted: res.Submitted,
		Accepted:  nonNil(res.Accepted),
		Errors:    nonNil(res.Errors),
	}
	h.remember(c, http.StatusOK, out)
	ok(c, http.StatusOK, out)
}

// remember stores body for Idempotency-Key replay. Failures only cost the
// replay, so they are logged and swallowed.
func (h *Handlers) remember(c *gin.Context, status int, body any) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.db == nil {
		return
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return
	}
	_, err = repo.CreateIdempotency(c.Request.Context(), h.db, principal(c).ID,
		middleware.IdempotencyScope(c), key, status, string(raw), h.idemTTL)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("store idempotency record failed")
	}
}
