// Invitation HTTP handlers.
//
//   - POST   /invitations            (invite friends by email)
//   - GET    /invitations            (sent invitations, ETag support)
//   - GET    /invitations/received   (invitations addressed to the caller)
//   - DELETE /invitations/{id}       (withdraw an invitation)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/gift-calendar/internal/http/middleware"
	"github.com/tbourn/gift-calendar/internal/repo"
	"github.com/tbourn/gift-calendar/internal/services"
)

//
// DTOs
//

// maxInviteBatch caps the addresses accepted in one request.
const maxInviteBatch = 50

// CreateInvitationsRequest lists the addresses to invite.
type CreateInvitationsRequest struct {
	Emails []string `json:"emails" binding:"required,min=1" example:"ana@example.com,bo@example.com"`
}

// CreateInvitationsResponse reports each address's outcome. Links are the
// personal voting links of the newly invited friends.
type CreateInvitationsResponse struct {
	Invited []string              `json:"invited"`
	Skipped []string              `json:"skipped"`
	Invalid []string              `json:"invalid"`
	Links   []services.InviteLink `json:"links"`
}

// ListInvitationsResponse lists the caller's sent invitations.
type ListInvitationsResponse struct {
	Invitations []services.InvitationView `json:"invitations"`
	Total       int                       `json:"total"`
	Voted       int                       `json:"voted"`
}

// ReceivedInvitationsResponse lists invitations addressed to the caller.
type ReceivedInvitationsResponse struct {
	Invitations []services.ReceivedInvitation `json:"invitations"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

//
// Handlers
//

// CreateInvitations godoc
// @ID          createInvitations
// @Summary     Invite friends
// @Description Validates, de-duplicates and records invitations, then emails each friend a personal voting link.
// @Description Already-invited addresses and the caller's own are reported as skipped.
// @Tags        Invitations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Origin  header    string                               false  "Allow-listed origin used for links"
// @Param       body    body      handlers.CreateInvitationsRequest    true   "Addresses"
// @Success     201     {object}  handlers.CreateInvitationsResponse
// @Failure     400     {object}  handlers.ErrorResponse  "No valid address or no calendar code yet"
// @Failure     401     {object}  handlers.ErrorResponse
// @Failure     500     {object}  handlers.ErrorResponse
// @Router      /invitations [post]
func (h *Handlers) CreateInvitations(c *gin.Context) {
	var req CreateInvitationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "emails required")
		return
	}
	if len(req.Emails) > maxInviteBatch {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("at most %d emails per request", maxInviteBatch))
		return
	}

	res, err := h.inv.Create(c.Request.Context(), principal(c).ID, req.Emails, h.linkBase(c))
	if err != nil {
		failErr(c, err)
		return
	}

	out := CreateInvitationsResponse{
		Invited: make([]string, 0, len(res.Invited)),
		Skipped: nonNil(res.Skipped),
		Invalid: nonNil(res.Invalid),
		Links:   nonNil(res.Invited),
	}
	for _, l := range res.Invited {
		out.Invited = append(out.Invited, l.Email)
	}
	ok(c, http.StatusCreated, out)
}

// ListInvitations godoc
// @ID          listInvitations
// @Summary     List sent invitations
// @Description Newest first, with whether each invited friend has voted. Supports conditional GET.
// @Tags        Invitations
// @Produce     json
// @Security    BearerAuth
// @Param       If-None-Match  header    string  false  "ETag from a previous response"
// @Success     200            {object}  handlers.ListInvitationsResponse
// @Success     304            "Not modified"
// @Failure     401            {object}  handlers.ErrorResponse
// @Failure     404            {object}  handlers.ErrorResponse
// @Failure     500            {object}  handlers.ErrorResponse
// @Router      /invitations [get]
func (h *Handlers) ListInvitations(c *gin.Context) {
	ctx := c.Request.Context()
	uid := principal(c).ID

	// ETag pre-check (best effort).
	if h.db != nil {
		if etag, err := h.invitationsETag(c, uid); err == nil {
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		} else {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("invitations etag failed")
		}
	}

	items, err := h.inv.List(ctx, uid)
	if err != nil {
		failErr(c, err)
		return
	}
	voted := 0
	for _, it := range items {
		if it.HasVoted {
			voted++
		}
	}
	ok(c, http.StatusOK, ListInvitationsResponse{Invitations: nonNil(items), Total: len(items), Voted: voted})
}

// invitationsETag fingerprints everything ListInvitations renders: the
// invitation rows and the votes that drive has_voted.
func (h *Handlers) invitationsETag(c *gin.Context, uid string) (string, error) {
	ctx := c.Request.Context()
	count, maxTS, err := repo.InvitationsStats(ctx, h.db, uid)
	if err != nil {
		return "", err
	}
	votes, err := repo.CalendarVoteCount(ctx, h.db, uid)
	if err != nil {
		return "", err
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	return fmt.Sprintf(`W/"invitations:%d:%d:%d"`, count, ts, votes), nil
}

// ListReceivedInvitations godoc
// @ID          listReceivedInvitations
// @Summary     Invitations addressed to the caller
// @Tags        Invitations
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.ReceivedInvitationsResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /invitations/received [get]
func (h *Handlers) ListReceivedInvitations(c *gin.Context) {
	email := principal(c).Email
	if email == "" {
		ok(c, http.StatusOK, ReceivedInvitationsResponse{Invitations: []services.ReceivedInvitation{}})
		return
	}
	items, err := h.inv.ListReceived(c.Request.Context(), email)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ReceivedInvitationsResponse{Invitations: nonNil(items)})
}

// DeleteInvitation godoc
// @ID          deleteInvitation
// @Summary     Withdraw an invitation
// @Tags        Invitations
// @Security    BearerAuth
// @Param       id   path  string  true  "Invitation ID"  format(uuid)
// @Success     204  "Deleted"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Invitation belongs to another sender"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /invitations/{id} [delete]
func (h *Handlers) DeleteInvitation(c *gin.Context) {
	if err := h.inv.Delete(c.Request.Context(), principal(c).ID, c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
