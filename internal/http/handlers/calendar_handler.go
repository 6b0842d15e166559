// Calendar HTTP handlers.
//
//   - POST /calendar            (generate the caller's calendar code)
//   - GET  /calendar            (owner dashboard)
//   - PUT  /calendar/voting     (voting switch and deadline)
//   - GET  /calendars/{code}    (visitor view)
//   - GET  /categories          (the nine prompts)
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/gift-calendar/internal/domain"
)

//
// DTOs
//

// GenerateCodeResponse carries the caller's calendar code.
type GenerateCodeResponse struct {
	CalendarCode string `json:"calendar_code" example:"K7Q2M9XA"`
	// Created is false when the code already existed.
	Created bool `json:"created" example:"true"`
}

// UpdateVotingRequest toggles voting and sets an optional deadline.
type UpdateVotingRequest struct {
	VotingEnabled *bool `json:"voting_enabled" binding:"required" example:"true"`
	// RFC 3339 timestamp, or a date (YYYY-MM-DD) meaning "through that day"
	// in the calendar time zone. Empty clears the deadline.
	VotingDeadline string `json:"voting_deadline" example:"2025-11-30"`
}

// VotingSettingsResponse echoes the stored voting settings.
type VotingSettingsResponse struct {
	VotingEnabled  bool       `json:"voting_enabled"`
	VotingDeadline *time.Time `json:"voting_deadline,omitempty"`
}

// CategoriesResponse lists the calendar prompts in display order.
type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// parseDeadline accepts RFC 3339 or a date. A date is exclusive midnight of
// the following day in loc, so voting stays open for the whole date.
func parseDeadline(s string, loc *time.Location) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, true
	}
	if d, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		t := d.AddDate(0, 0, 1)
		return &t, true
	}
	return nil, false
}

//
// Handlers
//

// GenerateCalendarCode godoc
// @ID          generateCalendarCode
// @Summary     Generate the caller's calendar code
// @Description Assigns a unique 8-character code on first call; later calls return the same code.
// @Tags        Calendar
// @Produce     json
// @Security    BearerAuth
// @Success     201  {object}  handlers.GenerateCodeResponse  "Code created"
// @Success     200  {object}  handlers.GenerateCodeResponse  "Code already existed"
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /calendar [post]
func (h *Handlers) GenerateCalendarCode(c *gin.Context) {
	code, created, err := h.cal.GenerateCode(c.Request.Context(), principal(c).ID)
	if err != nil {
		failErr(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, GenerateCodeResponse{CalendarCode: code, Created: created})
}

// GetCalendar godoc
// @ID          getCalendar
// @Summary     Owner dashboard
// @Description Days with unlock and reveal state, answer and vote totals, friend stats and countdowns.
// @Tags        Calendar
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  services.Overview
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /calendar [get]
func (h *Handlers) GetCalendar(c *gin.Context) {
	ov, err := h.cal.Overview(c.Request.Context(), principal(c).ID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ov)
}

// UpdateVoting godoc
// @ID          updateVoting
// @Summary     Update voting settings
// @Tags        Calendar
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.UpdateVotingRequest  true  "Voting settings"
// @Success     200   {object}  handlers.VotingSettingsResponse
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     401   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Failure     500   {object}  handlers.ErrorResponse
// @Router      /calendar/voting [put]
func (h *Handlers) UpdateVoting(c *gin.Context) {
	var req UpdateVotingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "voting_enabled required")
		return
	}
	deadline, valid := parseDeadline(req.VotingDeadline, h.loc)
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "voting_deadline must be RFC 3339 or YYYY-MM-DD")
		return
	}

	u, err := h.cal.UpdateVoting(c.Request.Context(), principal(c).ID, *req.VotingEnabled, deadline)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, VotingSettingsResponse{VotingEnabled: u.VotingEnabled, VotingDeadline: u.VotingDeadline})
}

// GetCalendarByCode godoc
// @ID          getCalendarByCode
// @Summary     Open a friend's calendar
// @Description Owner name, categories and whether the caller already voted or was invited.
// @Tags        Calendar
// @Produce     json
// @Security    BearerAuth
// @Param       code  path      string  true  "Calendar code"  example(K7Q2M9XA)
// @Success     200   {object}  services.CalendarView
// @Failure     401   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Failure     500   {object}  handlers.ErrorResponse
// @Router      /calendars/{code} [get]
func (h *Handlers) GetCalendarByCode(c *gin.Context) {
	view, err := h.cal.ByCode(c.Request.Context(), principal(c), c.Param("code"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List calendar categories
// @Tags        Calendar
// @Produce     json
// @Success     200  {object}  handlers.CategoriesResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.cal.Categories(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, CategoriesResponse{Categories: cats})
}
