// Reveal HTTP handlers.
//
//   - POST   /reveals/{day}   (open a day of the caller's calendar)
//   - DELETE /reveals         (close every day again; test mode only)
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/gift-calendar/internal/advent"
	"github.com/tbourn/gift-calendar/internal/utils"
)

// RevealRequest is the optional body of a reveal.
type RevealRequest struct {
	// TestMode ignores the unlock date when the server allows it.
	TestMode bool `json:"test_mode" example:"false"`
}

// ResetRevealsResponse reports how many days were closed.
type ResetRevealsResponse struct {
	Reset int64 `json:"reset" example:"3"`
}

// RevealDay godoc
// @ID          revealDay
// @Summary     Open a calendar day
// @Description Returns the day's aggregated answers, the winner and a summary. Opening a day twice is harmless.
// @Tags        Reveals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       day   path      int                      true   "Day (category id)"  minimum(1) maximum(9)
// @Param       body  body      handlers.RevealRequest   false  "Options"
// @Success     200   {object}  services.RevealResult
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     401   {object}  handlers.ErrorResponse
// @Failure     403   {object}  handlers.ErrorResponse  "Test mode disabled"
// @Failure     404   {object}  handlers.ErrorResponse  "No category for this day"
// @Failure     409   {object}  handlers.ErrorResponse  "Day still locked"
// @Failure     500   {object}  handlers.ErrorResponse
// @Router      /reveals/{day} [post]
func (h *Handlers) RevealDay(c *gin.Context) {
	day, valid := utils.PositiveID(c.Param("day"))
	if !valid || !advent.ValidDay(day) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("day must be between 1 and %d", advent.Days))
		return
	}
	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return
	}

	res, err := h.rev.Reveal(c.Request.Context(), principal(c).ID, day, req.TestMode)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// ResetReveals godoc
// @ID          resetReveals
// @Summary     Close every opened day (test mode)
// @Tags        Reveals
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.ResetRevealsResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Test mode disabled"
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /reveals [delete]
func (h *Handlers) ResetReveals(c *gin.Context) {
	n, err := h.rev.ResetReveals(c.Request.Context(), principal(c).ID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ResetRevealsResponse{Reset: n})
}
