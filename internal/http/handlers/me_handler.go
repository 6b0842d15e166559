// Profile HTTP handlers.
//
//   - GET /me   (the caller's profile)
//   - PUT /me   (rename)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/gift-calendar/internal/domain"
	"github.com/tbourn/gift-calendar/internal/services"
)

// ProfileResponse is the caller's user row plus the name shown to friends.
type ProfileResponse struct {
	*domain.User
	DisplayName string `json:"display_name" example:"Ana"`
}

// UpdateProfileRequest renames the caller.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required" example:"Ana"`
}

func profile(u *domain.User) ProfileResponse {
	return ProfileResponse{User: u, DisplayName: services.DisplayName(u.Name, &u.Email)}
}

// GetMe godoc
// @ID          getMe
// @Summary     Current user
// @Tags        Profile
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /me [get]
func (h *Handlers) GetMe(c *gin.Context) {
	u, err := h.users.Profile(c.Request.Context(), principal(c).ID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, profile(u))
}

// UpdateMe godoc
// @ID          updateMe
// @Summary     Rename the current user
// @Tags        Profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.UpdateProfileRequest  true  "New name"
// @Success     200   {object}  handlers.ProfileResponse
// @Failure     400   {object}  handlers.ErrorResponse
// @Failure     401   {object}  handlers.ErrorResponse
// @Failure     404   {object}  handlers.ErrorResponse
// @Failure     500   {object}  handlers.ErrorResponse
// @Router      /me [put]
func (h *Handlers) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	u, err := h.users.UpdateName(c.Request.Context(), principal(c).ID, req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, profile(u))
}
