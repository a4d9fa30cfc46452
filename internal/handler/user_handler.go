package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio-tracker/internal/service"
)

// UserHandler exposes the resolved user profile.
type UserHandler struct {
	identity service.IdentityService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(identity service.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}
