package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/service"
)

// AuthHandler handles session endpoints. The OAuth handshake itself runs in
// the fronting collaborator; login receives already-verified provider claims.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest carries the provider-verified identity claims.
type LoginRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	ImageURL   string `json:"image_url"`
}

// LoginResponse returns the resolved user and session tokens.
type LoginResponse struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Login godoc
// @Summary Exchange provider-verified identity claims for a session
// @Tags auth
// @Accept json
// @Produce json
// @Param claims body LoginRequest true "Verified identity claims"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid request body", Code: "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: err.Error(), Code: "VALIDATION_ERROR",
		})
	}

	user, tokens, err := h.authService.Login(c.Request().Context(), req.ProviderID, req.Email, req.Name, req.ImageURL)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid request body", Code: "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: err.Error(), Code: "VALIDATION_ERROR",
		})
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrorResponse{
			Error: err.Error(), Code: "INVALID_REFRESH_TOKEN",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": accessToken})
}

// Logout godoc
// @Summary Invalidate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid request body", Code: "INVALID_BODY",
		})
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrorResponse{
			Error: err.Error(), Code: "INVALID_REFRESH_TOKEN",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "logged out"})
}
