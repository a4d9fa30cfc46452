package handler

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"portfolio-tracker/internal/auth"
	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/service"
)

// currentUser resolves the authenticated user from the JWT the middleware
// attached to the request. A token whose subject no longer exists is an
// authentication failure, not a not-found.
func currentUser(c echo.Context, identity service.IdentityService) (*model.User, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, errs.ErrAuthentication
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, errs.ErrAuthentication
	}

	user, err := identity.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrAuthentication
		}
		return nil, err
	}
	return user, nil
}

// respondError renders any domain error through the shared error mapping.
func respondError(err error) error {
	httpErr := errs.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
