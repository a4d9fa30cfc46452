package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/service"
)

// AccountHandler handles portfolio account endpoints.
type AccountHandler struct {
	accountService service.AccountService
	identity       service.IdentityService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService, identity service.IdentityService) *AccountHandler {
	return &AccountHandler{accountService: accountService, identity: identity}
}

// AccountRequest carries the mutable account fields.
type AccountRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid id", Code: "INVALID_UUID",
		})
	}
	return id, nil
}

// CreateAccount godoc
// @Summary Create a portfolio account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body AccountRequest true "Account payload"
// @Success 201 {object} model.PortfolioAccount
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}

	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid request body", Code: "INVALID_BODY",
		})
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), req.Name, req.Relationship, user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, account)
}

// ListAccounts godoc
// @Summary List the user's portfolio accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PortfolioAccount
// @Failure 401 {object} errors.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}

	accounts, err := h.accountService.GetAllAccounts(c.Request().Context(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetAccount godoc
// @Summary Get one portfolio account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} model.PortfolioAccount
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.GetAccountByID(c.Request().Context(), id, user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateAccount godoc
// @Summary Update a portfolio account's name and relationship
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param account body AccountRequest true "Account payload"
// @Success 200 {object} model.PortfolioAccount
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid request body", Code: "INVALID_BODY",
		})
	}

	account, err := h.accountService.UpdateAccount(c.Request().Context(), id, req.Name, req.Relationship, user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteAccount godoc
// @Summary Delete a portfolio account and all its entries
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), id, user); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
