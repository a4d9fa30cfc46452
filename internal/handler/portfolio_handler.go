package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/service"
)

// PortfolioHandler handles portfolio entry endpoints.
type PortfolioHandler struct {
	entryService  service.EntryService
	exportService service.ExportService
	identity      service.IdentityService
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(entryService service.EntryService, exportService service.ExportService, identity service.IdentityService) *PortfolioHandler {
	return &PortfolioHandler{entryService: entryService, exportService: exportService, identity: identity}
}

// EntryRequest carries the entry fields accepted on create and update.
type EntryRequest struct {
	AccountID uuid.UUID       `json:"account_id"`
	Type      model.EntryType `json:"type"`
	Source    string          `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Country   string          `json:"country"`
	Notes     string          `json:"notes"`
	DateAdded *time.Time      `json:"date_added"`
}

func (r *EntryRequest) toModel() *model.PortfolioEntry {
	entry := &model.PortfolioEntry{
		AccountID: r.AccountID,
		Type:      r.Type,
		Source:    r.Source,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Country:   r.Country,
		Notes:     r.Notes,
	}
	if r.DateAdded != nil {
		entry.DateAdded = *r.DateAdded
	}
	return entry
}

// accountScope parses the optional account_id query parameter.
func accountScope(c echo.Context) (*uuid.UUID, error) {
	raw := c.QueryParam("account_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid account_id", Code: "INVALID_UUID",
		})
	}
	return &id, nil
}

func (h *PortfolioHandler) bindEntry(c echo.Context) (*EntryRequest, error) {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid request body", Code: "INVALID_BODY",
		})
	}
	return &req, nil
}

// AddEntry godoc
// @Summary Add a portfolio entry to one of the user's accounts
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body EntryRequest true "Entry payload"
// @Success 201 {object} model.PortfolioEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /portfolio [post]
func (h *PortfolioHandler) AddEntry(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	req, err := h.bindEntry(c)
	if err != nil {
		return err
	}

	entry, err := h.entryService.AddEntry(c.Request().Context(), req.toModel(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// UpdateEntry godoc
// @Summary Update a portfolio entry
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param entry body EntryRequest true "Entry payload"
// @Success 200 {object} model.PortfolioEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /portfolio/{id} [put]
func (h *PortfolioHandler) UpdateEntry(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := h.bindEntry(c)
	if err != nil {
		return err
	}

	entry, err := h.entryService.UpdateEntry(c.Request().Context(), id, req.toModel(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteEntry godoc
// @Summary Delete a portfolio entry
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /portfolio/{id} [delete]
func (h *PortfolioHandler) DeleteEntry(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.entryService.DeleteEntry(c.Request().Context(), id, user); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetEntry godoc
// @Summary Get one portfolio entry
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} model.PortfolioEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /portfolio/{id} [get]
func (h *PortfolioHandler) GetEntry(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	entry, err := h.entryService.GetEntryByID(c.Request().Context(), id, user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// ListEntries godoc
// @Summary List portfolio entries, optionally restricted to one account
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param account_id query string false "Account ID"
// @Success 200 {array} model.PortfolioEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) ListEntries(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	scope, err := accountScope(c)
	if err != nil {
		return err
	}

	var entries []model.PortfolioEntry
	if scope != nil {
		entries, err = h.entryService.GetEntriesByAccount(c.Request().Context(), *scope, user)
	} else {
		entries, err = h.entryService.GetAllEntries(c.Request().Context(), user)
	}
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// FilterByCurrency godoc
// @Summary List entries with an exact currency match
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param currency path string true "Currency code"
// @Param account_id query string false "Account ID"
// @Param combined query bool false "Merge matching holdings"
// @Success 200 {array} model.PortfolioEntry
// @Router /portfolio/currency/{currency} [get]
func (h *PortfolioHandler) FilterByCurrency(c echo.Context) error {
	return h.filtered(c, func(c echo.Context, scope *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
		return h.entryService.GetEntriesByCurrency(c.Request().Context(), c.Param("currency"), scope, user)
	})
}

// FilterByCountry godoc
// @Summary List entries with an exact country match
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param country path string true "Country"
// @Param account_id query string false "Account ID"
// @Param combined query bool false "Merge matching holdings"
// @Success 200 {array} model.PortfolioEntry
// @Router /portfolio/country/{country} [get]
func (h *PortfolioHandler) FilterByCountry(c echo.Context) error {
	return h.filtered(c, func(c echo.Context, scope *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
		return h.entryService.GetEntriesByCountry(c.Request().Context(), c.Param("country"), scope, user)
	})
}

// FilterBySource godoc
// @Summary List entries with an exact source match
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param source path string true "Source label"
// @Param account_id query string false "Account ID"
// @Param combined query bool false "Merge matching holdings"
// @Success 200 {array} model.PortfolioEntry
// @Router /portfolio/source/{source} [get]
func (h *PortfolioHandler) FilterBySource(c echo.Context) error {
	return h.filtered(c, func(c echo.Context, scope *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
		return h.entryService.GetEntriesBySource(c.Request().Context(), c.Param("source"), scope, user)
	})
}

// FilterByType godoc
// @Summary List entries of one entry type
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param type path string true "Entry type"
// @Param account_id query string false "Account ID"
// @Param combined query bool false "Merge matching holdings"
// @Success 200 {array} model.PortfolioEntry
// @Failure 400 {object} errors.ErrorResponse
// @Router /portfolio/type/{type} [get]
func (h *PortfolioHandler) FilterByType(c echo.Context) error {
	return h.filtered(c, func(c echo.Context, scope *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
		return h.entryService.GetEntriesByType(c.Request().Context(), model.EntryType(c.Param("type")), scope, user)
	})
}

func (h *PortfolioHandler) filtered(c echo.Context, fn func(echo.Context, *uuid.UUID, *model.User) ([]model.PortfolioEntry, error)) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	scope, err := accountScope(c)
	if err != nil {
		return err
	}

	entries, err := fn(c, scope, user)
	if err != nil {
		return respondError(err)
	}
	if c.QueryParam("combined") == "true" {
		entries = service.Combine(entries)
	}
	return c.JSON(http.StatusOK, entries)
}

// ExportCSV godoc
// @Summary Download all entries as CSV
// @Tags portfolio
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Router /portfolio/export/csv [get]
func (h *PortfolioHandler) ExportCSV(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}

	entries, err := h.entryService.GetAllEntries(c.Request().Context(), user)
	if err != nil {
		return respondError(err)
	}
	data, err := h.exportService.EntriesToCSV(entries)
	if err != nil {
		return respondError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="portfolio_entries.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
