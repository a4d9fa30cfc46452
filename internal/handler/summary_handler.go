package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio-tracker/internal/service"
)

// SummaryHandler serves the aggregated portfolio views.
type SummaryHandler struct {
	summaryService service.SummaryService
	identity       service.IdentityService
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(summaryService service.SummaryService, identity service.IdentityService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, identity: identity}
}

// SummaryByType godoc
// @Summary Sum of amounts per entry type
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /portfolio/summary [get]
func (h *SummaryHandler) SummaryByType(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	summary, err := h.summaryService.SummaryByType(c.Request().Context(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// SummaryByAccount godoc
// @Summary Sum of amounts per entry type within each account
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]map[string]string
// @Router /portfolio/summary/by-account [get]
func (h *SummaryHandler) SummaryByAccount(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	summary, err := h.summaryService.SummaryByAccount(c.Request().Context(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// TotalValue godoc
// @Summary Sum of all entry amounts
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /portfolio/total [get]
func (h *SummaryHandler) TotalValue(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	total, err := h.summaryService.TotalValue(c.Request().Context(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total})
}

// Distribution godoc
// @Summary Sum of amounts grouped by a classifier
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Param classifier path string true "Classifier (currency, country, source, type, account)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /portfolio/distribution/{classifier} [get]
func (h *SummaryHandler) Distribution(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	distribution, err := h.summaryService.Distribution(c.Request().Context(), service.Classifier(c.Param("classifier")), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, distribution)
}

// CombinedEntries godoc
// @Summary List entries with same-key holdings merged
// @Tags summary
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PortfolioEntry
// @Router /portfolio/combined [get]
func (h *SummaryHandler) CombinedEntries(c echo.Context) error {
	user, err := currentUser(c, h.identity)
	if err != nil {
		return respondError(err)
	}
	entries, err := h.summaryService.CombinedEntries(c.Request().Context(), user)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
