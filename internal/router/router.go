package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"portfolio-tracker/internal/auth"
	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	accountHandler *handler.AccountHandler,
	portfolioHandler *handler.PortfolioHandler,
	summaryHandler *handler.SummaryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/users/me", userHandler.Me)

	// Account routes
	secured.POST("/accounts", accountHandler.CreateAccount)
	secured.GET("/accounts", accountHandler.ListAccounts)
	secured.GET("/accounts/:id", accountHandler.GetAccount)
	secured.PUT("/accounts/:id", accountHandler.UpdateAccount)
	secured.DELETE("/accounts/:id", accountHandler.DeleteAccount)

	// Entry routes. Fixed segments are registered before the :id routes on purpose.
	secured.POST("/portfolio", portfolioHandler.AddEntry)
	secured.GET("/portfolio", portfolioHandler.ListEntries)
	secured.GET("/portfolio/combined", summaryHandler.CombinedEntries)
	secured.GET("/portfolio/summary", summaryHandler.SummaryByType)
	secured.GET("/portfolio/summary/by-account", summaryHandler.SummaryByAccount)
	secured.GET("/portfolio/total", summaryHandler.TotalValue)
	secured.GET("/portfolio/distribution/:classifier", summaryHandler.Distribution)
	secured.GET("/portfolio/currency/:currency", portfolioHandler.FilterByCurrency)
	secured.GET("/portfolio/country/:country", portfolioHandler.FilterByCountry)
	secured.GET("/portfolio/source/:source", portfolioHandler.FilterBySource)
	secured.GET("/portfolio/type/:type", portfolioHandler.FilterByType)
	secured.GET("/portfolio/export/csv", portfolioHandler.ExportCSV)
	secured.GET("/portfolio/:id", portfolioHandler.GetEntry)
	secured.PUT("/portfolio/:id", portfolioHandler.UpdateEntry)
	secured.DELETE("/portfolio/:id", portfolioHandler.DeleteEntry)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
