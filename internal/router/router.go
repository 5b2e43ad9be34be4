package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fintrack/internal/auth"
	errs "fintrack/internal/errors"
	"fintrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	tokens auth.TokenService,
	authHandler *handler.AuthHandler,
	budgetHandler *handler.BudgetHandler,
	expenseHandler *handler.ExpenseHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Protected routes all funnel through the gate
	secured := api.Group("", Gate(tokens))

	secured.GET("/budget", budgetHandler.Get)
	secured.POST("/budget", budgetHandler.Create)
	secured.POST("/budget/item", budgetHandler.AddItem)
	secured.GET("/budget/summary", budgetHandler.Summary)
	secured.PUT("/budget/:itemId", budgetHandler.UpdateItem)
	secured.DELETE("/budget/:itemId", budgetHandler.DeleteItem)

	secured.GET("/expenses", expenseHandler.List)
	secured.POST("/expenses", expenseHandler.Create)
	secured.PUT("/expenses/:id", expenseHandler.Update)
	secured.DELETE("/expenses/:id", expenseHandler.Delete)
}

// Gate is the per-request authorization check. It reads the raw token from the
// Authorization header (no Bearer scheme), fails closed before any handler
// runs, and on success injects the verified identity into the request context.
// Missing token is a 401; a present but unverifiable token is a 400.
func Gate(tokens auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ContextKey:  handler.IdentityContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return tokens.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrorResponse{
					Error: "no token provided",
					Code:  "NO_TOKEN",
				})
			}
			return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
				Error: "invalid token",
				Code:  "INVALID_TOKEN",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
