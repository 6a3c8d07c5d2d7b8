package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dailydiet/internal/handler"
	"dailydiet/internal/session"
	"dailydiet/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	userHandler *handler.UserHandler,
	mealHandler *handler.MealHandler,
	metricsHandler *handler.MetricsHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validation.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/signup", userHandler.SignUp)
	e.POST("/signin", userHandler.SignIn)
	e.POST("/meal", mealHandler.Create)

	// Session-scoped routes (require a sessionId cookie)
	scoped := e.Group("", session.Gate())

	scoped.GET("/meals", mealHandler.List)
	scoped.GET("/meal/:id", mealHandler.Get)
	scoped.PUT("/meal/:id", mealHandler.Replace)
	scoped.PATCH("/meal/:id", mealHandler.Patch)
	scoped.DELETE("/meal/:id", mealHandler.Delete)

	scoped.GET("/metrics", metricsHandler.Get)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
