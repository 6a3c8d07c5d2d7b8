package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dailydiet/internal/errors"
)

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError translates a domain error into an HTTP error. Unexpected
// errors are logged and reported without detail.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.Code == "INTERNAL_ERROR" {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// mealID parses the :id path parameter. An id that cannot name a meal is
// reported the same way as a meal that does not exist.
func mealID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrMealNotFound
	}
	return id, nil
}
