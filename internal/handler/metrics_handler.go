package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailydiet/internal/service"
	"dailydiet/internal/session"
)

// MetricsHandler handles the adherence metrics endpoint.
type MetricsHandler struct {
	metricsService service.MetricsService
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(metricsService service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// MetricsResponse represents a session's metrics.
type MetricsResponse struct {
	Message string           `json:"message"`
	Result  *service.Metrics `json:"result"`
}

// Get godoc
// @Summary Diet adherence metrics
// @Description Totals, on/off diet counts and the best run of consecutive on-diet meals in chronological order.
// @Tags metrics
// @Produce json
// @Security SessionCookie
// @Success 200 {object} MetricsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metrics [get]
func (h *MetricsHandler) Get(c echo.Context) error {
	metrics, err := h.metricsService.Compute(c.Request().Context(), session.FromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MetricsResponse{
		Message: "Metrics retrieved successfully",
		Result:  metrics,
	})
}
