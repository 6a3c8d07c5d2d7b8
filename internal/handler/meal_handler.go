package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailydiet/internal/model"
	"dailydiet/internal/service"
	"dailydiet/internal/session"
	"dailydiet/internal/validation"
)

// MealHandler handles meal endpoints. Every route except creation runs
// behind the session gate.
type MealHandler struct {
	mealService  service.MealService
	cookieSecure bool
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(mealService service.MealService, cookieSecure bool) *MealHandler {
	return &MealHandler{mealService: mealService, cookieSecure: cookieSecure}
}

// MealRequest represents a full set of meal fields.
type MealRequest struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Date        *string `json:"date" validate:"required,iso8601" example:"2024-05-01T12:30:00.000Z"`
	IsOnDiet    *bool   `json:"isOnDiet" validate:"required"`
}

func (r MealRequest) input() service.MealInput {
	at, _ := validation.ParseTime(*r.Date)
	return service.MealInput{
		Name:        *r.Name,
		Description: *r.Description,
		DateTime:    at,
		IsOnDiet:    *r.IsOnDiet,
	}
}

// MealPatchRequest represents a partial meal update; absent keys are left untouched.
type MealPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date" validate:"omitnil,iso8601" example:"2024-05-01T12:30:00.000Z"`
	IsOnDiet    *bool   `json:"isOnDiet"`
}

func (r MealPatchRequest) patch() service.MealPatch {
	p := service.MealPatch{
		Name:        r.Name,
		Description: r.Description,
		IsOnDiet:    r.IsOnDiet,
	}
	if r.Date != nil {
		at, _ := validation.ParseTime(*r.Date)
		p.DateTime = &at
	}
	return p
}

// MealCreatedResponse represents a created meal.
type MealCreatedResponse struct {
	Message string      `json:"message"`
	Results *model.Meal `json:"results"`
}

// MealResponse represents a single meal.
type MealResponse struct {
	Message string      `json:"message"`
	Result  *model.Meal `json:"result"`
}

// MealListResponse represents a session's meals.
type MealListResponse struct {
	Message string       `json:"message"`
	Result  []model.Meal `json:"result"`
}

// Create godoc
// @Summary Record a meal
// @Description Without a sessionId cookie a new anonymous session is started and returned as a cookie.
// @Tags meals
// @Accept json
// @Produce json
// @Param request body MealRequest true "Meal"
// @Success 201 {object} MealCreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meal [post]
func (h *MealHandler) Create(c echo.Context) error {
	var req MealRequest
	if err := validation.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	token, fresh := session.Resolve(c)
	meal, err := h.mealService.Create(c.Request().Context(), token, req.input())
	if err != nil {
		return respondError(c, err)
	}

	if fresh {
		session.SetCookie(c, token, h.cookieSecure)
	}
	return c.JSON(http.StatusCreated, MealCreatedResponse{
		Message: "Meal created successfully",
		Results: meal,
	})
}

// List godoc
// @Summary List the session's meals
// @Tags meals
// @Produce json
// @Security SessionCookie
// @Success 200 {object} MealListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals [get]
func (h *MealHandler) List(c echo.Context) error {
	meals, err := h.mealService.List(c.Request().Context(), session.FromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MealListResponse{
		Message: "Meals retrieved successfully",
		Result:  meals,
	})
}

// Get godoc
// @Summary Get a meal
// @Tags meals
// @Produce json
// @Security SessionCookie
// @Param id path string true "Meal ID"
// @Success 200 {object} MealResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meal/{id} [get]
func (h *MealHandler) Get(c echo.Context) error {
	id, err := mealID(c)
	if err != nil {
		return respondError(c, err)
	}

	meal, err := h.mealService.Get(c.Request().Context(), session.FromContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MealResponse{
		Message: "Meal retrieved successfully",
		Result:  meal,
	})
}

// Replace godoc
// @Summary Replace a meal
// @Tags meals
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Meal ID"
// @Param request body MealRequest true "Meal"
// @Success 200 {object} MealResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meal/{id} [put]
func (h *MealHandler) Replace(c echo.Context) error {
	id, err := mealID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req MealRequest
	if err := validation.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	meal, err := h.mealService.Replace(c.Request().Context(), session.FromContext(c), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MealResponse{
		Message: "Meal updated successfully",
		Result:  meal,
	})
}

// Patch godoc
// @Summary Update some fields of a meal
// @Tags meals
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Meal ID"
// @Param request body MealPatchRequest true "Fields to change"
// @Success 200 {object} MealResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meal/{id} [patch]
func (h *MealHandler) Patch(c echo.Context) error {
	id, err := mealID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req MealPatchRequest
	if err := validation.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	meal, err := h.mealService.Patch(c.Request().Context(), session.FromContext(c), id, req.patch())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MealResponse{
		Message: "Meal updated successfully",
		Result:  meal,
	})
}

// Delete godoc
// @Summary Delete a meal
// @Tags meals
// @Produce json
// @Security SessionCookie
// @Param id path string true "Meal ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meal/{id} [delete]
func (h *MealHandler) Delete(c echo.Context) error {
	id, err := mealID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.mealService.Delete(c.Request().Context(), session.FromContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Meal deleted successfully"})
}
