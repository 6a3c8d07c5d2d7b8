package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailydiet/internal/service"
	"dailydiet/internal/session"
	"dailydiet/internal/validation"
)

// UserHandler handles signup and signin.
type UserHandler struct {
	userService  service.UserService
	cookieSecure bool
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, cookieSecure bool) *UserHandler {
	return &UserHandler{userService: userService, cookieSecure: cookieSecure}
}

// CredentialsRequest represents a signup or signin request.
type CredentialsRequest struct {
	Name     *string `json:"name" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SignUpResponse represents a successful signup.
type SignUpResponse struct {
	Message string       `json:"message"`
	Results UserResponse `json:"results"`
}

// SignUp godoc
// @Summary Register a new user
// @Description Uses the current sessionId cookie as the new user's id when present, so meals recorded anonymously under it stay with the user.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Name and password"
// @Success 201 {object} SignUpResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	var req CredentialsRequest
	if err := validation.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	current := session.FromRequest(c)
	user, err := h.userService.Register(c.Request().Context(), *req.Name, *req.Password, current)
	if err != nil {
		return respondError(c, err)
	}

	if current == "" {
		session.SetCookie(c, user.ID, h.cookieSecure)
	}

	return c.JSON(http.StatusCreated, SignUpResponse{
		Message: "User created successfully",
		Results: UserResponse{ID: user.ID, Name: user.Name},
	})
}

// SignIn godoc
// @Summary Sign in
// @Description Replaces the caller's sessionId cookie with the user's id.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Name and password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signin [post]
func (h *UserHandler) SignIn(c echo.Context) error {
	var req CredentialsRequest
	if err := validation.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Authenticate(c.Request().Context(), *req.Name, *req.Password)
	if err != nil {
		return respondError(c, err)
	}

	session.SetCookie(c, user.ID, h.cookieSecure)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Login successful"})
}
