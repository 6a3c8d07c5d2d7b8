// Package session manages the opaque session token carried in the sessionId
// cookie. The token partitions meal ownership and may or may not belong to a
// registered user.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dailydiet/internal/errors"
)

const (
	// CookieName is the cookie that carries the session token.
	CookieName = "sessionId"
	// Expiry is how long the browser keeps the session cookie.
	Expiry = 7 * 24 * time.Hour

	contextKey = "sessionID"
)

// NewToken generates a fresh opaque session token.
func NewToken() string {
	return uuid.New().String()
}

// Cookie builds the session cookie for token.
func Cookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(Expiry / time.Second),
		Expires:  time.Now().Add(Expiry),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetCookie instructs the client to store token as its session.
func SetCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(Cookie(token, secure))
}

// FromRequest returns the session token carried by the request, if any.
func FromRequest(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Resolve returns the request's session token, or a newly generated one with
// fresh set when the request carries none.
func Resolve(c echo.Context) (token string, fresh bool) {
	if token = FromRequest(c); token != "" {
		return token, false
	}
	return NewToken(), true
}

// FromContext returns the token stored by Gate.
func FromContext(c echo.Context) string {
	token, _ := c.Get(contextKey).(string)
	return token
}

// Gate requires a non-empty session cookie. It does not check that the token
// belongs to a registered user: anonymous sessions are valid.
func Gate() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "cookie:" + CookieName,
		Validator: func(token string, c echo.Context) (bool, error) {
			if token == "" {
				return false, nil
			}
			c.Set(contextKey, token)
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrUnauthorized.Error())
		},
	})
}
