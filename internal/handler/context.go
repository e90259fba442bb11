package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	"blogapp/internal/model"
)

// IdentityContextKey is where the authentication middleware stores the auth.Identity.
const IdentityContextKey = "identity"

// UserHandlerFunc is a handler for a protected route. user is never nil.
type UserHandlerFunc func(c echo.Context, user *model.User) error

// WithUser adapts h to echo, handing it the authenticated user. Requests that reach it
// without an authenticated identity are sent to the login page.
func WithUser(h UserHandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := c.Get(IdentityContextKey).(auth.Identity)
		if !ok || !identity.Authenticated() {
			return c.Redirect(http.StatusFound, "/login")
		}
		return h(c, identity.User)
	}
}
