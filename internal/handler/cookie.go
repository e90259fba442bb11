package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	Secure bool
}

// setToken stores token in an HTTP-only session cookie (no Expires, no Max-Age).
func (cc CookieConfig) setToken(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (cc CookieConfig) clearToken(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// tokenFromCookie returns the session token or "" when the cookie is absent.
func tokenFromCookie(c echo.Context) string {
	cookie, err := c.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
