package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	CtxCartKey        = "cart_key" // string
	cartSessionCookie = "cart_session"
)

// CartSession はカートのセッションキーをcookieで維持する。
// 無ければ新しく発行してcookieに書く（リロードしてもカートが残る）。
func CartSession(newKey func() string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := ""
			if ck, err := c.Cookie(cartSessionCookie); err == nil && ck.Value != "" {
				key = ck.Value
			}

			if key == "" {
				key = newKey()
				c.SetCookie(&http.Cookie{
					Name:     cartSessionCookie,
					Value:    key,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(30 * 24 * time.Hour),
				})
			}

			c.Set(CtxCartKey, key)
			return next(c)
		}
	}
}
