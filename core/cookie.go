package core

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

// SessionCookies binds an opaque token string to the session cookie. It has
// no knowledge of token contents.
//
// In production the frontend is served from a different origin, so the
// cookie is SameSite=None and requires Secure. In development it is
// SameSite=Strict without Secure so it works over plain HTTP.
type SessionCookies struct {
	secure   bool
	sameSite http.SameSite
	maxAge   time.Duration
}

func NewSessionCookies(production bool, maxAge time.Duration) *SessionCookies {
	c := &SessionCookies{
		sameSite: http.SameSiteStrictMode,
		maxAge:   maxAge,
	}
	if production {
		c.secure = true
		c.sameSite = http.SameSiteNoneMode
	}
	return c
}

func (c *SessionCookies) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	})
}

// Clear overwrites the session cookie with an empty value and a past
// expiry. It succeeds regardless of whether a session existed.
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	})
}
