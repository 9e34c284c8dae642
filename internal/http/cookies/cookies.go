// Package cookies собирает http-only cookie с токеном аутентификации.
// Токен передаётся только в cookie с именем "token", заголовки не используются.
package cookies

import (
	"net/http"
	"time"
)

// TokenCookie имя cookie с JWT.
const TokenCookie = "token"

// New возвращает cookie с токеном. В локальном окружении SameSite=Strict;
// на публичном origin фронтенд живёт на другом домене, поэтому
// SameSite=None вместе с обязательным Secure.
func New(token string, ttl time.Duration, prod bool) *http.Cookie {
	c := &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   prod,
		SameSite: http.SameSiteStrictMode,
	}
	if prod {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

// Clear возвращает cookie, немедленно удаляющую токен у клиента.
func Clear(prod bool) *http.Cookie {
	c := New("", 0, prod)
	c.MaxAge = -1
	return c
}
