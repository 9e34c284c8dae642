// Package middlewarectx содержит HTTP middleware аутентификации и
// авторизации. Токен извлекается из http-only cookie, проверяется
// политикой доступа, и проверенная личность кладётся в контекст
// запроса для обработчиков.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/cookies"
	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey ключ проверенной личности в контексте.
const IdentityKey Key = "identity"

// Identity возвращает проверенную личность из контекста запроса.
func Identity(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*models.Identity)
	return identity, ok && identity != nil
}

// Verifier проверяет строку токена и возвращает личность.
type Verifier interface {
	Verify(rawToken string) (*models.Identity, error)
}

// JWTMiddleware возвращает middleware, которое требует действительный
// токен в cookie. При отсутствии или непригодности токена — 401.
func JWTMiddleware(verifier Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookies.TokenCookie)
			if err != nil {
				log.Error("missing token cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized access"))
				return
			}

			identity, err := verifier.Verify(cookie.Value)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized access"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
