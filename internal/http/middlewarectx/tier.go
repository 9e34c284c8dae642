package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
)

// Policy решает, допускается ли личность к операции заданного уровня.
type Policy interface {
	Authorize(ctx context.Context, identity *models.Identity, tier authservice.Tier, ownerEmail string) error
}

// AdminMiddleware пропускает только пользователей с ролью admin.
// Роль разрешается по email проверенной личности через хранилище.
func AdminMiddleware(policy Policy, log *slog.Logger) func(http.Handler) http.Handler {
	return tierMiddleware(policy, log, authservice.TierAdmin, "admin access required")
}

// PremiumMiddleware пропускает только пользователей с активной
// премиум-подпиской.
func PremiumMiddleware(policy Policy, log *slog.Logger) func(http.Handler) http.Handler {
	return tierMiddleware(policy, log, authservice.TierPremium, "premium subscription required")
}

func tierMiddleware(policy Policy, log *slog.Logger, tier authservice.Tier, denyMsg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.tierMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			identity, ok := Identity(r.Context())
			if !ok {
				log.Error("identity missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized access"))
				return
			}

			if err := policy.Authorize(r.Context(), identity, tier, ""); err != nil {
				log.Error("access denied", sl.Err(err))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error(denyMsg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
