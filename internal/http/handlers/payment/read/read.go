// Package read отдаёт запись об оплате. Доступна плательщику или
// администратору; сравнение идёт с email из проверенного токена.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/middlewarectx"
	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// Service описывает интерфейс бизнес-логики чтения оплаты.
type Service interface {
	ByEmail(ctx context.Context, email string) (*models.Payment, error)
}

// Policy решает, допускается ли личность к операции.
type Policy interface {
	Authorize(ctx context.Context, identity *models.Identity, tier authservice.Tier, ownerEmail string) error
}

// Handler управляет HTTP-запросами на чтение оплат.
type Handler struct {
	log     *slog.Logger
	service Service
	policy  Policy
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, policy Policy) *Handler {
	return &Handler{
		log:     log,
		service: service,
		policy:  policy,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		log.Error("identity missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized access"))
		return
	}

	email := chi.URLParam(r, "email")
	if err := h.policy.Authorize(r.Context(), identity, authservice.TierOwnerOrAdmin, email); err != nil {
		log.Error("access denied", sl.Err(err))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}

	payment, err := h.service.ByEmail(r.Context(), email)
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("payment not found"))
		return
	}
	if err != nil {
		log.Error("failed to read payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read payment"))
		return
	}

	render.JSON(w, r, response.OKWithData(payment))
}
