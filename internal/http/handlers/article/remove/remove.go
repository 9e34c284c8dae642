// Package remove реализует HTTP-обработчик удаления статьи.
// Удаление доступно владельцу или администратору; сравнение идёт
// с email из проверенного токена.
package remove

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

// Service описывает интерфейс бизнес-логики удаления статьи.
type Service interface {
	Read(ctx context.Context, id string) (*models.Article, error)
	Remove(ctx context.Context, id string) (int64, error)
}

// Policy решает, допускается ли личность к операции.
type Policy interface {
	Authorize(ctx context.Context, identity *models.Identity, tier authservice.Tier, ownerEmail string) error
}

// Handler управляет HTTP-запросами на удаление статей.
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
	const op = "handlers.article.remove"
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

	id := chi.URLParam(r, "id")
	article, err := h.service.Read(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidID) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if err != nil {
		log.Error("failed to read article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read article"))
		return
	}

	if err := h.policy.Authorize(r.Context(), identity, authservice.TierOwnerOrAdmin, article.Author.Email); err != nil {
		log.Error("access denied", sl.Err(err))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}

	deleted, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to remove article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove article"))
		return
	}

	log.Info("removed article", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deletedCount": deleted,
	}))
}
