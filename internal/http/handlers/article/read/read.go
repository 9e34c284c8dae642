// Package read отдаёт одну статью по ID.
//
// Опубликованная статья доступна всем, и её счётчик просмотров
// увеличивается при каждом чтении. Черновик виден только владельцу
// или администратору: личность берётся из cookie, если она есть,
// и просмотр черновика счётчик не трогает.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/cookies"
	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// Service описывает интерфейс чтения статьи.
type Service interface {
	ReadPublished(ctx context.Context, id string) (*models.Article, error)
	Read(ctx context.Context, id string) (*models.Article, error)
}

// Access проверяет токен и решает, допускается ли личность к черновику.
type Access interface {
	Verify(rawToken string) (*models.Identity, error)
	Authorize(ctx context.Context, identity *models.Identity, tier authservice.Tier, ownerEmail string) error
}

// Handler отдаёт одну статью. Маршрут публичный, поэтому личность
// разрешается опционально, прямо из cookie.
type Handler struct {
	log     *slog.Logger
	service Service
	access  Access
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, access Access) *Handler {
	return &Handler{
		log:     log,
		service: service,
		access:  access,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	article, err := h.service.ReadPublished(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		// Возможно, это черновик: владелец и администратор видят его
		// по прямой ссылке, счётчик просмотров при этом не меняется.
		if draft := h.readDraft(r, id); draft != nil {
			render.JSON(w, r, response.OKWithData(draft))
			return
		}
		log.Error("article not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if errors.Is(err, storage.ErrInvalidID) {
		log.Error("article not found", slog.String("id", id))
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

	render.JSON(w, r, response.OKWithData(article))
}

// readDraft возвращает черновик, если в запросе есть действительный
// токен владельца статьи или администратора, иначе nil.
func (h *Handler) readDraft(r *http.Request, id string) *models.Article {
	cookie, err := r.Cookie(cookies.TokenCookie)
	if err != nil {
		return nil
	}
	identity, err := h.access.Verify(cookie.Value)
	if err != nil {
		return nil
	}
	article, err := h.service.Read(r.Context(), id)
	if err != nil {
		return nil
	}
	if err := h.access.Authorize(r.Context(), identity, authservice.TierOwnerOrAdmin, article.Author.Email); err != nil {
		return nil
	}
	return article
}
