package mine

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/middlewarectx"
	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

// Service описывает интерфейс бизнес-логики списка статей.
type Service interface {
	List(ctx context.Context, filter models.ArticleFilter, p models.Pagination) ([]*models.Article, int64, error)
}

// Handler отдаёт статьи текущего автора, включая черновики.
// Email автора берётся только из проверенной личности в контексте.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.mine"
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

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := models.ArticleFilter{AuthorEmail: identity.Email}
	items, total, err := h.service.List(r.Context(), filter, models.Pagination{Page: page, Limit: limit})
	if err != nil {
		log.Error("failed to list own articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list articles"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"total": total,
		"items": items,
	}))
}
