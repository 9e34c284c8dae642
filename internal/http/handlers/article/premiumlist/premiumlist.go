package premiumlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

// Service описывает интерфейс бизнес-логики списка статей.
type Service interface {
	List(ctx context.Context, filter models.ArticleFilter, p models.Pagination) ([]*models.Article, int64, error)
}

// Handler отдаёт страницу премиум-статей. Доступ ограничен
// middleware премиум-подписки; сам обработчик только добавляет
// предикат isPremium к выборке опубликованных статей.
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
	const op = "handlers.article.premiumlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := models.ArticleFilter{PremiumOnly: true}
	items, total, err := h.service.List(r.Context(), filter, models.Pagination{Page: page, Limit: limit})
	if err != nil {
		log.Error("failed to list premium articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list premium articles"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"total": total,
		"items": items,
	}))
}
