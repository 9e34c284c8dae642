package list

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

// Handler отдаёт публичный список опубликованных статей.
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

// ServeHTTP godoc
// @Summary Список опубликованных статей
// @Description Возвращает страницу опубликованных статей. Фильтры search, publisher и tag сужают выборку одновременно.
// @Tags Articles
// @Produce json
// @Param search query string false "Подстрока заголовка"
// @Param publisher query string false "Подстрока имени издателя"
// @Param tag query string false "Точное имя тега"
// @Param page query int false "Номер страницы, с нуля"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Ошибка выборки"
// @Router /articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Нечисловые page и limit трактуются как ноль; нулевой limit
	// заменяется размером страницы по умолчанию.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := models.ArticleFilter{
		Search:    r.URL.Query().Get("search"),
		Publisher: r.URL.Query().Get("publisher"),
		Tag:       r.URL.Query().Get("tag"),
	}

	items, total, err := h.service.List(r.Context(), filter, models.Pagination{Page: page, Limit: limit})
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list articles"))
		return
	}

	log.Info("listed articles", slog.Int("count", len(items)), slog.Int64("total", total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"total": total,
		"items": items,
	}))
}
