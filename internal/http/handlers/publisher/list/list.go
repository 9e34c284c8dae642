// Package list отдаёт издателей вместе со статистикой публикаций:
// число опубликованных статей каждого издателя и его доля от общего
// количества.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

// Service описывает интерфейс бизнес-логики издателей.
type Service interface {
	List(ctx context.Context) ([]*models.Publisher, error)
	Stats(ctx context.Context) ([]*models.PublisherStat, error)
}

// Handler управляет HTTP-запросами на список издателей.
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
	const op = "handlers.publisher.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	publishers, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list publishers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list publishers"))
		return
	}
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to aggregate publisher stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to aggregate publisher stats"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"publishers": publishers,
		"stats":      stats,
	}))
}
