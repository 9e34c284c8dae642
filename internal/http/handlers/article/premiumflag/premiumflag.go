// Package premiumflag реализует админское переключение признака
// premium у статьи.
package premiumflag

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// Request тело запроса. Указатель отличает явный false от
// отсутствующего поля.
type Request struct {
	IsPremium *bool `json:"isPremium" validate:"required"`
}

// Service описывает интерфейс бизнес-логики переключения premium.
type Service interface {
	SetPremium(ctx context.Context, id string, premium bool) (int64, error)
}

// Handler управляет HTTP-запросами на переключение premium у статьи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.premiumflag"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id := chi.URLParam(r, "id")
	matched, err := h.service.SetPremium(r.Context(), id, *req.IsPremium)
	if errors.Is(err, storage.ErrInvalidID) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if err != nil {
		log.Error("failed to set premium flag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not set premium flag"))
		return
	}
	if matched == 0 {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}

	log.Info("set premium flag", slog.String("id", id), slog.Bool("isPremium", *req.IsPremium))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"matchedCount": matched,
	}))
}
