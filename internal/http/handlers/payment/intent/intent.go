// Package intent реализует создание платёжного намерения у провайдера.
//
// Handler принимает сумму и валюту, передаёт провайдеру ключ
// идемпотентности из заголовка Idempotency-Key (чтобы повтор запроса
// клиентом не привёл ко второму списанию) и возвращает client secret.
package intent

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

// Service описывает интерфейс бизнес-логики платёжных намерений.
type Service interface {
	CreateIntent(ctx context.Context, req models.DummyPaymentIntent, idempotencyKey string) (string, error)
}

// Handler управляет HTTP-запросами на создание платёжных намерений.
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

// ServeHTTP godoc
// @Summary Создать платёжное намерение
// @Description Создает платёжное намерение у провайдера и возвращает client secret для подтверждения оплаты на клиенте.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body models.DummyPaymentIntent true "Сумма и валюта"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка провайдера"
// @Router /create-payment-intent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intent"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPaymentIntent
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

	clientSecret, err := h.service.CreateIntent(r.Context(), req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create payment intent"))
		return
	}

	log.Info("created payment intent")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"clientSecret": clientSecret,
	}))
}
