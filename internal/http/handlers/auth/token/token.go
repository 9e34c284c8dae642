// Package token реализует выпуск JWT для клиента.
//
// Handler принимает email, выпускает подписанный токен со сроком
// жизни 24 часа и выставляет его в http-only cookie. В теле ответа
// токен не возвращается.
package token

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mnewsapp/mnews-server/internal/http/cookies"
	"github.com/mnewsapp/mnews-server/internal/http/response"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
)

// Request тело запроса на выпуск токена.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс выпуска токена.
type Service interface {
	IssueToken(email string) (string, error)
}

// Handler управляет HTTP-запросами на выпуск токена.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	tokenTTL time.Duration
	prod     bool
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, tokenTTL time.Duration, prod bool) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		tokenTTL: tokenTTL,
		prod:     prod,
	}
}

// ServeHTTP godoc
// @Summary Выпустить токен аутентификации
// @Description Выпускает JWT для указанного email и выставляет его в http-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка выпуска токена"
// @Router /auth/token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.token"
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

	token, err := h.service.IssueToken(req.Email)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue token"))
		return
	}

	http.SetCookie(w, cookies.New(token, h.tokenTTL, h.prod))
	log.Info("issued token", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{"success": true}))
}
