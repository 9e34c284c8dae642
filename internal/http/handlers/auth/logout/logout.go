// Package logout реализует выход: cookie с токеном немедленно очищается.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mnewsapp/mnews-server/internal/http/cookies"
	"github.com/mnewsapp/mnews-server/internal/http/response"
)

// Handler управляет HTTP-запросами на выход.
type Handler struct {
	log  *slog.Logger
	prod bool
}

// New создает новый Handler.
func New(log *slog.Logger, prod bool) *Handler {
	return &Handler{
		log:  log,
		prod: prod,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	http.SetCookie(w, cookies.Clear(h.prod))
	log.Info("cleared token cookie")
	render.JSON(w, r, response.OKWithData(map[string]any{"success": true}))
}
