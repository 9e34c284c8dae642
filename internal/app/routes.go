package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mnewsapp/mnews-server/internal/config"
	authlogout "github.com/mnewsapp/mnews-server/internal/http/handlers/auth/logout"
	authtoken "github.com/mnewsapp/mnews-server/internal/http/handlers/auth/token"

	articlecreate "github.com/mnewsapp/mnews-server/internal/http/handlers/article/create"
	articlelist "github.com/mnewsapp/mnews-server/internal/http/handlers/article/list"
	articlemine "github.com/mnewsapp/mnews-server/internal/http/handlers/article/mine"
	articlepremiumflag "github.com/mnewsapp/mnews-server/internal/http/handlers/article/premiumflag"
	articlepremiumlist "github.com/mnewsapp/mnews-server/internal/http/handlers/article/premiumlist"
	articleread "github.com/mnewsapp/mnews-server/internal/http/handlers/article/read"
	articleremove "github.com/mnewsapp/mnews-server/internal/http/handlers/article/remove"
	articlestatus "github.com/mnewsapp/mnews-server/internal/http/handlers/article/status"
	articleupdate "github.com/mnewsapp/mnews-server/internal/http/handlers/article/update"

	usercreate "github.com/mnewsapp/mnews-server/internal/http/handlers/user/create"
	userlist "github.com/mnewsapp/mnews-server/internal/http/handlers/user/list"
	userread "github.com/mnewsapp/mnews-server/internal/http/handlers/user/read"
	userrole "github.com/mnewsapp/mnews-server/internal/http/handlers/user/role"

	publishercreate "github.com/mnewsapp/mnews-server/internal/http/handlers/publisher/create"
	publisherlist "github.com/mnewsapp/mnews-server/internal/http/handlers/publisher/list"

	tagcreate "github.com/mnewsapp/mnews-server/internal/http/handlers/tag/create"
	taglist "github.com/mnewsapp/mnews-server/internal/http/handlers/tag/list"

	reviewcreate "github.com/mnewsapp/mnews-server/internal/http/handlers/review/create"
	reviewlist "github.com/mnewsapp/mnews-server/internal/http/handlers/review/list"

	paymentintent "github.com/mnewsapp/mnews-server/internal/http/handlers/payment/intent"
	paymentread "github.com/mnewsapp/mnews-server/internal/http/handlers/payment/read"
	paymentrecord "github.com/mnewsapp/mnews-server/internal/http/handlers/payment/record"

	"github.com/mnewsapp/mnews-server/internal/http/middlewarectx"
	articleservice "github.com/mnewsapp/mnews-server/internal/services/article"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
	paymentservice "github.com/mnewsapp/mnews-server/internal/services/payment"
	publisherservice "github.com/mnewsapp/mnews-server/internal/services/publisher"
	reviewservice "github.com/mnewsapp/mnews-server/internal/services/review"
	tagservice "github.com/mnewsapp/mnews-server/internal/services/tag"
	userservice "github.com/mnewsapp/mnews-server/internal/services/user"
)

// Deps собирает сервисы приложения для регистрации маршрутов.
type Deps struct {
	Auth       *authservice.Service
	Articles   *articleservice.Service
	Users      *userservice.Service
	Publishers *publisherservice.Service
	Tags       *tagservice.Service
	Reviews    *reviewservice.Service
	Payments   *paymentservice.Service
}

// RegisterRoutes регистрирует маршруты API, /metrics и /docs.
//
// Публичные маршруты не требуют токена. Остальные собраны в группу
// с JWT-middleware; внутри неё отдельные группы для премиум-доступа
// и администратора.
func RegisterRoutes(router *chi.Mux, logger *slog.Logger, cfg *config.Config, deps Deps) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	prod := cfg.IsProd()

	router.Route("/api", func(r chi.Router) {
		// Публичная часть.
		r.Post("/auth/token", authtoken.New(logger, deps.Auth, cfg.TokenTTL, prod).ServeHTTP)
		r.Post("/auth/logout", authlogout.New(logger, prod).ServeHTTP)
		r.Post("/users", usercreate.New(logger, deps.Users).ServeHTTP)
		r.Get("/articles", articlelist.New(logger, deps.Articles).ServeHTTP)
		r.Get("/articles/{id}", articleread.New(logger, deps.Articles, deps.Auth).ServeHTTP)
		r.Get("/publishers", publisherlist.New(logger, deps.Publishers).ServeHTTP)
		r.Get("/tags", taglist.New(logger, deps.Tags).ServeHTTP)
		r.Get("/reviews", reviewlist.New(logger, deps.Reviews).ServeHTTP)

		// Маршруты, требующие аутентификации.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/articles", articlecreate.New(logger, deps.Articles).ServeHTTP)
			r.Get("/articles/mine", articlemine.New(logger, deps.Articles).ServeHTTP)
			r.Put("/articles/{id}", articleupdate.New(logger, deps.Articles, deps.Auth).ServeHTTP)
			r.Delete("/articles/{id}", articleremove.New(logger, deps.Articles, deps.Auth).ServeHTTP)

			r.Get("/users/{email}", userread.New(logger, deps.Users, deps.Auth).ServeHTTP)

			r.Post("/reviews", reviewcreate.New(logger, deps.Reviews).ServeHTTP)

			r.Post("/payments", paymentrecord.New(logger, deps.Payments).ServeHTTP)
			r.Get("/payments/{email}", paymentread.New(logger, deps.Payments, deps.Auth).ServeHTTP)
			r.Post("/create-payment-intent", paymentintent.New(logger, deps.Payments).ServeHTTP)

			// Премиум-подписка.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.PremiumMiddleware(deps.Auth, logger))
				r.Get("/articles/premium", articlepremiumlist.New(logger, deps.Articles).ServeHTTP)
			})

			// Администратор.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(deps.Auth, logger))
				r.Get("/users", userlist.New(logger, deps.Users).ServeHTTP)
				r.Patch("/users/{email}/role", userrole.New(logger, deps.Users).ServeHTTP)
				r.Post("/publishers", publishercreate.New(logger, deps.Publishers).ServeHTTP)
				r.Post("/tags", tagcreate.New(logger, deps.Tags).ServeHTTP)
				r.Patch("/articles/{id}/status", articlestatus.New(logger, deps.Articles).ServeHTTP)
				r.Patch("/articles/{id}/premium", articlepremiumflag.New(logger, deps.Articles).ServeHTTP)
			})
		})
	})

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/docs/*", httpSwagger.WrapHandler)
}
