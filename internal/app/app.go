// Package app собирает приложение mNews: хранилище, кеш, платёжный
// провайдер, сервисы и HTTP-сервер с маршрутами.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/mnewsapp/mnews-server/internal/cache"
	"github.com/mnewsapp/mnews-server/internal/config"
	jwtlib "github.com/mnewsapp/mnews-server/internal/lib/jwt"
	"github.com/mnewsapp/mnews-server/internal/paymentprovider"
	articleservice "github.com/mnewsapp/mnews-server/internal/services/article"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
	paymentservice "github.com/mnewsapp/mnews-server/internal/services/payment"
	publisherservice "github.com/mnewsapp/mnews-server/internal/services/publisher"
	reviewservice "github.com/mnewsapp/mnews-server/internal/services/review"
	tagservice "github.com/mnewsapp/mnews-server/internal/services/tag"
	userservice "github.com/mnewsapp/mnews-server/internal/services/user"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// App инкапсулирует HTTP-сервер и внешние соединения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New создаёт приложение: подключается к MongoDB и redis, собирает
// сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.TimeoutMongo)
	defer cancel()

	db, err := storage.New(connectCtx, cfg.URI, cfg.Database)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	maker := jwtlib.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.StripeSecretKey, cfg.StripeAPIURL)

	deps := Deps{
		Auth:       authservice.New(maker, db, logger),
		Articles:   articleservice.New(db, db, logger),
		Users:      userservice.New(db, logger),
		Publishers: publisherservice.New(db, cacheRedis, logger),
		Tags:       tagservice.New(db, cacheRedis, logger),
		Reviews:    reviewservice.New(db, db, logger),
		Payments:   paymentservice.New(db, providerClient, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, deps)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает сервер и корректно останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if dbErr := a.db.Close(timeoutCtx); dbErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", dbErr))
		}
		if cacheErr := a.cache.Db.Close(); cacheErr != nil {
			a.logger.Error("failed to close cache", slog.Any("err", cacheErr))
		}
		return err
	}
}
