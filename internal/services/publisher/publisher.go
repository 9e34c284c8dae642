// Package publisher содержит бизнес-логику работы с издателями,
// включая агрегированную статистику публикаций и её кеширование.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

const statsCacheKey = "publishers:stats"

// Repository определяет методы для работы с издателями в хранилище.
type Repository interface {
	CreatePublisher(ctx context.Context, publisher models.Publisher) (string, error)
	ListPublishers(ctx context.Context) ([]*models.Publisher, error)
	CountArticlesByPublisher(ctx context.Context) ([]*models.PublisherStat, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует бизнес-логику работы с издателями.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет издателя и сбрасывает кеш статистики.
func (s *Service) Create(ctx context.Context, req models.DummyPublisher) (string, error) {
	id, err := s.repo.CreatePublisher(ctx, models.Publisher{Name: req.Name, Logo: req.Logo})
	if err != nil {
		return "", err
	}
	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil {
		s.log.Warn("failed to invalidate publisher stats cache", sl.Err(err))
	}
	s.log.Info("created new publisher", slog.String("id", id), slog.String("name", req.Name))
	return id, nil
}

// List возвращает всех издателей.
func (s *Service) List(ctx context.Context) ([]*models.Publisher, error) {
	return s.repo.ListPublishers(ctx)
}

// Stats возвращает издателей с числом опубликованных статей и долей
// от общего количества публикаций. Результат агрегации кешируется.
func (s *Service) Stats(ctx context.Context) ([]*models.PublisherStat, error) {
	var cached []*models.PublisherStat
	if ok, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	stats, err := s.repo.CountArticlesByPublisher(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, st := range stats {
		total += st.Count
	}
	for _, st := range stats {
		if total > 0 {
			st.Percentage = float64(st.Count) / float64(total) * 100
		}
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, time.Minute); err != nil {
		s.log.Warn("failed to cache publisher stats", sl.Err(err))
	}
	return stats, nil
}
