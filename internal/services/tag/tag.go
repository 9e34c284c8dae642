// Package tag содержит бизнес-логику работы с тегами.
package tag

import (
	"context"
	"log/slog"
	"time"

	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

const listCacheKey = "tags:list"

// Repository определяет методы для работы с тегами в хранилище.
type Repository interface {
	CreateTag(ctx context.Context, tag models.Tag) (string, error)
	ListTags(ctx context.Context) ([]*models.Tag, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует бизнес-логику работы с тегами.
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

// Create добавляет тег и сбрасывает кеш списка.
func (s *Service) Create(ctx context.Context, req models.DummyTag) (string, error) {
	id, err := s.repo.CreateTag(ctx, models.Tag{Name: req.Name})
	if err != nil {
		return "", err
	}
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate tags cache", sl.Err(err))
	}
	return id, nil
}

// List возвращает все теги, по возможности из кеша.
func (s *Service) List(ctx context.Context) ([]*models.Tag, error) {
	var cached []*models.Tag
	if ok, err := s.cache.Get(ctx, listCacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, listCacheKey, tags, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache tags", sl.Err(err))
	}
	return tags, nil
}
