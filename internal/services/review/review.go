// Package review содержит бизнес-логику работы с отзывами.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// Repository определяет методы для работы с отзывами в хранилище.
type Repository interface {
	CreateReview(ctx context.Context, review models.Review) (string, error)
	ListReviews(ctx context.Context) ([]*models.Review, error)
}

// UserProvider нужен, чтобы проставить имя автора отзыва.
type UserProvider interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service реализует бизнес-логику работы с отзывами.
type Service struct {
	repo  Repository
	users UserProvider
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, users UserProvider, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		users: users,
		log:   log,
	}
}

// Create добавляет отзыв. Автор всегда берётся из проверенной личности.
func (s *Service) Create(ctx context.Context, authorEmail string, req models.DummyReview) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, authorEmail)
	if err != nil {
		return "", fmt.Errorf("author is not a registered user: %w", err)
	}

	review := models.Review{
		Author:    models.Author{Name: user.Name, Email: user.Email},
		Text:      req.Text,
		Rating:    req.Rating,
		CreatedAt: time.Now(),
	}
	id, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		return "", err
	}
	s.log.Info("created new review", slog.String("id", id), slog.String("author", user.Email))
	return id, nil
}

// List возвращает все отзывы, новые сверху.
func (s *Service) List(ctx context.Context) ([]*models.Review, error) {
	return s.repo.ListReviews(ctx)
}
