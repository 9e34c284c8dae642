// Package user содержит бизнес-логику работы с пользователями:
// идемпотентная регистрация по email, выдача профиля с актуальным
// премиум-статусом, назначение ролей.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, p models.Pagination) ([]*models.User, int64, error)
	SetUserRole(ctx context.Context, email, role string) (int64, error)
	SetUserPremium(ctx context.Context, email string, premium bool, start *time.Time, minutes int) (int64, error)
}

// CreateResult результат идемпотентной регистрации. При повторной
// регистрации InsertedID пуст, а Message поясняет причину.
type CreateResult struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}

// Service реализует бизнес-логику работы с пользователями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create регистрирует пользователя при первом входе. Повторный вызов
// с тем же email ничего не вставляет и возвращает соответствующее
// сообщение вместо ошибки.
func (s *Service) Create(ctx context.Context, req models.DummyUser) (CreateResult, error) {
	user := models.User{
		Email:     req.Email,
		Name:      req.Name,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}

	id, err := s.repo.CreateUser(ctx, user)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return CreateResult{Message: "User already exists!", InsertedID: nil}, nil
	}
	if err != nil {
		return CreateResult{}, err
	}

	s.log.Info("created new user", slog.String("email", req.Email))
	return CreateResult{InsertedID: &id}, nil
}

// Profile возвращает пользователя с актуальным премиум-статусом:
// истёкшая подписка снимается прямо при чтении профиля.
func (s *Service) Profile(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.SubscriptionExpired(time.Now()) {
		if _, err := s.repo.SetUserPremium(ctx, user.Email, false, nil, 0); err != nil {
			s.log.Warn("failed to downgrade expired subscription", sl.Err(err))
		}
		user.IsPremium = false
		user.SubscriptionStart = nil
		user.SubscriptionMinutes = 0
	}
	return user, nil
}

// List возвращает страницу пользователей и их общее количество.
func (s *Service) List(ctx context.Context, p models.Pagination) ([]*models.User, int64, error) {
	return s.repo.ListUsers(ctx, p)
}

// MakeAdmin назначает пользователю роль admin.
func (s *Service) MakeAdmin(ctx context.Context, email string) error {
	matched, err := s.repo.SetUserRole(ctx, email, models.RoleAdmin)
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
	}
	s.log.Info("granted admin role", slog.String("email", email))
	return nil
}
