// Package article содержит бизнес-логику работы со статьями.
package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mnewsapp/mnews-server/internal/models"
)

// viewsTotal суммарный счётчик прочтений статей, помимо поля views в документе.
var viewsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mnews_article_views_total",
	Help: "Total number of article reads.",
})

// Repository определяет методы для работы со статьями в хранилище.
type Repository interface {
	CreateArticle(ctx context.Context, article models.Article) (string, error)
	ReadArticle(ctx context.Context, id string) (*models.Article, error)
	IncrementArticleViews(ctx context.Context, id string) (*models.Article, error)
	ListArticles(ctx context.Context, filter models.ArticleFilter, p models.Pagination) ([]*models.Article, int64, error)
	UpdateArticle(ctx context.Context, id string, upd models.DummyArticleUpdate) (int64, error)
	SetArticleStatus(ctx context.Context, id, status string) (int64, error)
	SetArticlePremium(ctx context.Context, id string, premium bool) (int64, error)
	RemoveArticle(ctx context.Context, id string) (int64, error)
}

// UserProvider нужен, чтобы проставить имя автора при создании статьи.
type UserProvider interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service реализует бизнес-логику работы со статьями.
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

// Create создаёт черновик статьи. Автор всегда берётся из проверенной
// личности, а не из тела запроса.
func (s *Service) Create(ctx context.Context, authorEmail string, req models.DummyArticle) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, authorEmail)
	if err != nil {
		return "", fmt.Errorf("author is not a registered user: %w", err)
	}

	article := models.Article{
		Title:     req.Title,
		Body:      req.Body,
		Image:     req.Image,
		Author:    models.Author{Name: user.Name, Email: user.Email},
		Publisher: models.ArticlePublisher{Name: req.Publisher},
		Tags:      req.Tags,
		Status:    models.StatusDraft,
		CreatedAt: time.Now(),
	}

	id, err := s.repo.CreateArticle(ctx, article)
	if err != nil {
		return "", err
	}
	s.log.Info("created new article", slog.String("id", id), slog.String("author", user.Email))
	return id, nil
}

// List возвращает страницу статей и общее число подходящих документов.
func (s *Service) List(ctx context.Context, filter models.ArticleFilter, p models.Pagination) ([]*models.Article, int64, error) {
	return s.repo.ListArticles(ctx, filter, p)
}

// Read возвращает статью без изменения счётчика просмотров.
// Используется для проверок владения перед изменением.
func (s *Service) Read(ctx context.Context, id string) (*models.Article, error) {
	return s.repo.ReadArticle(ctx, id)
}

// ReadPublished возвращает опубликованную статью, увеличивая счётчик
// просмотров. Черновики этим путём не видны: фильтр инкремента
// включает статус published, и для черновика вернётся ErrNotFound.
func (s *Service) ReadPublished(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repo.IncrementArticleViews(ctx, id)
	if err != nil {
		return nil, err
	}
	viewsTotal.Inc()
	return article, nil
}

// Update применяет частичное обновление разрешённых полей статьи.
func (s *Service) Update(ctx context.Context, id string, upd models.DummyArticleUpdate) (int64, error) {
	matched, err := s.repo.UpdateArticle(ctx, id, upd)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated article", slog.String("id", id), slog.Int64("matched", matched))
	return matched, nil
}

// SetStatus выставляет статус статьи. Админская операция.
func (s *Service) SetStatus(ctx context.Context, id, status string) (int64, error) {
	return s.repo.SetArticleStatus(ctx, id, status)
}

// SetPremium переключает признак premium статьи. Админская операция.
func (s *Service) SetPremium(ctx context.Context, id string, premium bool) (int64, error) {
	return s.repo.SetArticlePremium(ctx, id, premium)
}

// Remove удаляет статью.
func (s *Service) Remove(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.RemoveArticle(ctx, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("removed article", slog.String("id", id), slog.Int64("deleted", deleted))
	return deleted, nil
}
