// Package payment содержит бизнес-логику оплаты премиум-подписки:
// создание платёжного намерения у провайдера и фиксация оплаты
// с включением премиум-статуса пользователя.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mnewsapp/mnews-server/internal/models"
	"github.com/mnewsapp/mnews-server/internal/paymentprovider"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// Repository определяет методы для работы с оплатами в хранилище.
type Repository interface {
	UpsertPayment(ctx context.Context, payment models.Payment) error
	FindPaymentByEmail(ctx context.Context, email string) (*models.Payment, error)
	SetUserPremium(ctx context.Context, email string, premium bool, start *time.Time, minutes int) (int64, error)
}

// Provider описывает интерфейс платёжного провайдера.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, req paymentprovider.CreateIntentRequest) (*paymentprovider.CreateIntentResponse, error)
}

// Service реализует бизнес-логику оплат.
type Service struct {
	repo     Repository
	provider Provider
	log      *slog.Logger
}

// New создает новый Service.
func New(repo Repository, provider Provider, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		log:      log,
	}
}

// CreateIntent создаёт платёжное намерение у провайдера и возвращает
// client secret. Ключ идемпотентности приходит из запроса клиента;
// при его отсутствии генерируется новый.
func (s *Service) CreateIntent(ctx context.Context, req models.DummyPaymentIntent, idempotencyKey string) (string, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	resp, err := s.provider.CreatePaymentIntent(ctx, paymentprovider.CreateIntentRequest{
		Amount:         req.Amount,
		Currency:       req.Currency,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return "", err
	}
	s.log.Info("created payment intent", slog.String("intent_id", resp.ID))
	return resp.ClientSecret, nil
}

// Record фиксирует оплату подписки. Запись на email одна: повторная
// покупка замещает предыдущую. Пользователю включается премиум-статус
// с отсчётом от момента оплаты. Если пользователя с таким email нет,
// премиум включать некому и операция завершается ошибкой.
func (s *Service) Record(ctx context.Context, email string, req models.DummyPayment) (*models.Payment, error) {
	const op = "services.payment.Record"

	now := time.Now()
	payment := models.Payment{
		Email:     email,
		Amount:    req.Amount,
		StartTime: now,
		Minutes:   req.Minutes,
	}
	if err := s.repo.UpsertPayment(ctx, payment); err != nil {
		return nil, err
	}
	matched, err := s.repo.SetUserPremium(ctx, email, true, &now, req.Minutes)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, fmt.Errorf("%s: user %s: %w", op, email, storage.ErrNotFound)
	}

	s.log.Info("recorded subscription payment",
		slog.String("email", email), slog.Int("minutes", req.Minutes))
	return &payment, nil
}

// ByEmail возвращает запись об оплате пользователя.
func (s *Service) ByEmail(ctx context.Context, email string) (*models.Payment, error) {
	return s.repo.FindPaymentByEmail(ctx, email)
}
