// Package auth реализует проверку учётных данных и политику доступа.
//
// Verify превращает строку токена в аутентифицированную личность.
// Authorize решает, допускать ли личность к операции заданного уровня.
// Роль и премиум-статус политика не вычисляет сама, а получает из
// хранилища пользователей по email из проверенного токена.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jwtlib "github.com/mnewsapp/mnews-server/internal/lib/jwt"
	"github.com/mnewsapp/mnews-server/internal/lib/sl"
	"github.com/mnewsapp/mnews-server/internal/models"
)

// Ошибки политики доступа.
var (
	// ErrUnauthenticated учётные данные отсутствуют, просрочены или не проходят проверку.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden учётные данные верны, но прав недостаточно.
	ErrForbidden = errors.New("forbidden")
)

// Tier уровень доступа операции.
type Tier int

const (
	// TierPublic доступ без аутентификации.
	TierPublic Tier = iota
	// TierAuthenticated требуется действительный токен.
	TierAuthenticated
	// TierPremium требуется действительный токен и активная премиум-подписка.
	TierPremium
	// TierOwnerOrAdmin требуется совпадение email владельца ресурса либо роль admin.
	TierOwnerOrAdmin
	// TierAdmin требуется роль admin.
	TierAdmin
)

// UserProvider описывает доступ политики к записям пользователей.
type UserProvider interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetUserPremium(ctx context.Context, email string, premium bool, start *time.Time, minutes int) (int64, error)
}

// Service сервис аутентификации и авторизации.
type Service struct {
	maker jwtlib.Maker
	users UserProvider
	log   *slog.Logger
}

// New создает новый Service.
func New(maker jwtlib.Maker, users UserProvider, log *slog.Logger) *Service {
	return &Service{
		maker: maker,
		users: users,
		log:   log,
	}
}

// IssueToken выпускает подписанный токен для указанного email.
func (s *Service) IssueToken(email string) (string, error) {
	const op = "auth.IssueToken"
	token, err := s.maker.GenerateToken(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Verify проверяет подпись и срок действия токена и возвращает личность.
// Любая причина отказа сворачивается в ErrUnauthenticated.
func (s *Service) Verify(rawToken string) (*models.Identity, error) {
	const op = "auth.Verify"

	if rawToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}
	claims, err := s.maker.ParseToken(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}
	identity := &models.Identity{Email: claims.Email}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// Authorize решает, допускается ли личность к операции уровня tier.
// Для TierOwnerOrAdmin ownerEmail — email владельца целевого ресурса;
// сравнение идёт только с email из проверенного токена, значения из
// запроса клиента сюда не попадают.
func (s *Service) Authorize(ctx context.Context, identity *models.Identity, tier Tier, ownerEmail string) error {
	const op = "auth.Authorize"

	if tier == TierPublic {
		return nil
	}
	if identity == nil {
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	switch tier {
	case TierAuthenticated:
		return nil

	case TierPremium:
		user, err := s.users.FindUserByEmail(ctx, identity.Email)
		if err != nil {
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}
		if !user.IsPremium {
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}
		if user.SubscriptionExpired(time.Now()) {
			// Истёкшая подписка снимается при первом же обращении.
			if _, err := s.users.SetUserPremium(ctx, user.Email, false, nil, 0); err != nil {
				s.log.Warn("failed to downgrade expired subscription", sl.Err(err))
			}
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}
		return nil

	case TierOwnerOrAdmin:
		if ownerEmail != "" && identity.Email == ownerEmail {
			return nil
		}
		return s.requireAdmin(ctx, identity, op)

	case TierAdmin:
		return s.requireAdmin(ctx, identity, op)
	}
	return fmt.Errorf("%s: %w", op, ErrForbidden)
}

func (s *Service) requireAdmin(ctx context.Context, identity *models.Identity, op string) error {
	user, err := s.users.FindUserByEmail(ctx, identity.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	if user.Role != models.RoleAdmin {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	return nil
}
