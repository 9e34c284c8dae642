package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	customjwt "github.com/mnewsapp/mnews-server/internal/lib/jwt"
	"github.com/mnewsapp/mnews-server/internal/models"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
)

// Мок для jwt.Maker
type MakerMock struct {
	mock.Mock
}

func (m *MakerMock) GenerateToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MakerMock) ParseToken(tokenStr string) (*customjwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

// Мок для UserProvider
type UserProviderMock struct {
	mock.Mock
}

func (m *UserProviderMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserProviderMock) SetUserPremium(ctx context.Context, email string, premium bool, start *time.Time, minutes int) (int64, error) {
	args := m.Called(ctx, email, premium, start, minutes)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		setupMock func(*MakerMock)
		wantEmail string
		wantErr   error
	}{
		{
			name:      "empty token",
			token:     "",
			setupMock: func(_ *MakerMock) {},
			wantErr:   authservice.ErrUnauthenticated,
		},
		{
			name:  "parse error",
			token: "broken",
			setupMock: func(m *MakerMock) {
				m.On("ParseToken", "broken").Return(nil, errors.New("token is expired")).Once()
			},
			wantErr: authservice.ErrUnauthenticated,
		},
		{
			name:  "valid token",
			token: "validtoken",
			setupMock: func(m *MakerMock) {
				m.On("ParseToken", "validtoken").Return(&customjwt.CustomClaims{
					Email: "reader@example.com",
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(time.Now()),
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}, nil).Once()
			},
			wantEmail: "reader@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maker := new(MakerMock)
			users := new(UserProviderMock)
			tt.setupMock(maker)

			svc := authservice.New(maker, users, newNoopLogger())

			identity, err := svc.Verify(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, identity)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantEmail, identity.Email)
			}
			maker.AssertExpectations(t)
		})
	}
}

func TestAuthorize(t *testing.T) {
	expiredStart := time.Now().Add(-2 * time.Hour)

	tests := []struct {
		name       string
		identity   *models.Identity
		tier       authservice.Tier
		ownerEmail string
		setupMock  func(*UserProviderMock)
		wantErr    error
	}{
		{
			name:      "public without identity",
			identity:  nil,
			tier:      authservice.TierPublic,
			setupMock: func(_ *UserProviderMock) {},
		},
		{
			name:      "authenticated without identity",
			identity:  nil,
			tier:      authservice.TierAuthenticated,
			setupMock: func(_ *UserProviderMock) {},
			wantErr:   authservice.ErrUnauthenticated,
		},
		{
			name:      "authenticated with identity",
			identity:  &models.Identity{Email: "reader@example.com"},
			tier:      authservice.TierAuthenticated,
			setupMock: func(_ *UserProviderMock) {},
		},
		{
			name:     "premium with active subscription",
			identity: &models.Identity{Email: "premium@example.com"},
			tier:     authservice.TierPremium,
			setupMock: func(m *UserProviderMock) {
				start := time.Now()
				m.On("FindUserByEmail", mock.Anything, "premium@example.com").Return(&models.User{
					Email:               "premium@example.com",
					Role:                models.RoleUser,
					IsPremium:           true,
					SubscriptionStart:   &start,
					SubscriptionMinutes: 60,
				}, nil).Once()
			},
		},
		{
			name:     "premium without subscription",
			identity: &models.Identity{Email: "reader@example.com"},
			tier:     authservice.TierPremium,
			setupMock: func(m *UserProviderMock) {
				m.On("FindUserByEmail", mock.Anything, "reader@example.com").Return(&models.User{
					Email: "reader@example.com",
					Role:  models.RoleUser,
				}, nil).Once()
			},
			wantErr: authservice.ErrForbidden,
		},
		{
			name:     "premium with expired subscription is downgraded",
			identity: &models.Identity{Email: "lapsed@example.com"},
			tier:     authservice.TierPremium,
			setupMock: func(m *UserProviderMock) {
				m.On("FindUserByEmail", mock.Anything, "lapsed@example.com").Return(&models.User{
					Email:               "lapsed@example.com",
					Role:                models.RoleUser,
					IsPremium:           true,
					SubscriptionStart:   &expiredStart,
					SubscriptionMinutes: 1,
				}, nil).Once()
				m.On("SetUserPremium", mock.Anything, "lapsed@example.com", false, (*time.Time)(nil), 0).
					Return(int64(1), nil).Once()
			},
			wantErr: authservice.ErrForbidden,
		},
		{
			name:       "owner matches token email",
			identity:   &models.Identity{Email: "author@example.com"},
			tier:       authservice.TierOwnerOrAdmin,
			ownerEmail: "author@example.com",
			setupMock:  func(_ *UserProviderMock) {},
		},
		{
			name:       "non-owner without admin role",
			identity:   &models.Identity{Email: "intruder@example.com"},
			tier:       authservice.TierOwnerOrAdmin,
			ownerEmail: "author@example.com",
			setupMock: func(m *UserProviderMock) {
				m.On("FindUserByEmail", mock.Anything, "intruder@example.com").Return(&models.User{
					Email: "intruder@example.com",
					Role:  models.RoleUser,
				}, nil).Once()
			},
			wantErr: authservice.ErrForbidden,
		},
		{
			name:       "non-owner with admin role",
			identity:   &models.Identity{Email: "admin@example.com"},
			tier:       authservice.TierOwnerOrAdmin,
			ownerEmail: "author@example.com",
			setupMock: func(m *UserProviderMock) {
				m.On("FindUserByEmail", mock.Anything, "admin@example.com").Return(&models.User{
					Email: "admin@example.com",
					Role:  models.RoleAdmin,
				}, nil).Once()
			},
		},
		{
			name:     "admin tier with user role",
			identity: &models.Identity{Email: "reader@example.com"},
			tier:     authservice.TierAdmin,
			setupMock: func(m *UserProviderMock) {
				m.On("FindUserByEmail", mock.Anything, "reader@example.com").Return(&models.User{
					Email: "reader@example.com",
					Role:  models.RoleUser,
				}, nil).Once()
			},
			wantErr: authservice.ErrForbidden,
		},
		{
			name:     "admin tier with unknown user",
			identity: &models.Identity{Email: "ghost@example.com"},
			tier:     authservice.TierAdmin,
			setupMock: func(m *UserProviderMock) {
				m.On("FindUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, errors.New("not found")).Once()
			},
			wantErr: authservice.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maker := new(MakerMock)
			users := new(UserProviderMock)
			tt.setupMock(users)

			svc := authservice.New(maker, users, newNoopLogger())

			err := svc.Authorize(context.Background(), tt.identity, tt.tier, tt.ownerEmail)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			users.AssertExpectations(t)
		})
	}
}
