package user_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mnewsapp/mnews-server/internal/models"
	userservice "github.com/mnewsapp/mnews-server/internal/services/user"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context, p models.Pagination) ([]*models.User, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *RepoMock) SetUserRole(ctx context.Context, email, role string) (int64, error) {
	args := m.Called(ctx, email, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) SetUserPremium(ctx context.Context, email string, premium bool, start *time.Time, minutes int) (int64, error) {
	args := m.Called(ctx, email, premium, start, minutes)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*RepoMock)
		wantMessage string
		wantID      string
		wantErr     bool
	}{
		{
			name: "первая регистрация вставляет документ",
			setupMock: func(m *RepoMock) {
				m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "reader@example.com" && u.Role == models.RoleUser && !u.IsPremium
				})).Return("68b1a7f2c0ffee0123456789", nil).Once()
			},
			wantID: "68b1a7f2c0ffee0123456789",
		},
		{
			name: "повторная регистрация не является ошибкой",
			setupMock: func(m *RepoMock) {
				m.On("CreateUser", mock.Anything, mock.Anything).
					Return("", storage.ErrAlreadyExists).Once()
			},
			wantMessage: "User already exists!",
		},
		{
			name: "ошибка хранилища",
			setupMock: func(m *RepoMock) {
				m.On("CreateUser", mock.Anything, mock.Anything).
					Return("", errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMock(repo)

			svc := userservice.New(repo, newNoopLogger())

			result, err := svc.Create(context.Background(), models.DummyUser{
				Email: "reader@example.com",
				Name:  "Reader",
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantMessage, result.Message)
				if tt.wantID != "" {
					assert.NotNil(t, result.InsertedID)
					assert.Equal(t, tt.wantID, *result.InsertedID)
				} else {
					assert.Nil(t, result.InsertedID)
				}
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProfile_DowngradesExpiredSubscription(t *testing.T) {
	repo := new(RepoMock)
	start := time.Now().Add(-2 * time.Hour)

	repo.On("FindUserByEmail", mock.Anything, "lapsed@example.com").Return(&models.User{
		Email:               "lapsed@example.com",
		Role:                models.RoleUser,
		IsPremium:           true,
		SubscriptionStart:   &start,
		SubscriptionMinutes: 30,
	}, nil).Once()
	repo.On("SetUserPremium", mock.Anything, "lapsed@example.com", false, (*time.Time)(nil), 0).
		Return(int64(1), nil).Once()

	svc := userservice.New(repo, newNoopLogger())

	user, err := svc.Profile(context.Background(), "lapsed@example.com")
	assert.NoError(t, err)
	assert.False(t, user.IsPremium)
	assert.Nil(t, user.SubscriptionStart)
	assert.Zero(t, user.SubscriptionMinutes)
	repo.AssertExpectations(t)
}

func TestProfile_KeepsActiveSubscription(t *testing.T) {
	repo := new(RepoMock)
	start := time.Now()

	repo.On("FindUserByEmail", mock.Anything, "premium@example.com").Return(&models.User{
		Email:               "premium@example.com",
		Role:                models.RoleUser,
		IsPremium:           true,
		SubscriptionStart:   &start,
		SubscriptionMinutes: 60,
	}, nil).Once()

	svc := userservice.New(repo, newNoopLogger())

	user, err := svc.Profile(context.Background(), "premium@example.com")
	assert.NoError(t, err)
	assert.True(t, user.IsPremium)
	repo.AssertExpectations(t)
}

func TestMakeAdmin(t *testing.T) {
	t.Run("существующий пользователь", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserRole", mock.Anything, "reader@example.com", models.RoleAdmin).
			Return(int64(1), nil).Once()

		svc := userservice.New(repo, newNoopLogger())
		err := svc.MakeAdmin(context.Background(), "reader@example.com")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("неизвестный email", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserRole", mock.Anything, "ghost@example.com", models.RoleAdmin).
			Return(int64(0), nil).Once()

		svc := userservice.New(repo, newNoopLogger())
		err := svc.MakeAdmin(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		repo.AssertExpectations(t)
	})
}
