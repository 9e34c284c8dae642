package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mnewsapp/mnews-server/internal/http/cookies"
	"github.com/mnewsapp/mnews-server/internal/models"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ReadPublished(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockService) Read(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

// MockAccess реализует интерфейс read.Access
type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) Verify(rawToken string) (*models.Identity, error) {
	args := m.Called(rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *MockAccess) Authorize(ctx context.Context, identity *models.Identity, tier authservice.Tier, ownerEmail string) error {
	args := m.Called(ctx, identity, tier, ownerEmail)
	return args.Error(0)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	draft := &models.Article{
		Author: models.Author{Name: "Author", Email: "author@example.com"},
		Title:  "Work in progress",
		Status: models.StatusDraft,
	}

	tests := []struct {
		name           string
		articleID      string
		cookieValue    string
		setupMocks     func(*MockService, *MockAccess)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "опубликованная статья",
			articleID: "68b1a7f2c0ffee0123456789",
			setupMocks: func(s *MockService, _ *MockAccess) {
				s.On("ReadPublished", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(&models.Article{
						Title:  "Go 1.24 released",
						Status: models.StatusPublished,
						Views:  42,
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Go 1.24 released"`,
		},
		{
			name:      "черновик без cookie недоступен",
			articleID: "68b1a7f2c0ffee0123456789",
			setupMocks: func(s *MockService, _ *MockAccess) {
				s.On("ReadPublished", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(nil, storage.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"article not found"}`,
		},
		{
			name:        "владелец читает свой черновик",
			articleID:   "68b1a7f2c0ffee0123456789",
			cookieValue: "owner-token",
			setupMocks: func(s *MockService, a *MockAccess) {
				s.On("ReadPublished", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(nil, storage.ErrNotFound).Once()
				a.On("Verify", "owner-token").
					Return(&models.Identity{Email: "author@example.com"}, nil).Once()
				s.On("Read", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(draft, nil).Once()
				a.On("Authorize", mock.Anything, mock.Anything, authservice.TierOwnerOrAdmin, "author@example.com").
					Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Work in progress"`,
		},
		{
			name:        "чужой черновик недоступен",
			articleID:   "68b1a7f2c0ffee0123456789",
			cookieValue: "stranger-token",
			setupMocks: func(s *MockService, a *MockAccess) {
				s.On("ReadPublished", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(nil, storage.ErrNotFound).Once()
				a.On("Verify", "stranger-token").
					Return(&models.Identity{Email: "stranger@example.com"}, nil).Once()
				s.On("Read", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(draft, nil).Once()
				a.On("Authorize", mock.Anything, mock.Anything, authservice.TierOwnerOrAdmin, "author@example.com").
					Return(authservice.ErrForbidden).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"article not found"}`,
		},
		{
			name:        "недействительный токен при чтении черновика",
			articleID:   "68b1a7f2c0ffee0123456789",
			cookieValue: "bad-token",
			setupMocks: func(s *MockService, a *MockAccess) {
				s.On("ReadPublished", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(nil, storage.ErrNotFound).Once()
				a.On("Verify", "bad-token").
					Return(nil, errors.New("token is invalid")).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"article not found"}`,
		},
		{
			name:      "некорректный id",
			articleID: "abc",
			setupMocks: func(s *MockService, _ *MockAccess) {
				s.On("ReadPublished", mock.Anything, "abc").
					Return(nil, storage.ErrInvalidID).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"article not found"}`,
		},
		{
			name:      "ошибка хранилища",
			articleID: "68b1a7f2c0ffee0123456789",
			setupMocks: func(s *MockService, _ *MockAccess) {
				s.On("ReadPublished", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to read article"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockAccess := new(MockAccess)
			tt.setupMocks(mockService, mockAccess)

			handler := New(logger, mockService, mockAccess)

			req := httptest.NewRequest(http.MethodGet, "/articles/"+tt.articleID, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))
			if tt.cookieValue != "" {
				req.AddCookie(&http.Cookie{Name: cookies.TokenCookie, Value: tt.cookieValue})
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.articleID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
			mockAccess.AssertExpectations(t)
		})
	}
}
