package update

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mnewsapp/mnews-server/internal/http/middlewarectx"
	"github.com/mnewsapp/mnews-server/internal/models"
	authservice "github.com/mnewsapp/mnews-server/internal/services/auth"
	"github.com/mnewsapp/mnews-server/internal/storage"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id string, upd models.DummyArticleUpdate) (int64, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(int64), args.Error(1)
}

// MockPolicy реализует интерфейс update.Policy
type MockPolicy struct {
	mock.Mock
}

func (m *MockPolicy) Authorize(ctx context.Context, identity *models.Identity, tier authservice.Tier, ownerEmail string) error {
	args := m.Called(ctx, identity, tier, ownerEmail)
	return args.Error(0)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	newTitle := "Updated title"
	article := &models.Article{
		Author: models.Author{Name: "Author", Email: "author@example.com"},
		Title:  "Old title",
	}

	tests := []struct {
		name           string
		articleID      string
		requestBody    interface{}
		identityEmail  string
		setupMocks     func(*MockService, *MockPolicy)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "владелец обновляет свою статью",
			articleID:     "68b1a7f2c0ffee0123456789",
			requestBody:   models.DummyArticleUpdate{Title: &newTitle},
			identityEmail: "author@example.com",
			setupMocks: func(s *MockService, p *MockPolicy) {
				s.On("Read", mock.Anything, "68b1a7f2c0ffee0123456789").Return(article, nil).Once()
				p.On("Authorize", mock.Anything, mock.Anything, authservice.TierOwnerOrAdmin, "author@example.com").
					Return(nil).Once()
				s.On("Update", mock.Anything, "68b1a7f2c0ffee0123456789",
					mock.AnythingOfType("models.DummyArticleUpdate")).Return(int64(1), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"matchedCount":1`,
		},
		{
			name:          "чужая статья без роли admin",
			articleID:     "68b1a7f2c0ffee0123456789",
			requestBody:   models.DummyArticleUpdate{Title: &newTitle},
			identityEmail: "intruder@example.com",
			setupMocks: func(s *MockService, p *MockPolicy) {
				s.On("Read", mock.Anything, "68b1a7f2c0ffee0123456789").Return(article, nil).Once()
				p.On("Authorize", mock.Anything, mock.Anything, authservice.TierOwnerOrAdmin, "author@example.com").
					Return(authservice.ErrForbidden).Once()
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"forbidden"}`,
		},
		{
			name:          "статья не найдена",
			articleID:     "68b1a7f2c0ffee0123456789",
			requestBody:   models.DummyArticleUpdate{Title: &newTitle},
			identityEmail: "author@example.com",
			setupMocks: func(s *MockService, _ *MockPolicy) {
				s.On("Read", mock.Anything, "68b1a7f2c0ffee0123456789").
					Return(nil, storage.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"article not found"}`,
		},
		{
			name:          "некорректный id",
			articleID:     "abc",
			requestBody:   models.DummyArticleUpdate{Title: &newTitle},
			identityEmail: "author@example.com",
			setupMocks: func(s *MockService, _ *MockPolicy) {
				s.On("Read", mock.Anything, "abc").Return(nil, storage.ErrInvalidID).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"article not found"}`,
		},
		{
			name:           "отсутствует личность в контексте",
			articleID:      "68b1a7f2c0ffee0123456789",
			requestBody:    models.DummyArticleUpdate{Title: &newTitle},
			identityEmail:  "",
			setupMocks:     func(_ *MockService, _ *MockPolicy) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized access"}`,
		},
		{
			name:           "некорректный JSON",
			articleID:      "68b1a7f2c0ffee0123456789",
			requestBody:    "not a json",
			identityEmail:  "author@example.com",
			setupMocks:     func(_ *MockService, _ *MockPolicy) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockPolicy := new(MockPolicy)
			tt.setupMocks(mockService, mockPolicy)

			handler := New(logger, mockService, mockPolicy)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, "/articles/"+tt.articleID, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.identityEmail != "" {
				ctx = context.WithValue(ctx, middlewarectx.IdentityKey,
					&models.Identity{Email: tt.identityEmail})
			}
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.articleID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
			mockPolicy.AssertExpectations(t)
		})
	}
}
