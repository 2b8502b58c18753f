package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/watchlist/internal/http/middlewarectx"
	"github.com/magabrotheeeer/watchlist/internal/models"
)

// MockService реализует интерфейс settings.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateName(ctx context.Context, uid, name string) error {
	args := m.Called(ctx, uid, name)
	return args.Error(0)
}

func TestSettingsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		uid            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная смена имени",
			requestBody: models.UpdateNameRequest{Name: "New Name"},
			uid:         "uid-1",
			setupMock: func(m *MockService) {
				m.On("UpdateName", mock.Anything, "uid-1", "New Name").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			uid:            "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "пустое имя",
			requestBody:    models.UpdateNameRequest{Name: ""},
			uid:            "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Name is a required field`,
		},
		{
			name:           "имя длиннее 20 символов",
			requestBody:    models.UpdateNameRequest{Name: strings.Repeat("a", 21)},
			uid:            "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Name is longer than 20 characters`,
		},
		{
			name:        "имя из одних пробелов",
			requestBody: models.UpdateNameRequest{Name: "   "},
			uid:         "uid-1",
			setupMock: func(m *MockService) {
				m.On("UpdateName", mock.Anything, "uid-1", "   ").
					Return(models.ErrInvalidInput)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"invalid input"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.UpdateNameRequest{Name: "New Name"},
			uid:            "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"authentication required"}`,
		},
		{
			name:        "владелец не найден",
			requestBody: models.UpdateNameRequest{Name: "New Name"},
			uid:         "uid-ghost",
			setupMock: func(m *MockService) {
				m.On("UpdateName", mock.Anything, "uid-ghost", "New Name").
					Return(models.ErrNoOwner)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"owner not found"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: models.UpdateNameRequest{Name: "New Name"},
			uid:         "uid-1",
			setupMock: func(m *MockService) {
				m.On("UpdateName", mock.Anything, "uid-1", "New Name").
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not update name"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.uid != "" {
				ctx = context.WithValue(ctx, middlewarectx.OwnerUID, tt.uid)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
