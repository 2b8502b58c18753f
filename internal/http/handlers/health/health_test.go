package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type dbCheckerStub struct {
	err error
}

func (s dbCheckerStub) CheckDatabaseReady() error {
	return s.err
}

type sessionPingerStub struct {
	err error
}

func (s sessionPingerStub) Ping(_ context.Context) error {
	return s.err
}

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		dbErr          error
		sessionsErr    error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "все зависимости доступны",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "база данных недоступна",
			dbErr:          errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"Error","error":"database is not ready"}`,
		},
		{
			name:           "хранилище сеансов недоступно",
			sessionsErr:    errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"Error","error":"session store is not ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger, dbCheckerStub{err: tt.dbErr}, sessionPingerStub{err: tt.sessionsErr})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
