// Package health реализует HTTP-обработчик проверки готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/watchlist/internal/http/response"
	"github.com/magabrotheeeer/watchlist/internal/lib/sl"
)

// DatabaseChecker описывает проверку готовности базы данных.
type DatabaseChecker interface {
	CheckDatabaseReady() error
}

// SessionPinger описывает проверку доступности хранилища сеансов.
type SessionPinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на запросы проверки готовности. Сервис готов, когда
// доступны и база данных, и хранилище сеансов.
type Handler struct {
	log      *slog.Logger
	db       DatabaseChecker
	sessions SessionPinger
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, db DatabaseChecker, sessions SessionPinger) *Handler {
	return &Handler{
		log:      log,
		db:       db,
		sessions: sessions,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Description Проверяет доступность базы данных и хранилища сеансов.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse "Зависимость недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(slog.String("op", op))

	if err := h.db.CheckDatabaseReady(); err != nil {
		log.Error("database is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	if err := h.sessions.Ping(r.Context()); err != nil {
		log.Error("session store is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("session store is not ready"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
