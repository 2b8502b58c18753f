// Package logout реализует HTTP-обработчик выхода владельца.
//
// Выход безусловен и идемпотентен: запрос без токена или с уже
// завершённым сеансом получает тот же успешный ответ, что и живой сеанс.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/watchlist/internal/http/middlewarectx"
	"github.com/magabrotheeeer/watchlist/internal/http/response"
	"github.com/magabrotheeeer/watchlist/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на выход.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход владельца
// @Description Завершает сеанс по токену. Повторный выход не ошибка.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сеанс завершён"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := middlewarectx.BearerToken(r)
	if !ok {
		// Сеанса и так нет, переход в Anonymous уже состоялся.
		log.Info("logout without session")
		render.JSON(w, r, response.OK())
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		log.Error("failed to logout", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("logout success")
	render.JSON(w, r, response.OK())
}
