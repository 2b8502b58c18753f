// Package list реализует HTTP-обработчик публичного списка каталога.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/watchlist/internal/http/response"
	"github.com/magabrotheeeer/watchlist/internal/lib/sl"
	"github.com/magabrotheeeer/watchlist/internal/models"
)

// Handler обрабатывает запросы на получение всего каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения каталога.
type Service interface {
	List(ctx context.Context) ([]*models.Movie, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список фильмов
// @Description Возвращает все записи каталога в порядке добавления.
// @Tags Movies
// @Produce  json
// @Success 200 {object} map[string]any "Записи каталога"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /movies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list movies"))
		return
	}

	log.Info("list movies", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"movies":     res,
	}))
}
