// Package watchlist предоставляет маршруты для основного приложения.
package watchlist

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/watchlist/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/health"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/movie/create"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/movie/list"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/movie/read"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/movie/remove"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/movie/update"
	"github.com/magabrotheeeer/watchlist/internal/http/handlers/user/settings"
	"github.com/magabrotheeeer/watchlist/internal/http/middlewarectx"
	"github.com/magabrotheeeer/watchlist/internal/services"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Разрешение сеанса выполняется middleware до обработчиков мутаций:
// запрос без действующего сеанса до каталога не доходит.
func RegisterRoutes(r chi.Router, logger *slog.Logger, catalogService *services.CatalogService, authService *services.AuthService, db health.DatabaseChecker, sessionStore health.SessionPinger) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки: чтение каталога и вход/выход
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/logout", logout.New(logger, authService).ServeHTTP)
		r.Get("/movies", list.New(logger, catalogService).ServeHTTP)
		r.Get("/movies/{id}", read.New(logger, catalogService).ServeHTTP)
		r.Get("/health", health.New(logger, db, sessionStore).ServeHTTP)

		// Группа защищённых мутаций владельца
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/movies", create.New(logger, catalogService).ServeHTTP)
			r.Put("/movies/{id}", update.New(logger, catalogService).ServeHTTP)
			r.Delete("/movies/{id}", remove.New(logger, catalogService).ServeHTTP)
			r.Put("/settings", settings.New(logger, authService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
