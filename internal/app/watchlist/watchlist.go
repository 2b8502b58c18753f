// Package watchlist собирает сервис каталога: хранилище, миграции,
// хранилище сеансов, бизнес-сервисы и HTTP-сервер.
package watchlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/watchlist/internal/config"
	"github.com/magabrotheeeer/watchlist/internal/migrations"
	"github.com/magabrotheeeer/watchlist/internal/services"
	"github.com/magabrotheeeer/watchlist/internal/sessions"
	"github.com/magabrotheeeer/watchlist/internal/storage"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *storage.Storage
	sessions *sessions.Store
}

// New создаёт приложение: подключает PostgreSQL, применяет миграции,
// подключает Redis для сеансов и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	sessionStore, err := sessions.InitServer(ctx, cfg.RedisConnection, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, sessionStore, logger)
	catalogService := services.NewCatalogService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, catalogService, authService, db, sessionStore)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessionStore,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
// Соединения с базой данных и Redis закрываются на любом пути выхода.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		_ = a.sessions.Db.Close()
		_ = a.db.DB.Close()
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
