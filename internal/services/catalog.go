// Package services содержит бизнес-логику каталога фильмов и учётной
// записи владельца: полевые правила перед каждой мутацией
// и делегирование в хранилище.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/watchlist/internal/models"
)

// MovieRepository определяет методы для работы с каталогом в хранилище.
type MovieRepository interface {
	// CreateMovie добавляет новую запись и возвращает её ID.
	CreateMovie(ctx context.Context, title, year string) (int, error)
	// ReadMovie возвращает запись по ID либо ErrMovieNotFound.
	ReadMovie(ctx context.Context, id int) (*models.Movie, error)
	// UpdateMovie перезаписывает название и год, ErrMovieNotFound если записи нет.
	UpdateMovie(ctx context.Context, id int, title, year string) error
	// RemoveMovie удаляет запись, ErrMovieNotFound если записи нет.
	RemoveMovie(ctx context.Context, id int) error
	// ListMovies возвращает все записи в порядке добавления.
	ListMovies(ctx context.Context) ([]*models.Movie, error)
}

// CatalogService реализует бизнес-логику работы с каталогом.
//
// Полевые правила применяются до обращения к хранилищу: при нарушении
// возвращается ErrInvalidInput и состояние каталога не меняется.
// Хранилище уже не проверяет ничего.
type CatalogService struct {
	repo MovieRepository
	log  *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo MovieRepository, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo: repo,
		log:  log,
	}
}

// Create добавляет запись каталога и возвращает её ID.
// Правило для года на пути создания: от 1 до 4 цифр.
func (s *CatalogService) Create(ctx context.Context, req models.CreateMovieRequest) (int, error) {
	const op = "catalog.Create"

	title := strings.TrimSpace(req.Title)
	if err := checkFields(title, req.Year, false); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateMovie(ctx, title, req.Year)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new movie", slog.Int("id", id))
	return id, nil
}

// Read возвращает запись каталога по ID.
func (s *CatalogService) Read(ctx context.Context, id int) (*models.Movie, error) {
	return s.repo.ReadMovie(ctx, id)
}

// Update перезаписывает название и год существующей записи.
// Правило для года на пути редактирования строже: ровно 4 цифры.
func (s *CatalogService) Update(ctx context.Context, req models.UpdateMovieRequest, id int) error {
	const op = "catalog.Update"

	title := strings.TrimSpace(req.Title)
	if err := checkFields(title, req.Year, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateMovie(ctx, id, title, req.Year); err != nil {
		return err
	}

	s.log.Info("updated movie", slog.Int("id", id))
	return nil
}

// Remove удаляет запись каталога по ID.
func (s *CatalogService) Remove(ctx context.Context, id int) error {
	if err := s.repo.RemoveMovie(ctx, id); err != nil {
		return err
	}

	s.log.Info("removed movie", slog.Int("id", id))
	return nil
}

// List возвращает все записи каталога в порядке добавления.
func (s *CatalogService) List(ctx context.Context) ([]*models.Movie, error) {
	return s.repo.ListMovies(ctx)
}

// BulkImport добавляет сгенерированные записи в обход сеансовой защиты.
//
// Путь предназначен только для наполнения демонстрационными данными,
// но полевые правила применяются и здесь: испорченная запись не должна
// попасть в каталог даже через импорт.
func (s *CatalogService) BulkImport(ctx context.Context, entries []models.CreateMovieRequest) (int, error) {
	const op = "catalog.BulkImport"

	var imported int
	for _, entry := range entries {
		title := strings.TrimSpace(entry.Title)
		if err := checkFields(title, entry.Year, false); err != nil {
			return imported, fmt.Errorf("%s: entry %q: %w", op, entry.Title, err)
		}
		if _, err := s.repo.CreateMovie(ctx, title, entry.Year); err != nil {
			return imported, fmt.Errorf("%s: %w", op, err)
		}
		imported++
	}

	s.log.Info("bulk import finished", slog.Int("count", imported))
	return imported, nil
}

// checkFields применяет полевые правила каталога: название непустое
// после обрезки пробелов и не длиннее 60, год состоит из цифр,
// на пути редактирования — ровно из четырёх.
func checkFields(title, year string, exactYear bool) error {
	if title == "" || len(title) > 60 {
		return models.ErrInvalidInput
	}
	if exactYear {
		if len(year) != 4 {
			return models.ErrInvalidInput
		}
	} else {
		if len(year) < 1 || len(year) > 4 {
			return models.ErrInvalidInput
		}
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return models.ErrInvalidInput
		}
	}
	return nil
}
