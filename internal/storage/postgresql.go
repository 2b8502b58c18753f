// Package storage реализует хранилище данных на основе PostgreSQL
// для каталога фильмов и единственной учётной записи владельца.
// Предоставляет методы создания, чтения, обновления и удаления записей
// каталога, а также работу с владельцем.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/watchlist/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с каталогом и владельцем.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных: соединение живо
// и миграции применены.
func (s *Storage) CheckDatabaseReady() error {
	var exists bool
	err := s.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'movies'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table movies missing or query error: %w", err)
	}
	return nil
}

// ===== MOVIE METHODS =====

// CreateMovie вставляет новую запись каталога и возвращает её ID.
// Валидация полей выполняется до вызова, хранилище принимает данные как есть.
func (s *Storage) CreateMovie(ctx context.Context, title, year string) (int, error) {
	const op = "storage.CreateMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO movies (title, year)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, title, year).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMovie возвращает запись каталога по её ID.
func (s *Storage) ReadMovie(ctx context.Context, id int) (*models.Movie, error) {
	const op = "storage.ReadMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, year FROM movies WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Movie
	if err := row.Scan(&result.ID, &result.Title, &result.Year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMovieNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateMovie обновляет название и год записи по её ID.
// Отсутствующая запись распознаётся по нулю изменённых строк.
func (s *Storage) UpdateMovie(ctx context.Context, id int, title, year string) error {
	const op = "storage.UpdateMovie"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE movies SET title = $1, year = $2 WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, title, year, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrMovieNotFound)
	}
	return nil
}

// RemoveMovie удаляет запись каталога по ID.
// Повторное удаление той же записи снова возвращает ErrMovieNotFound.
func (s *Storage) RemoveMovie(ctx context.Context, id int) error {
	const op = "storage.RemoveMovie"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM movies WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrMovieNotFound)
	}
	return nil
}

// ListMovies возвращает все записи каталога в порядке добавления.
func (s *Storage) ListMovies(ctx context.Context) ([]*models.Movie, error) {
	const op = "storage.ListMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, year
			  FROM movies
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Movie
	for rows.Next() {
		var item models.Movie
		if err := rows.Scan(&item.ID, &item.Title, &item.Year); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ===== USER METHODS =====

// GetOwner возвращает единственного владельца каталога.
//
// Возвращает ErrNoOwner, если учётная запись ещё не создана,
// и ErrAmbiguousOwner, если в таблице больше одной строки —
// вместо молчаливого выбора первой попавшейся.
func (s *Storage) GetOwner(ctx context.Context) (*models.User, error) {
	const op = "storage.GetOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, login_name, password_hash
			  FROM users
			  LIMIT 2`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var owners []*models.User
	for rows.Next() {
		u := &models.User{}
		var loginName sql.NullString
		if err := rows.Scan(&u.UID, &u.Name, &loginName, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if loginName.Valid {
			u.LoginName = &loginName.String
		}
		owners = append(owners, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch len(owners) {
	case 0:
		return nil, fmt.Errorf("%s: %w", op, models.ErrNoOwner)
	case 1:
		return owners[0], nil
	default:
		return nil, fmt.Errorf("%s: %w", op, models.ErrAmbiguousOwner)
	}
}

// UpsertOwner создаёт владельца или обновляет уже существующего.
//
// Команда администрирования идемпотентна: повторный запуск меняет
// имя, логин и хэш пароля той же строки, а не создаёт вторую.
func (s *Storage) UpsertOwner(ctx context.Context, name, loginName, passwordHash string) (string, error) {
	const op = "storage.UpsertOwner"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	owner, err := s.GetOwner(ctx)
	if err != nil && !errors.Is(err, models.ErrNoOwner) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if owner != nil {
		query := `UPDATE users SET name = $1, login_name = $2, password_hash = $3 WHERE uid = $4`
		if _, err := s.DB.ExecContext(ctx, query, name, loginName, passwordHash, owner.UID); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return owner.UID, nil
	}

	var newUID string
	query := `INSERT INTO users (name, login_name, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid`
	if err := s.DB.QueryRowContext(ctx, query, name, loginName, passwordHash).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// SetPasswordHash перезаписывает хэш пароля владельца.
func (s *Storage) SetPasswordHash(ctx context.Context, uid, passwordHash string) error {
	const op = "storage.SetPasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET password_hash = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNoOwner)
	}
	return nil
}

// UpdateOwnerName меняет отображаемое имя владельца.
func (s *Storage) UpdateOwnerName(ctx context.Context, uid, name string) error {
	const op = "storage.UpdateOwnerName"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET name = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, name, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNoOwner)
	}
	return nil
}
