// Package sessions реализует серверное хранилище сеансов владельца на Redis.
//
// Клиент после входа получает непрозрачный токен; в каждом запросе токен
// разрешается в личность владельца через это хранилище без повторной
// проверки пароля. Выход удаляет ключ, истечение сеанса — TTL ключа.
package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/watchlist/internal/config"
	"github.com/magabrotheeeer/watchlist/internal/models"
)

// Store инкапсулирует клиент Redis и время жизни сеанса.
type Store struct {
	Db  *redis.Client
	ttl time.Duration
}

// InitServer подключается к Redis и возвращает хранилище сеансов.
func InitServer(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Store, error) {
	const op = "sessions.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db, ttl: ttl}, nil
}

// Create сохраняет сеанс и возвращает свежий непрозрачный токен.
func (s *Store) Create(ctx context.Context, session models.Session) (string, error) {
	const op = "sessions.Create"

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	jsonData, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.Set(ctx, sessionKey(token), jsonData, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Get разрешает токен в сеанс. Для неизвестного или истёкшего токена
// возвращает models.ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, token string) (*models.Session, error) {
	const op = "sessions.Get"

	val, err := s.Db.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}

// Delete завершает сеанс. Удаление уже отсутствующего токена не ошибка:
// выход идемпотентен.
func (s *Store) Delete(ctx context.Context, token string) error {
	const op = "sessions.Delete"
	if err := s.Db.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Ping проверяет доступность хранилища сеансов.
func (s *Store) Ping(ctx context.Context) error {
	const op = "sessions.Ping"
	if err := s.Db.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}

// newToken возвращает 256 бит случайности в hex — токен непрозрачен
// и не содержит никаких данных о владельце.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
