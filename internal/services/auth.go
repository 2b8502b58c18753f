package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/watchlist/internal/lib/password"
	"github.com/magabrotheeeer/watchlist/internal/models"
)

// UserRepository описывает контракт для работы с владельцем в базе данных.
type UserRepository interface {
	// GetOwner возвращает единственного владельца, ErrNoOwner если его нет,
	// ErrAmbiguousOwner если строк больше одной.
	GetOwner(ctx context.Context) (*models.User, error)

	// UpsertOwner идемпотентно создаёт или обновляет владельца.
	UpsertOwner(ctx context.Context, name, loginName, passwordHash string) (string, error)

	// SetPasswordHash перезаписывает хэш пароля владельца.
	SetPasswordHash(ctx context.Context, uid, passwordHash string) error

	// UpdateOwnerName меняет отображаемое имя владельца.
	UpdateOwnerName(ctx context.Context, uid, name string) error
}

// SessionStore описывает контракт серверного хранилища сеансов.
type SessionStore interface {
	// Create сохраняет сеанс и возвращает непрозрачный токен.
	Create(ctx context.Context, session models.Session) (string, error)
	// Get разрешает токен в сеанс, ErrSessionNotFound для неизвестного.
	Get(ctx context.Context, token string) (*models.Session, error)
	// Delete завершает сеанс, идемпотентно.
	Delete(ctx context.Context, token string) error
}

// AuthService отвечает за вход, выход и административную настройку владельца.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

// Login проверяет логин и пароль владельца и открывает сеанс.
//
// При любом несовпадении — нет владельца, не тот логин, не тот пароль —
// возвращается одна и та же ErrInvalidCredentials, не раскрывающая,
// что именно не подошло. ErrAmbiguousOwner пробрасывается как есть:
// это повреждение данных, а не ошибка входа.
func (s *AuthService) Login(ctx context.Context, loginName, rawPassword string) (string, error) {
	const op = "auth.Login"

	owner, err := s.users.GetOwner(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNoOwner) {
			return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if owner.LoginName == nil || *owner.LoginName != loginName {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	if err := password.CompareHash(owner.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.sessions.Create(ctx, models.Session{UID: owner.UID, Name: owner.Name})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("owner logged in", slog.String("uid", owner.UID))
	return token, nil
}

// Logout завершает сеанс по токену. Неизвестный токен не ошибка.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Identity разрешает токен сеанса в личность владельца.
func (s *AuthService) Identity(ctx context.Context, token string) (*models.Session, error) {
	return s.sessions.Get(ctx, token)
}

// Bootstrap идемпотентно создаёт владельца или обновляет его данные:
// отображаемое имя, логин и пароль. Хэширование выполняется здесь,
// исходный пароль дальше этого вызова не распространяется.
func (s *AuthService) Bootstrap(ctx context.Context, name, loginName, rawPassword string) (string, error) {
	const op = "auth.Bootstrap"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	uid, err := s.users.UpsertOwner(ctx, name, loginName, hashed)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("owner account configured", slog.String("uid", uid))
	return uid, nil
}

// SetPassword перезаписывает пароль владельца новым bcrypt-хэшем.
func (s *AuthService) SetPassword(ctx context.Context, uid, rawPassword string) error {
	const op = "auth.SetPassword"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.SetPasswordHash(ctx, uid, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateName меняет отображаемое имя владельца. Имя, ставшее после
// обрезки пробелов пустым или длиннее 20 символов, даёт ErrInvalidInput.
func (s *AuthService) UpdateName(ctx context.Context, uid, name string) error {
	const op = "auth.UpdateName"

	name = strings.TrimSpace(name)
	if name == "" || len(name) > 20 {
		return fmt.Errorf("%s: %w", op, models.ErrInvalidInput)
	}
	if err := s.users.UpdateOwnerName(ctx, uid, name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("owner name updated", slog.String("uid", uid))
	return nil
}
