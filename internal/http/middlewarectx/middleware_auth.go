// Package middlewarectx содержит HTTP middleware для разрешения сеанса владельца.
//
// SessionMiddleware извлекает непрозрачный токен из заголовка Authorization,
// разрешает его в личность владельца через серверное хранилище сеансов
// и кладёт личность в контекст запроса. Разрешение выполняется один раз
// на запрос, до любого обращения к каталогу; пароль повторно не проверяется.
//
// Запрос без действующего сеанса получает HTTP 401 Unauthorized —
// защищённая мутация до хранилища не доходит.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/watchlist/internal/http/response"
	"github.com/magabrotheeeer/watchlist/internal/lib/sl"
	"github.com/magabrotheeeer/watchlist/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// OwnerUID — ключ для идентификатора владельца в контексте
	OwnerUID Key = "owner_uid"
	// OwnerName — ключ для отображаемого имени владельца в контексте
	OwnerName Key = "owner_name"
	// SessionToken — ключ для токена текущего сеанса в контексте
	SessionToken Key = "session_token"
)

// Service описывает интерфейс разрешения токена сеанса.
type Service interface {
	Identity(ctx context.Context, token string) (*models.Session, error)
}

// SessionMiddleware возвращает HTTP middleware, который проверяет сеанс
// по заголовку Authorization.
//
// Если токен разрешается в действующий сеанс, личность владельца и токен
// добавляются в контекст запроса, иначе возвращается 401 Unauthorized.
func SessionMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := BearerToken(r)
			if !ok {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			session, err := authService.Identity(r.Context(), token)
			if err != nil {
				log.Error("session not resolved", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			ctx := context.WithValue(r.Context(), OwnerUID, session.UID)
			ctx = context.WithValue(ctx, OwnerName, session.Name)
			ctx = context.WithValue(ctx, SessionToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken извлекает токен сеанса из заголовка Authorization.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}
