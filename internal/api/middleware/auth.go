// auth.go — middleware аутентификации и авторизации Content API.
// Проверяет bearer-токен, разрешает субъекта в пользователя из БД
// и помещает его в контекст запроса. Причина отказа в 401 намеренно
// не детализируется: просроченный, подделанный и осиротевший токены
// дают один и тот же ответ.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/content-api/internal/api/errors"
	"github.com/bigkaa/content-api/internal/auth"
	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/repository"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// ContextKeyUser — аутентифицированный пользователь в контексте запроса.
const ContextKeyUser contextKey = "auth_user"

// UserStore — контракт разрешения субъекта токена в пользователя.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthGate — страж аутентификации: bearer-токен → пользователь в контексте.
type AuthGate struct {
	tokens *auth.TokenService
	users  UserStore
	logger *slog.Logger
}

// NewAuthGate создаёт middleware аутентификации.
func NewAuthGate(tokens *auth.TokenService, users UserStore, logger *slog.Logger) *AuthGate {
	return &AuthGate{
		tokens: tokens,
		users:  users,
		logger: logger.With(slog.String("component", "auth_gate")),
	}
}

// Middleware возвращает middleware, требующий валидный access-токен.
// Порядок проверок: заголовок → подпись/срок → пользователь в БД → активность.
// 401 — токен отсутствует, невалиден или его субъект не существует;
// 403 — пользователь опознан, но учётная запись деактивирована.
func (g *AuthGate) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				apierrors.Unauthorized(w, "Требуется bearer-токен")
				return
			}

			userID, err := g.tokens.Verify(token)
			if err != nil {
				apierrors.Unauthorized(w, "Невалидный или просроченный токен")
				return
			}

			user, err := g.users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// Токен пережил пользователя — для клиента это
					// тот же невалидный токен.
					apierrors.Unauthorized(w, "Невалидный или просроченный токен")
					return
				}
				g.logger.Error("Ошибка разрешения пользователя по токену",
					slog.Int64("user_id", userID),
					slog.String("error", err.Error()),
				)
				apierrors.InternalError(w, "Внутренняя ошибка сервера")
				return
			}

			if !user.IsActive {
				apierrors.Forbidden(w, "Учётная запись деактивирована")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin возвращает middleware, требующий права администратора.
// Должен стоять после Middleware: пользователь уже в контексте.
func (g *AuthGate) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				apierrors.Unauthorized(w, "Требуется аутентификация")
				return
			}
			if !user.IsAdmin {
				apierrors.Forbidden(w, "Требуются права администратора")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext извлекает аутентифицированного пользователя из контекста.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*model.User)
	return user, ok
}

// extractBearerToken извлекает токен из заголовка Authorization.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
