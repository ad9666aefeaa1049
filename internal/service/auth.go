// Пакет service — бизнес-логика поверх репозиториев и внешних клиентов.
// Сервисы не знают про HTTP: принимают и возвращают доменные типы
// и сигнальные ошибки, которые слой handlers маппит в статус-коды.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/content-api/internal/auth"
	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/repository"
	"github.com/bigkaa/content-api/internal/tasks"
)

// Сигнальные ошибки аутентификации.
var (
	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email уже зарегистрирован")
	// ErrInvalidCredentials — неверный email или пароль.
	// Намеренно одна ошибка на оба случая: ответ не должен
	// раскрывать, существует ли учётная запись.
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	// ErrUserDisabled — учётная запись деактивирована.
	ErrUserDisabled = errors.New("учётная запись деактивирована")
)

// AuthService — регистрация и вход пользователей.
type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.TokenService
	notifier tasks.Enqueuer
	logger   *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	notifier tasks.Enqueuer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// Register регистрирует нового пользователя.
// Возвращает ErrEmailTaken, если email уже занят.
// Приветственное письмо ставится в очередь best-effort: отказ очереди
// логируется и не проваливает регистрацию.
func (s *AuthService) Register(ctx context.Context, email, password string, fullName *string) (*model.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("проверка email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	user, err := s.users.Create(ctx, email, fullName, hash, false)
	if err != nil {
		// Гонка двух одновременных регистраций: уникальный индекс
		// в БД — финальный арбитр.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	if err := s.notifier.EnqueueWelcomeEmail(ctx, user.Email, user.FullName); err != nil {
		s.logger.Warn("Не удалось поставить приветственное письмо в очередь",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("Пользователь зарегистрирован",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}

// Login проверяет учётные данные и выпускает пару токенов.
// Возвращает ErrInvalidCredentials при неверном email или пароле
// и ErrUserDisabled для деактивированной учётной записи.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("выпуск токенов: %w", err)
	}

	s.logger.Info("Пользователь вошёл в систему",
		slog.Int64("user_id", user.ID),
	)
	return pair, nil
}
