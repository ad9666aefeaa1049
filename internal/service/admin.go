package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/repository"
)

// ErrUserNotFound — пользователь с указанным идентификатором не существует.
var ErrUserNotFound = errors.New("пользователь не найден")

// UserListResult — страница списка пользователей.
type UserListResult struct {
	Items []*model.User
	Total int
	Page  int
	Limit int
}

// AdminService — административные операции над пользователями.
type AdminService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewAdminService создаёт сервис администрирования.
func NewAdminService(users repository.UserRepository, logger *slog.Logger) *AdminService {
	return &AdminService{
		users:  users,
		logger: logger.With(slog.String("component", "admin_service")),
	}
}

// ListUsers возвращает страницу пользователей с опциональными фильтрами
// по подстроке email и статусу активности. Нумерация страниц с 1.
func (s *AdminService) ListUsers(ctx context.Context, search *string, active *bool, page, limit int) (*UserListResult, error) {
	params := repository.UserListParams{
		Search: search,
		Active: active,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	items, total, err := s.users.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("получение списка пользователей: %w", err)
	}

	return &UserListResult{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// DeactivateUser деактивирует пользователя. Операция односторонняя
// и идемпотентная: повторная деактивация — не ошибка, второй
// возвращаемый флаг сообщает, что пользователь уже был неактивен.
// Возвращает ErrUserNotFound для несуществующего пользователя.
func (s *AdminService) DeactivateUser(ctx context.Context, id int64) (*model.User, bool, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, fmt.Errorf("поиск пользователя %d: %w", id, err)
	}

	if !user.IsActive {
		return user, true, nil
	}

	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, fmt.Errorf("деактивация пользователя %d: %w", id, err)
	}
	user.IsActive = false

	s.logger.Info("Пользователь деактивирован",
		slog.Int64("user_id", id),
	)
	return user, false, nil
}
