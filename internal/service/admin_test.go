package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/repository"
)

// TestAdminService_ListUsers проверяет трансляцию page/limit в offset
// и сборку результата.
func TestAdminService_ListUsers(t *testing.T) {
	users := &mockUserRepo{
		listFunc: func(_ context.Context, params repository.UserListParams) ([]*model.User, int, error) {
			if params.Offset != 20 {
				t.Errorf("Offset = %d, ожидался 20 (страница 3 по 10)", params.Offset)
			}
			if params.Limit != 10 {
				t.Errorf("Limit = %d, ожидался 10", params.Limit)
			}
			if params.Search == nil || *params.Search != "example.com" {
				t.Errorf("Search = %v, ожидался example.com", params.Search)
			}
			return []*model.User{{ID: 21}, {ID: 22}}, 42, nil
		},
	}
	svc := NewAdminService(users, slog.Default())

	search := "example.com"
	result, err := svc.ListUsers(context.Background(), &search, nil, 3, 10)
	if err != nil {
		t.Fatalf("ListUsers ошибка: %v", err)
	}
	if result.Total != 42 {
		t.Errorf("Total = %d, ожидался 42", result.Total)
	}
	if len(result.Items) != 2 {
		t.Errorf("элементов = %d, ожидалось 2", len(result.Items))
	}
	if result.Page != 3 || result.Limit != 10 {
		t.Errorf("Page/Limit = %d/%d, ожидалось 3/10", result.Page, result.Limit)
	}
}

// TestAdminService_DeactivateUser проверяет деактивацию активного
// пользователя.
func TestAdminService_DeactivateUser(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "ivan@example.com", IsActive: true}, nil
		},
		deactivateFunc: func(_ context.Context, _ int64) error {
			return nil
		},
	}
	svc := NewAdminService(users, slog.Default())

	user, already, err := svc.DeactivateUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("DeactivateUser ошибка: %v", err)
	}
	if already {
		t.Error("already = true для активного пользователя")
	}
	if user.IsActive {
		t.Error("пользователь остался активным в ответе")
	}
	if users.deactivateCalls != 1 {
		t.Errorf("Deactivate вызван %d раз, ожидался 1", users.deactivateCalls)
	}
}

// TestAdminService_DeactivateUser_Idempotent проверяет идемпотентность:
// повторная деактивация — не ошибка, UPDATE не выполняется.
func TestAdminService_DeactivateUser_Idempotent(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "ivan@example.com", IsActive: false}, nil
		},
		deactivateFunc: func(_ context.Context, _ int64) error {
			return nil
		},
	}
	svc := NewAdminService(users, slog.Default())

	user, already, err := svc.DeactivateUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("DeactivateUser ошибка: %v", err)
	}
	if !already {
		t.Error("already = false для уже деактивированного пользователя")
	}
	if user == nil || user.IsActive {
		t.Error("ожидался неактивный пользователь в ответе")
	}
	if users.deactivateCalls != 0 {
		t.Errorf("Deactivate вызван %d раз для неактивного пользователя, ожидался 0", users.deactivateCalls)
	}
}

// TestAdminService_DeactivateUser_NotFound проверяет несуществующего
// пользователя.
func TestAdminService_DeactivateUser_NotFound(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(_ context.Context, _ int64) (*model.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAdminService(users, slog.Default())

	_, _, err := svc.DeactivateUser(context.Background(), 999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ошибка = %v, ожидалась ErrUserNotFound", err)
	}
}
