package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bigkaa/content-api/internal/auth"
	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/repository"
)

// mockUserStore — мок хранилища пользователей.
type mockUserStore struct {
	getByIDFunc func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFunc(ctx, id)
}

func newTestGate(store UserStore) (*AuthGate, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret-key", 15*time.Minute, 168*time.Hour, 30*time.Second)
	return NewAuthGate(tokens, store, slog.Default()), tokens
}

// okHandler отвечает 200 и отмечает, что запрос прошёл через middleware.
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Error(w, "пользователь не в контексте", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// TestAuthGate_NoHeader проверяет отказ без заголовка Authorization.
func TestAuthGate_NoHeader(t *testing.T) {
	gate, _ := newTestGate(&mockUserStore{})
	called := false
	handler := gate.Middleware()(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидался 401", rec.Code)
	}
	if called {
		t.Error("обработчик вызван без токена")
	}
}

// TestAuthGate_MalformedHeader проверяет отказ для некорректных заголовков.
func TestAuthGate_MalformedHeader(t *testing.T) {
	gate, _ := newTestGate(&mockUserStore{})
	called := false
	handler := gate.Middleware()(okHandler(&called))

	headers := []string{
		"Basic dXNlcjpwYXNz",
		"Bearer",
		"Bearer ",
		"garbage-token",
	}
	for _, h := range headers {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
		req.Header.Set("Authorization", h)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("заголовок %q: статус = %d, ожидался 401", h, rec.Code)
		}
	}
}

// TestAuthGate_InvalidToken проверяет отказ для подделанного токена.
func TestAuthGate_InvalidToken(t *testing.T) {
	gate, _ := newTestGate(&mockUserStore{})
	called := false
	handler := gate.Middleware()(okHandler(&called))

	other := auth.NewTokenService("other-secret", 15*time.Minute, 168*time.Hour, 0)
	forged, _ := other.Issue(1, auth.KindAccess)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидался 401", rec.Code)
	}
}

// TestAuthGate_OrphanedToken проверяет токен несуществующего пользователя:
// ответ тот же 401, что и для невалидного токена.
func TestAuthGate_OrphanedToken(t *testing.T) {
	store := &mockUserStore{
		getByIDFunc: func(_ context.Context, _ int64) (*model.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	gate, tokens := newTestGate(store)
	called := false
	handler := gate.Middleware()(okHandler(&called))

	token, _ := tokens.Issue(999, auth.KindAccess)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидался 401", rec.Code)
	}
	if called {
		t.Error("обработчик вызван для осиротевшего токена")
	}
}

// TestAuthGate_DisabledUser проверяет 403 для деактивированной
// учётной записи с валидным токеном.
func TestAuthGate_DisabledUser(t *testing.T) {
	store := &mockUserStore{
		getByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "ivan@example.com", IsActive: false}, nil
		},
	}
	gate, tokens := newTestGate(store)
	called := false
	handler := gate.Middleware()(okHandler(&called))

	token, _ := tokens.Issue(7, auth.KindAccess)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("статус = %d, ожидался 403", rec.Code)
	}
	if called {
		t.Error("обработчик вызван для деактивированного пользователя")
	}
}

// TestAuthGate_Success проверяет успешный проход: пользователь в контексте.
func TestAuthGate_Success(t *testing.T) {
	store := &mockUserStore{
		getByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "ivan@example.com", IsActive: true}, nil
		},
	}
	gate, tokens := newTestGate(store)
	called := false
	handler := gate.Middleware()(okHandler(&called))

	token, _ := tokens.Issue(7, auth.KindAccess)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("статус = %d, ожидался 200", rec.Code)
	}
	if !called {
		t.Error("обработчик не вызван для валидного токена")
	}
}

// TestAuthGate_RequireAdmin проверяет проверку прав администратора.
func TestAuthGate_RequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		wantStatus int
	}{
		{name: "Администратор проходит", isAdmin: true, wantStatus: http.StatusOK},
		{name: "Обычный пользователь получает 403", isAdmin: false, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockUserStore{
				getByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
					return &model.User{ID: id, Email: "ivan@example.com", IsActive: true, IsAdmin: tt.isAdmin}, nil
				},
			}
			gate, tokens := newTestGate(store)
			called := false
			handler := gate.Middleware()(gate.RequireAdmin()(okHandler(&called)))

			token, _ := tokens.Issue(7, auth.KindAccess)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("статус = %d, ожидался %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
