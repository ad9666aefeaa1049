// admin.go — административные обработчики управления пользователями.
// Доступ ограничен middleware RequireAdmin.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/content-api/internal/api/errors"
	"github.com/bigkaa/content-api/internal/service"
)

// userListResponse — страница списка пользователей.
type userListResponse struct {
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Users []userResponse `json:"users"`
}

// deactivateResponse — результат деактивации.
type deactivateResponse struct {
	Detail string       `json:"detail"`
	User   userResponse `json:"user"`
}

// ListUsers — GET /api/v1/admin/users?search=&active=&page=&limit=.
// search — подстрока email (без учёта регистра), active — фильтр
// по статусу активности.
func (h *APIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1, 1, 1<<30)
	limit := queryInt(r, "limit", 20, 1, 100)

	var search *string
	if s := r.URL.Query().Get("search"); s != "" {
		search = &s
	}

	var active *bool
	switch r.URL.Query().Get("active") {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	case "":
		// фильтр не задан
	default:
		apierrors.ValidationError(w, "Параметр active должен быть true или false")
		return
	}

	result, err := h.admin.ListUsers(r.Context(), search, active, page, limit)
	if err != nil {
		h.logger.Error("Ошибка получения списка пользователей",
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
		return
	}

	users := make([]userResponse, 0, len(result.Items))
	for _, u := range result.Items {
		users = append(users, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, userListResponse{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Users: users,
	})
}

// DeactivateUser — POST /api/v1/admin/users/{id}/deactivate.
// Идемпотентна: повторная деактивация возвращает 200 с пометкой.
// 404 — пользователь не существует.
func (h *APIHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	user, already, err := h.admin.DeactivateUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apierrors.NotFound(w, "Пользователь не найден")
			return
		}
		h.logger.Error("Ошибка деактивации пользователя",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
		return
	}

	detail := "Пользователь деактивирован"
	if already {
		detail = "Пользователь уже деактивирован"
	}
	writeJSON(w, http.StatusOK, deactivateResponse{
		Detail: detail,
		User:   toUserResponse(user),
	})
}
