// profile.go — обработчик профиля текущего пользователя.
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/content-api/internal/api/errors"
	"github.com/bigkaa/content-api/internal/api/middleware"
)

// GetProfile — GET /api/v1/profile/me.
// Возвращает профиль аутентифицированного пользователя.
func (h *APIHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
