// posts.go — обработчики собственных и внешних постов.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/bigkaa/content-api/internal/api/errors"
	"github.com/bigkaa/content-api/internal/api/middleware"
	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/service"
)

// Ограничения пагинации внешних постов.
const (
	defaultPage = 1
	defaultSize = 10
	maxSize     = 100
)

// createPostRequest — тело запроса создания поста.
type createPostRequest struct {
	Title string `json:"title" validate:"required,min=3,max=255"`
	Body  string `json:"body" validate:"required,min=10"`
}

// postResponse — представление собственного поста.
type postResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// externalPostListResponse — страница внешних постов.
type externalPostListResponse struct {
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Size  int                  `json:"size"`
	Posts []model.ExternalPost `json:"posts"`
}

func toPostResponse(p *model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreatePost — POST /api/v1/posts.
// 201 — пост создан от имени текущего пользователя.
func (h *APIHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	var req createPostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.posts.Create(r.Context(), user.ID, req.Title, req.Body)
	if err != nil {
		h.logger.Error("Ошибка создания поста",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// MyPosts — GET /api/v1/posts/my.
// Возвращает посты текущего пользователя, новые первыми.
func (h *APIHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	posts, err := h.posts.MyPosts(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("Ошибка получения постов",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
		return
	}

	result := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, result)
}

// DeletePost — DELETE /api/v1/posts/{id}.
// 204 — удалён; 404 — не существует или принадлежит другому пользователю.
func (h *APIHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			apierrors.NotFound(w, "Пост не найден")
			return
		}
		h.logger.Error("Ошибка удаления поста",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListExternalPosts — GET /api/v1/external-posts?search=&page=&size=.
// Поиск применяется до пагинации: total отражает отфильтрованное
// множество. 502 — внешний API недоступен.
func (h *APIHandler) ListExternalPosts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := queryInt(r, "page", defaultPage, 1, 1<<30)
	size := queryInt(r, "size", defaultSize, 1, maxSize)

	posts, err := h.external.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("Внешний API постов недоступен",
			slog.String("error", err.Error()),
		)
		apierrors.OriginUnavailable(w, "Внешний API постов недоступен")
		return
	}

	filtered := service.SearchPosts(posts, search)
	pageItems, total := service.PaginatePosts(filtered, page, size)

	writeJSON(w, http.StatusOK, externalPostListResponse{
		Total: total,
		Page:  page,
		Size:  size,
		Posts: pageItems,
	})
}

// GetExternalPost — GET /api/v1/external-posts/{id}.
// 404 — пост отсутствует в origin; 502 — origin недоступен.
func (h *APIHandler) GetExternalPost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	post, err := h.external.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExternalPostNotFound) {
			apierrors.NotFound(w, "Пост не найден")
			return
		}
		h.logger.Error("Внешний API постов недоступен",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()),
		)
		apierrors.OriginUnavailable(w, "Внешний API постов недоступен")
		return
	}

	writeJSON(w, http.StatusOK, post)
}
