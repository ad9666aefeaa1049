package service

import (
	"strings"

	"github.com/bigkaa/content-api/internal/domain/model"
)

// SearchPosts фильтрует посты по подстроке без учёта регистра:
// пост проходит, если запрос встречается в заголовке ИЛИ в теле.
// Пустой запрос — отсутствие фильтра: возвращается весь вход.
// Порядок входа сохраняется, вход не модифицируется.
func SearchPosts(posts []model.ExternalPost, query string) []model.ExternalPost {
	if query == "" {
		return posts
	}

	q := strings.ToLower(query)
	result := make([]model.ExternalPost, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Body), q) {
			result = append(result, p)
		}
	}
	return result
}

// PaginatePosts возвращает страницу page (нумерация с 1) размером size
// и общее количество элементов входа. Последняя неполная страница
// усекается; страница за пределами входа — пустой срез, не ошибка.
// total считается от входа целиком: вызывающий сначала фильтрует,
// затем пагинирует, и total отражает отфильтрованное множество.
func PaginatePosts(posts []model.ExternalPost, page, size int) ([]model.ExternalPost, int) {
	total := len(posts)

	start := (page - 1) * size
	if start >= total {
		return []model.ExternalPost{}, total
	}

	end := start + size
	if end > total {
		end = total
	}
	return posts[start:end], total
}
