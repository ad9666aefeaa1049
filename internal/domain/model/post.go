// post.go — модели постов: локальные (таблица posts) и внешние (origin API).
package model

import "time"

// Post — локальный пост, созданный пользователем Content API.
// Изменять и удалять пост может только его владелец.
type Post struct {
	// ID — числовой идентификатор поста (BIGSERIAL)
	ID int64
	// Title — заголовок поста
	Title string
	// Body — текст поста
	Body string
	// UserID — идентификатор владельца
	UserID int64
	// CreatedAt — время создания
	CreatedAt time.Time
}

// ExternalPost — пост из внешнего API (read-only зеркало origin).
// Формат полей соответствует JSONPlaceholder: userId, id, title, body.
// Эта же структура сериализуется в кэш (JSON-снимок).
type ExternalPost struct {
	// UserID — идентификатор автора во внешнем API
	UserID int64 `json:"userId"`
	// ID — идентификатор поста во внешнем API
	ID int64 `json:"id"`
	// Title — заголовок
	Title string `json:"title"`
	// Body — текст
	Body string `json:"body"`
}
