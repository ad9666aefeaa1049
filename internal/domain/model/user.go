// Пакет model — доменные модели Content API.
// User — маппинг таблицы users (единственный источник правды об учётных записях).
package model

import "time"

// User — учётная запись пользователя.
// Пароль хранится только в виде bcrypt-хэша, plaintext никогда
// не сохраняется и не логируется.
type User struct {
	// ID — числовой идентификатор пользователя (BIGSERIAL)
	ID int64
	// Email — электронная почта (уникальная, проверяется БД)
	Email string
	// FullName — отображаемое имя (опционально)
	FullName *string
	// HashedPassword — bcrypt-хэш пароля
	HashedPassword string
	// IsActive — активна ли учётная запись.
	// Деактивация односторонняя: active → inactive, пути обратно нет.
	IsActive bool
	// IsAdmin — есть ли права администратора
	IsAdmin bool
	// CreatedAt — время регистрации
	CreatedAt time.Time
}
