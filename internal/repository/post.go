package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/content-api/internal/domain/model"
)

// postColumns — список столбцов таблицы posts для SELECT-запросов.
const postColumns = `id, title, body, user_id, created_at`

// PostRepository — интерфейс доступа к локальным постам.
type PostRepository interface {
	// Create вставляет новый пост от имени владельца.
	Create(ctx context.Context, userID int64, title, body string) (*model.Post, error)
	// ListByUser возвращает все посты владельца (новые первыми).
	ListByUser(ctx context.Context, userID int64) ([]*model.Post, error)
	// DeleteOwned удаляет пост, только если он принадлежит userID.
	// Отсутствие поста и чужое владение неразличимы — в обоих
	// случаях ErrNotFound (не раскрываем существование чужих постов).
	DeleteOwned(ctx context.Context, id, userID int64) error
}

// postRepo — реализация PostRepository через pgx.
type postRepo struct {
	db DBTX
}

// NewPostRepository создаёт репозиторий постов.
func NewPostRepository(db DBTX) PostRepository {
	return &postRepo{db: db}
}

// Create вставляет пост и возвращает созданную запись.
func (r *postRepo) Create(ctx context.Context, userID int64, title, body string) (*model.Post, error) {
	query := fmt.Sprintf(`
		INSERT INTO posts (title, body, user_id)
		VALUES ($1, $2, $3)
		RETURNING %s`, postColumns)

	p := &model.Post{}
	err := r.db.QueryRow(ctx, query, title, body, userID).Scan(
		&p.ID, &p.Title, &p.Body, &p.UserID, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания поста: %w", err)
	}
	return p, nil
}

// ListByUser возвращает посты владельца, отсортированные по created_at DESC.
func (r *postRepo) ListByUser(ctx context.Context, userID int64) ([]*model.Post, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM posts WHERE user_id = $1 ORDER BY created_at DESC`,
		postColumns,
	)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения постов пользователя: %w", err)
	}
	defer rows.Close()

	var result []*model.Post
	for rows.Next() {
		p := &model.Post{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования поста: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// DeleteOwned удаляет пост с проверкой владения в самом запросе.
// Один DELETE без предварительного SELECT — нет гонки между проверкой и удалением.
func (r *postRepo) DeleteOwned(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления поста: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
