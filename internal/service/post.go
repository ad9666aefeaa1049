package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/repository"
)

// ErrPostNotFound — пост не существует или принадлежит другому
// пользователю. Случаи намеренно неразличимы: ответ не должен
// раскрывать существование чужих постов.
var ErrPostNotFound = errors.New("пост не найден")

// PostService — управление собственными постами пользователей.
type PostService struct {
	posts  repository.PostRepository
	logger *slog.Logger
}

// NewPostService создаёт сервис постов.
func NewPostService(posts repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{
		posts:  posts,
		logger: logger.With(slog.String("component", "post_service")),
	}
}

// Create создаёт пост от имени пользователя userID.
func (s *PostService) Create(ctx context.Context, userID int64, title, body string) (*model.Post, error) {
	post, err := s.posts.Create(ctx, userID, title, body)
	if err != nil {
		return nil, fmt.Errorf("создание поста: %w", err)
	}

	s.logger.Info("Пост создан",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", userID),
	)
	return post, nil
}

// MyPosts возвращает посты пользователя userID (новые первыми).
func (s *PostService) MyPosts(ctx context.Context, userID int64) ([]*model.Post, error) {
	posts, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение постов пользователя %d: %w", userID, err)
	}
	return posts, nil
}

// Delete удаляет пост id, если он принадлежит userID.
// Возвращает ErrPostNotFound и для отсутствующего, и для чужого поста.
func (s *PostService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.posts.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("удаление поста %d: %w", id, err)
	}

	s.logger.Info("Пост удалён",
		slog.Int64("post_id", id),
		slog.Int64("user_id", userID),
	)
	return nil
}
