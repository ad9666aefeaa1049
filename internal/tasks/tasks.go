// Пакет tasks — постановка фоновых задач в очередь через asynq (Redis).
// Очередь опциональна: при пустом CA_REDIS_ADDR используется NopEnqueuer,
// и регистрация пользователей работает без Redis.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Типы задач.
const (
	// TypeWelcomeEmail — приветственное письмо новому пользователю.
	TypeWelcomeEmail = "email:welcome"
)

// WelcomeEmailPayload — полезная нагрузка задачи приветственного письма.
type WelcomeEmailPayload struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
}

// Enqueuer — контракт постановки задач в очередь.
// Постановка best-effort: вызывающий слой логирует ошибку
// и не проваливает основную операцию.
type Enqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, email string, fullName *string) error
	Close() error
}

// AsynqEnqueuer — Enqueuer поверх asynq-клиента.
type AsynqEnqueuer struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewAsynqEnqueuer создаёт клиент очереди задач.
// redisAddr — адрес Redis (CA_REDIS_ADDR).
func NewAsynqEnqueuer(redisAddr string, logger *slog.Logger) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		logger: logger.With(slog.String("component", "task_enqueuer")),
	}
}

// EnqueueWelcomeEmail ставит в очередь задачу приветственного письма.
func (e *AsynqEnqueuer) EnqueueWelcomeEmail(ctx context.Context, email string, fullName *string) error {
	payload, err := json.Marshal(WelcomeEmailPayload{Email: email, FullName: fullName})
	if err != nil {
		return fmt.Errorf("сериализация задачи %s: %w", TypeWelcomeEmail, err)
	}

	task := asynq.NewTask(TypeWelcomeEmail, payload,
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	)

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("постановка задачи %s в очередь: %w", TypeWelcomeEmail, err)
	}

	e.logger.Debug("Задача поставлена в очередь",
		slog.String("type", TypeWelcomeEmail),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue),
	)
	return nil
}

// Close закрывает соединение с Redis.
func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}

// NopEnqueuer — заглушка очереди для запуска без Redis.
// Задачи не ставятся, каждая попытка логируется на уровне DEBUG.
type NopEnqueuer struct {
	logger *slog.Logger
}

// NewNopEnqueuer создаёт заглушку очереди.
func NewNopEnqueuer(logger *slog.Logger) *NopEnqueuer {
	return &NopEnqueuer{
		logger: logger.With(slog.String("component", "task_enqueuer")),
	}
}

// EnqueueWelcomeEmail ничего не ставит в очередь.
func (e *NopEnqueuer) EnqueueWelcomeEmail(_ context.Context, email string, _ *string) error {
	e.logger.Debug("Очередь задач отключена, задача пропущена",
		slog.String("type", TypeWelcomeEmail),
		slog.String("email", email),
	)
	return nil
}

// Close для заглушки — no-op.
func (e *NopEnqueuer) Close() error {
	return nil
}
