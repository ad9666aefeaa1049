// Точка входа Content API — сервис управления пользователями и контентом.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// инициализирует кэш, origin-клиент и очередь задач, создаёт сервисный
// слой и API handlers, запускает HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bigkaa/content-api/internal/api/handlers"
	"github.com/bigkaa/content-api/internal/api/middleware"
	"github.com/bigkaa/content-api/internal/auth"
	"github.com/bigkaa/content-api/internal/cache"
	"github.com/bigkaa/content-api/internal/config"
	"github.com/bigkaa/content-api/internal/database"
	"github.com/bigkaa/content-api/internal/originclient"
	"github.com/bigkaa/content-api/internal/repository"
	"github.com/bigkaa/content-api/internal/server"
	"github.com/bigkaa/content-api/internal/service"
	"github.com/bigkaa/content-api/internal/tasks"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Content API запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Репозитории
	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)

	// 6. Токены, кэш, origin-клиент
	tokenSvc := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.JWTLeeway)
	store := cache.NewMemoryStore(cfg.CacheMaxSize, cfg.CacheTTL)
	origin := originclient.New(cfg.OriginURL, cfg.OriginTimeout, logger)

	// 7. Очередь задач (опциональна: без Redis — заглушка)
	var notifier tasks.Enqueuer
	if cfg.RedisAddr != "" {
		notifier = tasks.NewAsynqEnqueuer(cfg.RedisAddr, logger)
		logger.Info("Очередь задач подключена", slog.String("redis_addr", cfg.RedisAddr))
	} else {
		notifier = tasks.NewNopEnqueuer(logger)
		logger.Warn("CA_REDIS_ADDR не задан, очередь задач отключена")
	}
	defer notifier.Close()

	// 8. Сервисный слой
	authSvc := service.NewAuthService(userRepo, tokenSvc, notifier, logger)
	postSvc := service.NewPostService(postRepo, logger)
	externalSvc := service.NewExternalPostService(origin, store, logger)
	adminSvc := service.NewAdminService(userRepo, logger)

	// 9. API handlers и middleware
	gate := middleware.NewAuthGate(tokenSvc, userRepo, logger)
	health := handlers.NewHealthHandler(database.NewReadinessChecker(pool))
	apiHandler := handlers.NewAPIHandler(authSvc, postSvc, externalSvc, adminSvc, gate, health, logger)

	// 10. HTTP-сервер с graceful shutdown
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
