// Утилита create-admin — создание администратора Content API.
// Запускается вручную при развёртывании:
//
//	CA_JWT_SECRET=... create-admin -email admin@example.com -password secret
//
// Подключается к той же БД, что и сервис, применяет миграции
// и создаёт активного пользователя с правами администратора.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/bigkaa/content-api/internal/auth"
	"github.com/bigkaa/content-api/internal/config"
	"github.com/bigkaa/content-api/internal/database"
	"github.com/bigkaa/content-api/internal/repository"
)

func main() {
	email := flag.String("email", "", "email администратора (обязательный)")
	password := flag.String("password", "", "пароль администратора (обязательный, минимум 8 символов)")
	fullName := flag.String("full-name", "", "полное имя (опционально)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	if *email == "" || *password == "" {
		logger.Error("Флаги -email и -password обязательны")
		flag.Usage()
		os.Exit(2)
	}
	if len(*password) < 8 {
		logger.Error("Пароль короче 8 символов")
		os.Exit(2)
	}

	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	users := repository.NewUserRepository(pool)

	// Повторный запуск с тем же email — не ошибка
	if existing, err := users.GetByEmail(ctx, *email); err == nil {
		logger.Info("Пользователь уже существует, ничего не делаю",
			slog.Int64("user_id", existing.ID),
			slog.String("email", existing.Email),
			slog.Bool("is_admin", existing.IsAdmin),
		)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Error("Ошибка проверки email", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Error("Ошибка хэширования пароля", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var namePtr *string
	if *fullName != "" {
		namePtr = fullName
	}

	admin, err := users.Create(ctx, *email, namePtr, hash, true)
	if err != nil {
		logger.Error("Ошибка создания администратора", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Администратор создан",
		slog.Int64("user_id", admin.ID),
		slog.String("email", admin.Email),
	)
}
