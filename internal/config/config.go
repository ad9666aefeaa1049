// Пакет config — загрузка и валидация конфигурации Content API
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Content API.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- PostgreSQL ---

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// --- JWT ---

	// Секрет подписи токенов (обязательный)
	JWTSecret string
	// Время жизни access-токена (по умолчанию 15m)
	AccessTokenTTL time.Duration
	// Время жизни refresh-токена (по умолчанию 168h = 7 дней)
	RefreshTokenTTL time.Duration
	// Допуск рассинхронизации часов при проверке exp (по умолчанию 30s)
	JWTLeeway time.Duration

	// --- Кэш внешних постов ---

	// TTL записи кэша (по умолчанию 5m)
	CacheTTL time.Duration
	// Максимальное количество записей (по умолчанию 1024)
	CacheMaxSize int

	// --- Внешний API постов ---

	// Базовый URL origin
	OriginURL string
	// Таймаут запросов к origin (по умолчанию 10s)
	OriginTimeout time.Duration

	// --- Очередь задач ---

	// Адрес Redis для asynq. Пустая строка — очередь отключена.
	RedisAddr string
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// CA_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("CA_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("CA_PORT: %w", err)
	}

	// CA_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("CA_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("CA_LOG_LEVEL: %w", err)
	}

	// CA_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("CA_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("CA_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("CA_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CA_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("CA_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CA_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("CA_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CA_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("CA_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CA_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- PostgreSQL ---

	cfg.DBHost = getEnvDefault("CA_DB_HOST", "localhost")
	cfg.DBPort, err = getEnvInt("CA_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("CA_DB_PORT: %w", err)
	}
	cfg.DBName = getEnvDefault("CA_DB_NAME", "content_api")
	cfg.DBUser = getEnvDefault("CA_DB_USER", "content_api")
	cfg.DBPassword = getEnvDefault("CA_DB_PASSWORD", "")

	// --- JWT ---

	// CA_JWT_SECRET — секрет подписи токенов (обязательный)
	cfg.JWTSecret, err = getEnvRequired("CA_JWT_SECRET")
	if err != nil {
		return nil, err
	}

	cfg.AccessTokenTTL, err = getEnvDuration("CA_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CA_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.RefreshTokenTTL, err = getEnvDuration("CA_REFRESH_TOKEN_TTL", 168*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("CA_REFRESH_TOKEN_TTL: %w", err)
	}
	cfg.JWTLeeway, err = getEnvDuration("CA_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CA_JWT_LEEWAY: %w", err)
	}

	// --- Кэш внешних постов ---

	cfg.CacheTTL, err = getEnvDuration("CA_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CA_CACHE_TTL: %w", err)
	}
	cfg.CacheMaxSize, err = getEnvInt("CA_CACHE_MAX_SIZE", 1024)
	if err != nil {
		return nil, fmt.Errorf("CA_CACHE_MAX_SIZE: %w", err)
	}

	// --- Внешний API постов ---

	cfg.OriginURL = getEnvDefault("CA_ORIGIN_URL", "https://jsonplaceholder.typicode.com")
	cfg.OriginTimeout, err = getEnvDuration("CA_ORIGIN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CA_ORIGIN_TIMEOUT: %w", err)
	}

	// --- Очередь задач ---

	// CA_REDIS_ADDR — адрес Redis (пусто — очередь отключена)
	cfg.RedisAddr = getEnvDefault("CA_REDIS_ADDR", "")

	return cfg, nil
}

// DatabaseDSN собирает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.DBUser),
		url.QueryEscape(c.DBPassword),
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
