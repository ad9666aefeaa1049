package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// TestLoad_Defaults проверяет значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CA_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидался 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидался info", cfg.LogLevel)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("AccessTokenTTL = %v, ожидалось 15m", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 168*time.Hour {
		t.Errorf("RefreshTokenTTL = %v, ожидалось 168h", cfg.RefreshTokenTTL)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, ожидалось 5m", cfg.CacheTTL)
	}
	if cfg.CacheMaxSize != 1024 {
		t.Errorf("CacheMaxSize = %d, ожидался 1024", cfg.CacheMaxSize)
	}
	if cfg.OriginURL != "https://jsonplaceholder.typicode.com" {
		t.Errorf("OriginURL = %q", cfg.OriginURL)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, ожидалась пустая строка (очередь отключена)", cfg.RedisAddr)
	}
}

// TestLoad_MissingSecret проверяет обязательность CA_JWT_SECRET.
func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("CA_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("ожидалась ошибка без CA_JWT_SECRET")
	}
}

// TestLoad_Overrides проверяет чтение значений из окружения.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CA_JWT_SECRET", "test-secret")
	t.Setenv("CA_PORT", "9090")
	t.Setenv("CA_LOG_LEVEL", "debug")
	t.Setenv("CA_ACCESS_TOKEN_TTL", "30m")
	t.Setenv("CA_REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, ожидался 9090", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидался debug", cfg.LogLevel)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Errorf("AccessTokenTTL = %v, ожидалось 30m", cfg.AccessTokenTTL)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}

// TestLoad_BadValues проверяет отклонение некорректных значений.
func TestLoad_BadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Некорректный порт", key: "CA_PORT", value: "not-a-number"},
		{name: "Некорректная длительность", key: "CA_CACHE_TTL", value: "five minutes"},
		{name: "Некорректный уровень логирования", key: "CA_LOG_LEVEL", value: "verbose"},
		{name: "Некорректный формат логов", key: "CA_LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CA_JWT_SECRET", "test-secret")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("ожидалась ошибка для %s=%q", tt.key, tt.value)
			}
		})
	}
}

// TestDatabaseDSN проверяет сборку строки подключения,
// включая экранирование спецсимволов в пароле.
func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.local",
		DBPort:     5433,
		DBName:     "content_api",
		DBUser:     "app",
		DBPassword: "p@ss:word",
	}

	dsn := cfg.DatabaseDSN()
	if !strings.HasPrefix(dsn, "postgres://app:") {
		t.Errorf("dsn = %q", dsn)
	}
	if strings.Contains(dsn, "p@ss:word") {
		t.Error("пароль не экранирован в DSN")
	}
	if !strings.Contains(dsn, "db.local:5433/content_api") {
		t.Errorf("dsn = %q", dsn)
	}
}
