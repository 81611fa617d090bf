package app

import (
	"os"
	"strings"
)

// Имена переменных окружения.
const (
	EnvHTTPAddr     = "CRM_HTTP_ADDR"
	EnvMetricsAddr  = "CRM_METRICS_ADDR"
	EnvPostgresDSN  = "CRM_POSTGRES_DSN"
	EnvKafkaBrokers = "CRM_KAFKA_BROKERS"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес GraphQL API.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, /healthz, /livez).
	MetricsAddr string
	// PostgresDSN — строка подключения к PostgreSQL.
	// Пустое значение означает in-memory хранилище.
	PostgresDSN string
	// KafkaBrokers — список брокеров через запятую.
	// Пустое значение отключает публикацию событий.
	KafkaBrokers string
}

// DefaultConfig возвращает базовые адреса для API и служебного сервера.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// LoadConfig собирает конфигурацию из переменных окружения,
// подставляя значения по умолчанию для незаданных адресов.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if addr := strings.TrimSpace(os.Getenv(EnvHTTPAddr)); addr != "" {
		cfg.HTTPAddr = addr
	}
	if addr := strings.TrimSpace(os.Getenv(EnvMetricsAddr)); addr != "" {
		cfg.MetricsAddr = addr
	}
	cfg.PostgresDSN = strings.TrimSpace(os.Getenv(EnvPostgresDSN))
	cfg.KafkaBrokers = strings.TrimSpace(os.Getenv(EnvKafkaBrokers))
	return cfg
}
