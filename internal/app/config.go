package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/warehouse/internal/messaging/kafka"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	MetricsAddr   string
	StorageDriver string
	PostgresDSN   string
	KafkaBrokers  string
	EventsTopic   string
	DLQTopic      string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию: in-memory хранилище,
// метрики на :9090, Kafka выключен.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:        ":9090",
		StorageDriver:      StorageDriverMemory,
		EventsTopic:        kafka.TopicWarehouseEvents,
		DLQTopic:           kafka.TopicDeadLetterQueue,
		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  3,
		OutboxRetryDelay:   50 * time.Millisecond,
	}
}

// ReadConfig формирует конфигурацию, позволяя переопределить значения
// через переменные окружения с префиксом WMS_.
func ReadConfig() Config {
	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv("WMS_METRICS_ADDR")); v != "" {
		cfg.MetricsAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("WMS_STORAGE")); v != "" {
		cfg.StorageDriver = v
	}
	if v := strings.TrimSpace(os.Getenv("WMS_POSTGRES_DSN")); v != "" {
		cfg.PostgresDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("WMS_KAFKA_BROKERS")); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := strings.TrimSpace(os.Getenv("WMS_EVENTS_TOPIC")); v != "" {
		cfg.EventsTopic = v
	}
	if v := strings.TrimSpace(os.Getenv("WMS_DLQ_TOPIC")); v != "" {
		cfg.DLQTopic = v
	}
	if d, ok := readDuration("WMS_OUTBOX_POLL_INTERVAL"); ok {
		cfg.OutboxPollInterval = d
	}
	if n, ok := readInt("WMS_OUTBOX_BATCH_SIZE"); ok {
		cfg.OutboxBatchSize = n
	}
	if n, ok := readInt("WMS_OUTBOX_MAX_ATTEMPTS"); ok {
		cfg.OutboxMaxAttempts = n
	}
	if d, ok := readDuration("WMS_OUTBOX_RETRY_DELAY"); ok {
		cfg.OutboxRetryDelay = d
	}
	return cfg
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("storage driver %q requires WMS_POSTGRES_DSN", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unsupported storage driver: %q (use %s|%s)",
			c.StorageDriver, StorageDriverMemory, StorageDriverPostgres)
	}
	return nil
}

func readDuration(name string) (time.Duration, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func readInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
