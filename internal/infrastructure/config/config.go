package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// AdminEmails are allowed to claim the super-admin role.
	AdminEmails []string `env:"ADMIN_EMAILS, delimiter=;"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Metrics MetricsConfig
	AI      AIConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gestor_confeitaria"`
}

type RedisConfig struct {
	// Addr empty means no shared cache: the in-process store serves alone.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type CacheConfig struct {
	MaxEntries int `env:"CACHE_MAX_ENTRIES, default=1000"`
}

type MetricsConfig struct {
	BufferSize    int `env:"METRICS_BUFFER_SIZE,    default=100"`
	FlushSeconds  int `env:"METRICS_FLUSH_SECONDS,  default=60"`
	RetentionDays int `env:"METRICS_RETENTION_DAYS, default=30"`
}

type AIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"OPENAI_MODEL, default=gpt-4o-mini"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
