package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Minio     MinioConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rentguard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MinioConfig struct {
	// Endpoint is the internal address used for upload calls;
	// PublicEndpoint is the browser-facing address used in returned URLs.
	Endpoint       string `env:"MINIO_ENDPOINT,        default=localhost:9000"`
	PublicEndpoint string `env:"MINIO_PUBLIC_ENDPOINT, default=localhost:9000"`
	Bucket         string `env:"MINIO_BUCKET_NAME,     default=rentguard-images"`
	AccessKey      string `env:"MINIO_ROOT_USER,       default=minioadmin"`
	SecretKey      string `env:"MINIO_ROOT_PASSWORD,   default=minioadmin"`
	UseSSL         bool   `env:"MINIO_USE_SSL,         default=false"`
}

type RateLimitConfig struct {
	Requests int64         `env:"RATE_LIMIT_REQUESTS, default=100"`
	Window   time.Duration `env:"RATE_LIMIT_TTL,      default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
