package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Env struct {
	AppAddr  string `yaml:"app_addr" env:"APP_ADDR" env-default:":8080"`
	GinMode  string `yaml:"gin_mode" env:"GIN_MODE"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	DBUser     string `yaml:"db_user" env:"DB_USER" env-default:"root"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"127.0.0.1:3306"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-default:"hushryd"`

	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTTTL    time.Duration `yaml:"jwt_ttl" env:"JWT_TTL" env-default:"24h"`

	// Empty RedisAddr disables the Idempotency-Key guard.
	RedisAddr string `yaml:"redis_addr" env:"REDIS_ADDR"`

	// Empty KafkaBrokers disables booking event publishing.
	KafkaBrokers []string `yaml:"kafka_brokers" env:"KAFKA_BROKERS" env-separator:","`
	KafkaTopic   string   `yaml:"kafka_topic" env:"KAFKA_TOPIC" env-default:"booking-events"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// LoadEnv reads config.yaml when present, then lets env vars override it.
func LoadEnv() (Env, error) {
	var env Env
	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &env); err != nil {
			return Env{}, fmt.Errorf("config error: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&env); err != nil {
		return Env{}, fmt.Errorf("config error: %w", err)
	}

	if err := env.Validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Validate rejects settings the server cannot run safely with.
func (e Env) Validate() error {
	if strings.TrimSpace(e.JWTSecret) == "" {
		return errors.New("config error: JWT_SECRET is required")
	}
	return nil
}
