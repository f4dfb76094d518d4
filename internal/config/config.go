package config

import (
	"fmt"
	"os"
	"strings"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	// RabbitMQ（未設定なら通知はNoop）
	RabbitHost string
	RabbitPort string
	RabbitUser string
	RabbitPass string

	GoEnv string // dev/prod
}

// Loadは環境変数から読む
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RabbitHost: os.Getenv("RABBITMQ_HOST"),
		RabbitPort: getenv("RABBITMQ_PORT", "5672"),
		RabbitUser: getenv("RABBITMQ_USER", "guest"),
		RabbitPass: getenv("RABBITMQ_PASSWORD", "guest"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	// PORTは":8080"形式でも受ける（addrを組むときにコロンを付け直す）
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
