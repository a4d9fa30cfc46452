package config

import "github.com/caarlos0/env/v10"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/portfolio?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"change-me"`
	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
