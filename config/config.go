package config

import (
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the server-side environment configuration. Panel behavior
// (columns, actions, access policy) is configured in code via
// monitor.Options; this covers only the process environment.
type Config struct {
	Port           string        `default:"8080"`
	Environment    string        `default:"development"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	AdminUser      string        `envconfig:"ADMIN_USER" default:"admin"`
	AdminPassword  string        `envconfig:"ADMIN_PASSWORD"`
	CallTimeout    time.Duration `envconfig:"CALL_TIMEOUT" default:"5s"`
	Redis          RedisConfig
}

type RedisConfig struct {
	Host     string `default:"localhost"`
	Port     string `default:"6379"`
	Password string
	DB       int `default:"0"`
}

// Addr joins host and port for the Redis client.
func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
