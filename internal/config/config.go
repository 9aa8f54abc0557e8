package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend names for the durable slot store.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Penny"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		// Backend selects where durable slots live: "file" keeps one
		// JSON file per slot under DataDir, "postgres" uses a shared
		// key/value table.
		Backend string `envconfig:"STORAGE_BACKEND" default:"file"`
		DataDir string `envconfig:"DATA_DIR" default:"./data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"penny"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Auth struct {
		// Secret signs session tokens. Login itself is simulated; the
		// token is what gates the dashboard API.
		Secret   string        `envconfig:"AUTH_SECRET" default:"dev-only-secret"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Insight struct {
		Endpoint string `envconfig:"INSIGHT_ENDPOINT"`
		Token    string `envconfig:"INSIGHT_TOKEN"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Storage.Backend != BackendFile && cfg.Storage.Backend != BackendPostgres {
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	return &cfg, nil
}
