package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Placeholder secrets that must never reach a running server.
var insecureSecrets = map[string]struct{}{
	"your-secret-key":              {},
	"default-secret-key-change-me": {},
	"change-me":                    {},
	"CHANGE_ME":                    {},
}

type Config struct {
	AppEnv    string `env:"APP_ENV" env-default:"development"`
	GinMode   string `env:"GIN_MODE" env-default:"debug"`
	Port      string `env:"PORT" env-default:"8080"`
	ClientURL string `env:"CLIENT_URL" env-default:"http://localhost:5173"`

	DB  DatabaseConfig
	JWT JWTConfig
	Log LogConfig

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" env-default:"mysql"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"3306"`
	User     string `env:"DB_USER" env-default:"dashboard"`
	Password string `env:"DB_PASSWORD" env-default:"dashboard"`
	Name     string `env:"DB_NAME" env-default:"dashboard"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	// DSN overrides the connection string assembled from the fields above.
	DSN string `env:"DB_DSN"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"168h"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"console"`
}

// Load reads configuration from the environment, after loading an optional .env file.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	secret := strings.TrimSpace(c.JWT.Secret)
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if _, bad := insecureSecrets[secret]; bad {
		return errors.New("JWT_SECRET must not be a placeholder value")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

// IsProduction reports whether the server runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.GinMode == "release"
}

// DatabaseDSN builds the driver specific connection string.
func (c *Config) DatabaseDSN() string {
	if c.DB.DSN != "" {
		return c.DB.DSN
	}

	switch c.DB.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
	case "sqlite":
		return c.DB.Name + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
	}
}
