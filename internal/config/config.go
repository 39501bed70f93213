package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"PORT" default:"3000"`

	DBHost       string `envconfig:"DB_HOST" default:"localhost"`
	DBUser       string `envconfig:"DB_USER" default:"postgres"`
	DBPassword   string `envconfig:"DB_PASSWORD"`
	DBName       string `envconfig:"DB_NAME" default:"leaveflow"`
	DBPort       string `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxRetries int    `envconfig:"DB_MAX_RETRIES" default:"5"`

	RedisAddr   string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	KafkaBroker string `envconfig:"KAFKA_BROKER" default:"localhost:9092"`

	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"1h"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	CookieSecure   bool          `envconfig:"COOKIE_SECURE" default:"false"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Role given to self-registered accounts. Empty means no role until an admin assigns one.
	SignupDefaultRole        string        `envconfig:"SIGNUP_DEFAULT_ROLE" default:"user"`
	SelfDemotionSignoutDelay time.Duration `envconfig:"SELF_DEMOTION_SIGNOUT_DELAY" default:"2s"`
	TempPasswordLength       int           `envconfig:"TEMP_PASSWORD_LENGTH" default:"16"`
	Timezone                 string        `envconfig:"APP_TIMEZONE" default:"UTC"`

	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"3s"`
	ConsumerGroupID    string        `envconfig:"CONSUMER_GROUP_ID" default:"leaveflow-audit"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.SignupDefaultRole {
	case "", "admin", "user":
	default:
		return fmt.Errorf("SIGNUP_DEFAULT_ROLE must be admin, user or empty, got %q", c.SignupDefaultRole)
	}
	if c.SelfDemotionSignoutDelay < 0 {
		return fmt.Errorf("SELF_DEMOTION_SIGNOUT_DELAY must not be negative")
	}
	if c.TempPasswordLength < 8 {
		return fmt.Errorf("TEMP_PASSWORD_LENGTH must be at least 8")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
