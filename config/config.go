package config

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string `mapstructure:"APP_ENV" validate:"required"`
	Port int    `mapstructure:"PORT" validate:"gt=0,lt=65536"`

	MongoURI     string `mapstructure:"MONGODB_URI" validate:"required"`
	DatabaseName string `mapstructure:"DATABASE_NAME" validate:"required"`

	JWTSecret             string `mapstructure:"JWT_SECRET" validate:"required"`
	JWTRefreshSecret      string `mapstructure:"JWT_REFRESH_SECRET" validate:"required,nefield=JWTSecret"`
	AccessTokenTTLMinutes int    `mapstructure:"ACCESS_TOKEN_TTL_MINUTES" validate:"gt=0"`
	RefreshTokenTTLDays   int    `mapstructure:"REFRESH_TOKEN_TTL_DAYS" validate:"gt=0"`
	BcryptCost            int    `mapstructure:"BCRYPT_COST" validate:"gte=4,lte=31"`

	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS" validate:"gt=0"`
	AllowedOrigins        string `mapstructure:"ALLOWED_ORIGINS"`
	CookieSecure          bool   `mapstructure:"COOKIE_SECURE"`
	CookieDomain          string `mapstructure:"COOKIE_DOMAIN"`

	OTLPEndpoint     string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TraceSampleRatio float64 `mapstructure:"OTEL_TRACES_SAMPLE_RATIO" validate:"gte=0,lte=1"`

	SeedUsername string `mapstructure:"SEED_USERNAME"`
	SeedPassword string `mapstructure:"SEED_PASSWORD"`
}

var defaults = map[string]any{
	"APP_ENV":                     "dev",
	"PORT":                        8080,
	"MONGODB_URI":                 "mongodb://localhost:27017",
	"DATABASE_NAME":               "taskapi",
	"JWT_SECRET":                  "",
	"JWT_REFRESH_SECRET":          "",
	"ACCESS_TOKEN_TTL_MINUTES":    30,
	"REFRESH_TOKEN_TTL_DAYS":      7,
	"BCRYPT_COST":                 10,
	"REQUEST_TIMEOUT_SECONDS":     5,
	"ALLOWED_ORIGINS":             "",
	"COOKIE_SECURE":               false,
	"COOKIE_DOMAIN":               "",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_TRACES_SAMPLE_RATIO":    1.0,
	"SEED_USERNAME":               "",
	"SEED_PASSWORD":               "",
}

// Load reads an optional .env file, then the process environment, and
// validates the result. Environment variables win over .env values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
		// Unmarshal only sees keys viper knows about.
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLDays) * 24 * time.Hour
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) Origins() map[string]bool {
	allowed := map[string]bool{}
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}
	return allowed
}

func WithTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, duration)
}
