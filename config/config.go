package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/mazhu/website/pkg/db"
	"github.com/mazhu/website/pkg/logger"
	"github.com/mazhu/website/pkg/ratelimit"
	"github.com/mazhu/website/pkg/redis"
)

// Stats backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

var (
	ErrInvalidConfig   = errors.New("config: invalid configuration")
	ErrMissingDatabase = errors.New("config: STATS_BACKEND=postgres requires DATABASE_URL")
)

// Config is the full process configuration.
type Config struct {
	Address         string        `env:"ADDRESS" envDefault:":8000" validate:"required"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:8000" validate:"required,http_url"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"zh" validate:"oneof=zh en"`
	StatsBackend    string        `env:"STATS_BACKEND" envDefault:"memory" validate:"oneof=memory postgres"`
	StatsCacheTTL   time.Duration `env:"STATS_CACHE_TTL" envDefault:"5m" validate:"gt=0"`
	MapsEmbedURL    string        `env:"MAPS_EMBED_URL" validate:"omitempty,https_url"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	StaticMaxAge    int           `env:"STATIC_MAX_AGE" envDefault:"86400" validate:"gte=0"`
	TrustProxy      bool          `env:"TRUST_PROXY" envDefault:"false"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`

	RateLimit ratelimit.Config
	Log       logger.Config
	Database  db.Config
	Redis     redis.Config
}

// Load reads an optional .env file, then the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return Parse(env.Options{})
}

// Parse reads the configuration from the environment, or from
// opts.Environment when set, and validates it.
func Parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	// Platforms such as Heroku and Cloud Run only provide PORT.
	port := os.Getenv("PORT")
	if opts.Environment != nil {
		port = opts.Environment["PORT"]
	}
	if port != "" && !isSet(opts, "ADDRESS") {
		cfg.Address = ":" + port
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field rules and cross-field requirements.
func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	if c.StatsBackend == BackendPostgres && !c.Database.Enabled() {
		return ErrMissingDatabase
	}
	for _, origin := range c.CORSAllowOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: CORS origin %q", ErrInvalidConfig, origin)
		}
	}
	return nil
}

// UsePostgres reports whether stats are stored in PostgreSQL.
func (c Config) UsePostgres() bool {
	return c.StatsBackend == BackendPostgres
}

func isSet(opts env.Options, key string) bool {
	if opts.Environment != nil {
		_, ok := opts.Environment[key]
		return ok
	}
	_, ok := os.LookupEnv(key)
	return ok
}
