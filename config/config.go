package config

import (
	stderrors "errors"
	"fmt"
	"slices"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"

	IdentityModeDemo     = "demo"
	IdentityModeDatabase = "database"
)

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// Config is read from the environment, after merging a local .env file when
// one exists.
type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"naturekids"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"     default:"localhost"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"1440"`
	} `envconfig:"JWT"`

	Store struct {
		Driver        string `envconfig:"DRIVER"         default:"memory"`
		CatalogSource string `envconfig:"CATALOG_SOURCE" default:"static"`
	} `envconfig:"STORE"`

	Identity struct {
		Mode string `envconfig:"MODE" default:"demo"`
		Demo struct {
			Username string `envconfig:"USERNAME" default:"testuser"`
			Password string `envconfig:"PASSWORD" default:"password"`
		} `envconfig:"DEMO"`
	} `envconfig:"IDENTITY"`

	Payment struct {
		Currency       string   `envconfig:"CURRENCY"        default:"INR"`
		DelayMs        int      `envconfig:"DELAY_MS"        default:"2000"`
		SuccessRate    float64  `envconfig:"SUCCESS_RATE"    default:"1.0"`
		FailureReasons []string `envconfig:"FAILURE_REASONS" default:"card_declined,insufficient_funds,expired_card"`
		TimeoutSeconds int      `envconfig:"TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"PAYMENT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			// Read falls back to the writer when its host is empty.
			Read  PostgresNode `envconfig:"READ"`
			Write PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"        default:"localhost:9092"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"naturekids-notifier"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT" default:"localhost:4317"`
		} `envconfig:"OTEL"`
		S3 struct {
			Enable          bool   `envconfig:"ENABLE"`
			BucketName      string `envconfig:"BUCKET_NAME"       default:"naturekids"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		LLM struct {
			Endpoint       string `envconfig:"ENDPOINT"        default:"https://generativelanguage.googleapis.com/"`
			Model          string `envconfig:"MODEL"           default:"gemini-2.0-flash"`
			APIKey         string `envconfig:"API_KEY"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"15"`
		} `envconfig:"LLM"`
	} `envconfig:"EXTERNAL"`
}

var load = sync.OnceValues(Load)

// Load reads and validates a fresh Config. Most callers want Get.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using the process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Init() error {
	_, err := load()

	return err
}

// Get returns the process-wide Config and exits when it cannot be loaded.
func Get() *Config {
	cfg, err := load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return cfg
}

// Validate rejects mode values no component understands.
func (c *Config) Validate() error {
	var errs []error

	check := func(name, value string, allowed ...string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, fmt.Errorf("%s must be one of %v, got %q", name, allowed, value))
		}
	}

	check("STORE_DRIVER", c.Store.Driver, StoreDriverMemory, StoreDriverPostgres)
	check("STORE_CATALOG_SOURCE", c.Store.CatalogSource, CatalogSourceStatic, CatalogSourcePostgres)
	check("IDENTITY_MODE", c.Identity.Mode, IdentityModeDemo, IdentityModeDatabase)

	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		errs = append(errs, fmt.Errorf("PAYMENT_SUCCESS_RATE must be within [0, 1], got %v", c.Payment.SuccessRate))
	}

	if c.Payment.DelayMs < 0 {
		errs = append(errs, fmt.Errorf("PAYMENT_DELAY_MS must not be negative, got %d", c.Payment.DelayMs))
	}

	return errors.Wrap(stderrors.Join(errs...), "invalid configuration")
}
