package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	"github.com/yungbote/flashcards-backend/internal/observability"
	"github.com/yungbote/flashcards-backend/internal/platform/envutil"
	"github.com/yungbote/flashcards-backend/internal/platform/hfinference"
)

type InferenceConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	Port           int                      `yaml:"port"`
	LogMode        string                   `yaml:"log_mode"`
	LogRedaction   bool                     `yaml:"log_redaction"`
	LogHashSalt    string                   `yaml:"log_hash_salt"`
	Database       db.Config                `yaml:"database"`
	AutoMigrate    bool                     `yaml:"auto_migrate"`
	Inference      InferenceConfig          `yaml:"inference"`
	CORSOrigins    []string                 `yaml:"cors_allow_origins"`
	MetricsEnabled bool                     `yaml:"metrics_enabled"`
	OTel           observability.OtelConfig `yaml:"otel"`
}

func DefaultConfig() Config {
	return Config{
		Port:         5000,
		LogMode:      "development",
		LogRedaction: true,
		Database: db.Config{
			Driver:   db.DriverMySQL,
			User:     "root",
			Password: "1234",
			Host:     "localhost",
			Name:     "flashcard_app",
			PoolSize: 5,
		},
		AutoMigrate: true,
		Inference: InferenceConfig{
			URL:     hfinference.DefaultURL,
			Timeout: hfinference.DefaultTimeout,
		},
		MetricsEnabled: true,
		OTel: observability.OtelConfig{
			ServiceName: observability.DefaultServiceName,
			SampleRatio: observability.DefaultSampleRatio,
		},
	}
}

// LoadConfig layers the optional YAML file named by path (or CONFIG_FILE)
// over the defaults, then applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) == "" {
		path = envutil.String("CONFIG_FILE", "")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envutil.Int("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.LogRedaction = envutil.Bool("LOG_REDACTION_ENABLED", cfg.LogRedaction)
	cfg.LogHashSalt = envutil.String("LOG_HASH_SALT", cfg.LogHashSalt)

	cfg.Database.Driver = envutil.String("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.User = envutil.String("DB_USER", cfg.Database.User)
	cfg.Database.Password = envutil.String("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Host = envutil.String("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = envutil.Int("DB_PORT", cfg.Database.Port)
	cfg.Database.Name = envutil.String("DB_NAME", cfg.Database.Name)
	cfg.Database.PoolSize = envutil.Int("DB_POOL_SIZE", cfg.Database.PoolSize)
	cfg.Database.DSN = envutil.String("DB_DSN", cfg.Database.DSN)
	cfg.AutoMigrate = envutil.Bool("DB_AUTO_MIGRATE", cfg.AutoMigrate)

	cfg.Inference.Token = envutil.String("HF_TOKEN", cfg.Inference.Token)
	cfg.Inference.URL = envutil.String("HF_API_URL", cfg.Inference.URL)
	cfg.Inference.Timeout = envutil.Seconds("HF_TIMEOUT_SECONDS", cfg.Inference.Timeout)

	cfg.CORSOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.CORSOrigins)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.OTel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.OTel.Enabled)
	cfg.OTel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.OTel.ServiceName)
	cfg.OTel.Environment = envutil.String("APP_ENV", cfg.OTel.Environment)
	cfg.OTel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTel.Endpoint)
	cfg.OTel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.OTel.Insecure)
	if raw, ok := envutil.Lookup("OTEL_EXPORTER_OTLP_HEADERS"); ok {
		cfg.OTel.Headers = observability.ParseHeaders(raw)
	}
	if raw, ok := envutil.Lookup("OTEL_SAMPLER_RATIO"); ok {
		if ratio, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.OTel.SampleRatio = ratio
		}
	}
}

var (
	ErrInvalidPort    = errors.New("port must be between 1 and 65535")
	ErrMissingHFToken = errors.New("HF_TOKEN is required")
)

// Validate checks what the HTTP server needs before it can start.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}
	if _, err := db.Dialector(c.Database); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Inference.Token) == "" {
		errs = append(errs, ErrMissingHFToken)
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
