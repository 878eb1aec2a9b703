package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	App     AppConfig
	Store   StoreConfig
	AWS     AWSConfig
	Queue   QueueConfig
	Metrics MetricsConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Env       string `envconfig:"APP_ENV" default:"dev"`
	Port      string `envconfig:"PORT" default:"8080"`
	RunLocal  bool   `envconfig:"RUN_LOCAL" default:"false"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// StoreConfig selects the document store. An empty driver leaves the store
// unconfigured and every data-bearing endpoint answers with an error.
type StoreConfig struct {
	Driver      string `envconfig:"STORE_DRIVER"`
	TablePrefix string `envconfig:"DYNAMODB_TABLE_PREFIX" default:"nwtech_"`
}

type AWSConfig struct {
	Region           string `envconfig:"AWS_REGION" default:"us-east-1"`
	EndpointOverride string `envconfig:"AWS_ENDPOINT_OVERRIDE"`
}

type QueueConfig struct {
	OrdersQueueURL string `envconfig:"ORDERS_QUEUE_URL"`
}

type MetricsConfig struct {
	CloudWatchNamespace string `envconfig:"CLOUDWATCH_NAMESPACE"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case "", DriverDynamoDB, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return &cfg, nil
}

// StoreConfigured reports whether a document store driver was selected.
func (s StoreConfig) StoreConfigured() bool {
	return s.Driver != ""
}

func (a AppConfig) Addr() string {
	return ":" + strings.TrimPrefix(a.Port, ":")
}
