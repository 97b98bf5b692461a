package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Automation  AutomationConfig
	Delivery    DeliveryConfig
	Tracking    TrackingConfig
	SecretKey   string
	Environment string
	APIEndpoint string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AutomationConfig tunes the scheduler sweep.
type AutomationConfig struct {
	BatchSize      int
	SweepInterval  time.Duration
	WebhookTimeout time.Duration
	// TickerEnabled runs the sweep on an in-process ticker in addition
	// to the cron trigger endpoint.
	TickerEnabled bool
}

// DeliveryConfig tunes the queue worker.
type DeliveryConfig struct {
	BatchSize        int
	MaxAttempts      int
	BackoffBase      time.Duration
	BackoffMax       time.Duration
	StaleAfter       time.Duration
	TransportTimeout time.Duration
	SweepInterval    time.Duration
	TickerEnabled    bool
}

// TrackingConfig tunes open/click tracking.
type TrackingConfig struct {
	MaxOpens int
	// Endpoint is the public base URL pixel and click links point at.
	Endpoint string
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "nexmailer")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Scheduler defaults
	v.SetDefault("AUTOMATION_BATCH_SIZE", 100)
	v.SetDefault("AUTOMATION_SWEEP_INTERVAL", "1m")
	v.SetDefault("AUTOMATION_WEBHOOK_TIMEOUT", "10s")
	v.SetDefault("AUTOMATION_TICKER_ENABLED", false)

	// Delivery defaults
	v.SetDefault("DELIVERY_BATCH_SIZE", 50)
	v.SetDefault("DELIVERY_MAX_ATTEMPTS", 3)
	v.SetDefault("DELIVERY_BACKOFF_BASE", "5m")
	v.SetDefault("DELIVERY_BACKOFF_MAX", "24h")
	v.SetDefault("DELIVERY_STALE_AFTER", "2m")
	v.SetDefault("DELIVERY_TRANSPORT_TIMEOUT", "30s")
	v.SetDefault("DELIVERY_SWEEP_INTERVAL", "30s")
	v.SetDefault("DELIVERY_TICKER_ENABLED", false)

	// Tracking defaults
	v.SetDefault("TRACKING_MAX_OPENS", 5)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	secretKey := v.GetString("SECRET_KEY")
	if secretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	apiEndpoint := v.GetString("API_ENDPOINT")
	if apiEndpoint == "" {
		return nil, fmt.Errorf("API_ENDPOINT is required")
	}

	trackingEndpoint := v.GetString("TRACKING_ENDPOINT")
	if trackingEndpoint == "" {
		trackingEndpoint = apiEndpoint
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Automation: AutomationConfig{
			BatchSize:      v.GetInt("AUTOMATION_BATCH_SIZE"),
			SweepInterval:  v.GetDuration("AUTOMATION_SWEEP_INTERVAL"),
			WebhookTimeout: v.GetDuration("AUTOMATION_WEBHOOK_TIMEOUT"),
			TickerEnabled:  v.GetBool("AUTOMATION_TICKER_ENABLED"),
		},
		Delivery: DeliveryConfig{
			BatchSize:        v.GetInt("DELIVERY_BATCH_SIZE"),
			MaxAttempts:      v.GetInt("DELIVERY_MAX_ATTEMPTS"),
			BackoffBase:      v.GetDuration("DELIVERY_BACKOFF_BASE"),
			BackoffMax:       v.GetDuration("DELIVERY_BACKOFF_MAX"),
			StaleAfter:       v.GetDuration("DELIVERY_STALE_AFTER"),
			TransportTimeout: v.GetDuration("DELIVERY_TRANSPORT_TIMEOUT"),
			SweepInterval:    v.GetDuration("DELIVERY_SWEEP_INTERVAL"),
			TickerEnabled:    v.GetBool("DELIVERY_TICKER_ENABLED"),
		},
		Tracking: TrackingConfig{
			MaxOpens: v.GetInt("TRACKING_MAX_OPENS"),
			Endpoint: trackingEndpoint,
		},
		SecretKey:   secretKey,
		Environment: v.GetString("ENVIRONMENT"),
		APIEndpoint: apiEndpoint,
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
