package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers selectable via Database.Driver
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		// Driver selects the document store backing: memory, mongo or postgres.
		// The memory store is a non-durable mock for development and tests.
		Driver string `yaml:"driver" env:"DB_DRIVER"`

		Mongo struct {
			URI    string `yaml:"uri" env:"MONGO_URI"`
			DBName string `yaml:"dbname" env:"MONGO_DBNAME"`
		} `yaml:"mongo"`

		Postgres struct {
			Host            string `yaml:"host" env:"DB_HOST"`
			Port            string `yaml:"port" env:"DB_PORT"`
			User            string `yaml:"user" env:"DB_USER"`
			Password        string `yaml:"password" env:"DB_PASSWORD"`
			DBName          string `yaml:"dbname" env:"DB_NAME"`
			SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
			MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
			MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		} `yaml:"postgres"`
	} `yaml:"database"`

	CORS struct {
		Origins     string `yaml:"origins" env:"CORS_ORIGINS"`
		Credentials bool   `yaml:"credentials" env:"CORS_CREDENTIALS"`
	} `yaml:"cors"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env values become visible to the env override pass below
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Driver = DriverMemory
	config.Database.Mongo.URI = "mongodb://127.0.0.1:27017"
	config.Database.Mongo.DBName = "edusphere"
	config.Database.Postgres.Host = "localhost"
	config.Database.Postgres.Port = "5432"
	config.Database.Postgres.User = "postgres"
	config.Database.Postgres.Password = "postgres"
	config.Database.Postgres.DBName = "edusphere"
	config.Database.Postgres.SSLMode = "disable"
	config.Database.Postgres.MaxIdleConns = 5
	config.Database.Postgres.MaxOpenConns = 20
	config.Database.Postgres.ConnMaxLifetime = "1h"

	config.CORS.Origins = "http://localhost:3000"
	config.CORS.Credentials = true

	config.Seed.Enabled = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Database.Driver) {
	case DriverMemory:
	case DriverMongo:
		if config.Database.Mongo.URI == "" {
			return fmt.Errorf("mongo URI is required for the mongo driver")
		}
	case DriverPostgres:
		if config.Database.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required for the postgres driver")
		}
		if _, err := time.ParseDuration(config.Database.Postgres.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid connection max lifetime format: %w", err)
		}
	default:
		return fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}

	return nil
}

// CORSOrigins returns the configured origins as a list
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORS.Origins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// PostgresConnMaxLifetime returns the configured connection lifetime,
// falling back to one hour when the value is unset or malformed. Validation
// rejects malformed values for the postgres driver at load time.
func (c *Config) PostgresConnMaxLifetime() time.Duration {
	lifetime, err := time.ParseDuration(c.Database.Postgres.ConnMaxLifetime)
	if err != nil {
		return time.Hour
	}
	return lifetime
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	pg := c.Database.Postgres
	sslMode := pg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		pg.User,
		pg.Password,
		pg.Host,
		pg.Port,
		pg.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(GetEnv(key, ""))
	switch valueStr {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
