// Package config provides configuration management for the bloglist service.
// It loads and validates values from environment variables, with support for
// required variables, default values, and collective error reporting so a
// misconfigured deployment reports every problem at once.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/bloglist-go/apperror"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
)

// Supported values for APP_ENV.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// DatabaseConfig selects and configures the persistence backend.
type DatabaseConfig struct {
	Driver string

	Postgres *PoolConfig
	Mongo    *MongoConfig
	SQLite   *SQLiteConfig

	MigrationsDir string
}

// PoolConfig represents configuration for the PostgreSQL connection pool.
type PoolConfig struct {
	URL      string // Takes precedence over the individual fields when set
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// DSN returns the connection string for the pool.
func (c *PoolConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.DBName,
	)
}

// MongoConfig holds the document store settings.
type MongoConfig struct {
	URI      string
	Database string
}

// SQLiteConfig holds the embedded database settings.
type SQLiteConfig struct {
	Path string
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret  string // Secret key for signing session tokens
	BcryptCost int    // Work factor for password hashes
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// IsTest reports whether the test-only routes should be mounted.
func (s *ServerConfig) IsTest() bool {
	return s.Env == EnvTest
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Auth     *AuthConfig
	Server   *ServerConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set or if parsing fails. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// oneOf appends an error when value is not in allowed.
func oneOf(key, value string, allowed []string, errors *[]string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	*errors = append(*errors, fmt.Sprintf("invalid value for %s: '%s' (allowed: %s)", key, value, strings.Join(allowed, ", ")))
}

// clampPoolSize keeps the pool size between 5 and 100.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database Configuration
	driver := strings.ToLower(getOptionalEnv("DB_DRIVER", DriverPostgres))
	oneOf("DB_DRIVER", driver, []string{DriverPostgres, DriverMongo, DriverSQLite}, &errors)

	dbConfig := &DatabaseConfig{
		Driver:        driver,
		MigrationsDir: getOptionalEnv("MIGRATIONS_DIR", "./migrations"),
	}

	// Only the selected backend's settings are required.
	switch driver {
	case DriverPostgres:
		pool := &PoolConfig{
			URL:     getOptionalEnv("DATABASE_URL", ""),
			Host:    getOptionalEnv("DB_HOST", "localhost"),
			Port:    getOptionalEnvInt("DB_PORT", 5432, &errors),
			MaxSize: clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors),
		}
		if pool.URL == "" {
			pool.User = getRequiredEnv("DB_USER", &errors)
			pool.Password = getRequiredEnv("DB_PASSWORD", &errors)
			pool.DBName = getRequiredEnv("DB_NAME", &errors)
		}
		dbConfig.Postgres = pool
	case DriverMongo:
		dbConfig.Mongo = &MongoConfig{
			URI:      getRequiredEnv("MONGODB_URI", &errors),
			Database: getOptionalEnv("MONGODB_DATABASE", "bloglist"),
		}
	case DriverSQLite:
		dbConfig.SQLite = &SQLiteConfig{
			Path: getOptionalEnv("SQLITE_PATH", "bloglist.db"),
		}
	}

	// Auth Configuration
	authConfig := &AuthConfig{
		JWTSecret:  getRequiredEnv("JWT_SECRET", &errors),
		BcryptCost: getOptionalEnvInt("BCRYPT_COST", bcrypt.DefaultCost, &errors),
	}
	if authConfig.BcryptCost < bcrypt.MinCost || authConfig.BcryptCost > bcrypt.MaxCost {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, authConfig.BcryptCost))
	}

	// Server Configuration
	serverConfig := &ServerConfig{
		Port:     getOptionalEnv("PORT", "3003"),
		Env:      strings.ToLower(getOptionalEnv("APP_ENV", EnvDevelopment)),
		LogLevel: strings.ToLower(getOptionalEnv("LOG_LEVEL", "info")),
	}
	oneOf("APP_ENV", serverConfig.Env, []string{EnvDevelopment, EnvTest, EnvProduction}, &errors)

	if len(errors) > 0 {
		return nil, apperror.NewConfigError("configuration errors:\n- "+strings.Join(errors, "\n- "), nil)
	}

	return &AppConfig{
		Database: dbConfig,
		Auth:     authConfig,
		Server:   serverConfig,
	}, nil
}
