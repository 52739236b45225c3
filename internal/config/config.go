package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	JWT      JWTConfig
	Company  CompanyConfig
	Leave    LeaveConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration string
}

// CompanyConfig holds company-wide attendance policy knobs. The timezone is
// fixed for the whole organization; device instants are converted into it
// regardless of where the server runs. The Saturday override pair is the
// data-driven day-of-week substitution rule for the overnight shift.
type CompanyConfig struct {
	Timezone                string
	Location                *time.Location
	SaturdayOverrideShift   string
	SaturdaySubstituteShift string
}

// LeaveConfig holds the paid-leave policy.
type LeaveConfig struct {
	PerQuarter int
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; env vars take over.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hik-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:     getEnv("JWT_SECRET_KEY", ""),
		Expiration: getEnv("JWT_EXPIRATION_TIME", "12h"),
	}

	// Company policy configuration
	tz := getEnv("COMPANY_TIMEZONE", "Asia/Karachi")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid COMPANY_TIMEZONE %q: %w", tz, err)
	}
	config.Company = CompanyConfig{
		Timezone:                tz,
		Location:                loc,
		SaturdayOverrideShift:   getEnv("SATURDAY_OVERRIDE_SHIFT", ""),
		SaturdaySubstituteShift: getEnv("SATURDAY_SUBSTITUTE_SHIFT", ""),
	}

	leavesPerQuarter, err := strconv.Atoi(getEnv("LEAVES_PER_QUARTER", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVES_PER_QUARTER: %w", err)
	}
	config.Leave = LeaveConfig{PerQuarter: leavesPerQuarter}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Leave.PerQuarter < 0 {
		return fmt.Errorf("LEAVES_PER_QUARTER must not be negative")
	}
	// The override rule is optional, but when one side is set the other
	// must be too.
	if (c.Company.SaturdayOverrideShift == "") != (c.Company.SaturdaySubstituteShift == "") {
		return fmt.Errorf("SATURDAY_OVERRIDE_SHIFT and SATURDAY_SUBSTITUTE_SHIFT must be set together")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
