package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"shiptrack/internal/core/domain/model/shipment"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrJWTSecretIsRequired is returned by ValidateForServer when JWT_SECRET is empty.
var ErrJWTSecretIsRequired = errors.New("JWT_SECRET is required")

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DBAutoMigrate bool

	JWTSecret        string
	JWTIssuer        string
	JWTTTL           time.Duration
	DevImpersonation bool

	StatusScheme      shipment.Scheme
	StrictTransitions bool

	RateLimit string
	RedisURL  string

	StatusCensusSchedule string

	LogLevel string
	LogFile  string
}

var defaults = map[string]any{
	"HTTP_PORT":              "8080",
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "postgres",
	"DB_PASSWORD":            "postgres",
	"DB_NAME":                "shiptrack",
	"DB_SSLMODE":             "disable",
	"DB_AUTO_MIGRATE":        true,
	"JWT_SECRET":             "",
	"JWT_ISSUER":             "shiptrack",
	"JWT_TTL":                "720h",
	"DEV_IMPERSONATION":      false,
	"STATUS_SCHEME":          "canonical",
	"STRICT_TRANSITIONS":     false,
	"RATE_LIMIT":             "100-M",
	"REDIS_URL":              "",
	"STATUS_CENSUS_SCHEDULE": "@every 1m",
	"LOG_LEVEL":              "info",
	"LOG_FILE":               "",
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set win.
// Call ValidateForServer before serving.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	scheme, err := shipment.ParseScheme(v.GetString("STATUS_SCHEME"))
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:             v.GetString("HTTP_PORT"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSslMode:            v.GetString("DB_SSLMODE"),
		DBAutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		JWTTTL:               v.GetDuration("JWT_TTL"),
		DevImpersonation:     v.GetBool("DEV_IMPERSONATION"),
		StatusScheme:         scheme,
		StrictTransitions:    v.GetBool("STRICT_TRANSITIONS"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		RedisURL:             v.GetString("REDIS_URL"),
		StatusCensusSchedule: v.GetString("STATUS_CENSUS_SCHEDULE"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFile:              v.GetString("LOG_FILE"),
	}

	if config.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive, got %q", v.GetString("JWT_TTL"))
	}

	return config, nil
}

// ValidateForServer checks the settings only the API server needs.
func (c Config) ValidateForServer() error {
	if c.JWTSecret == "" {
		return ErrJWTSecretIsRequired
	}
	return nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
