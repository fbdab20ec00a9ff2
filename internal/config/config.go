// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	SensorPush = "push"
	SensorNone = "none"
)

var (
	ErrUnknownStoreDriver = errors.New("unknown STORE_DRIVER (memory, sqlite, postgres or redis)")
	ErrUnknownSensorMode  = errors.New("unknown SENSOR_MODE (push or none)")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required when DEVICE_PIN is set")
)

type Config struct {
	Port string

	StoreDriver string
	SQLitePath  string
	KVTable     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// RedisCache puts the decoded history cache in front of a SQL store.
	RedisCache bool
	// Rate limits are requests per minute per client; 0 disables a budget.
	RateLimit         int
	RateLimitCommands int
	RateLimitSensor   int
	RateLimitPairing  int

	DefaultStepGoal int
	SensorMode      string

	DevicePin string
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	Timezone string
}

// LoadDotEnv preloads variables from .env files. Variables already set in
// the environment win, and missing files are ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreSQLite)),
		SQLitePath:  getEnv("SQLITE_PATH", "activat.db"),
		KVTable:     getEnv("KV_TABLE", "activat_preferences"),

		DBUser:     getEnv("DB_USER", "activat"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "activat"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		RedisCache:    getBoolEnv("REDIS_CACHE", false),

		RateLimit:         getIntEnv("RATE_LIMIT", 0),
		RateLimitCommands: getIntEnv("RATE_LIMIT_COMMANDS", 0),
		RateLimitSensor:   getIntEnv("RATE_LIMIT_SENSOR", 0),
		RateLimitPairing:  getIntEnv("RATE_LIMIT_PAIRING", 0),

		DefaultStepGoal: getIntEnv("DEFAULT_STEP_GOAL", 6000),
		SensorMode:      strings.ToLower(getEnv("SENSOR_MODE", SensorPush)),

		DevicePin: getEnv("DEVICE_PIN", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "activat"),
		JWTTTL:    getDurationEnv("JWT_TTL", 30*24*time.Hour),

		Timezone: getEnv("TIMEZONE", ""),
	}
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.StoreDriver)
	}
	switch c.SensorMode {
	case SensorPush, SensorNone:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSensorMode, c.SensorMode)
	}
	if c.DevicePin != "" && c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// NeedsRedis reports whether any component needs a Redis connection.
func (c Config) NeedsRedis() bool {
	return c.StoreDriver == StoreRedis || c.RedisCache || c.RateLimited()
}

// RateLimited reports whether any request budget is set.
func (c Config) RateLimited() bool {
	return c.RateLimit > 0 || c.RateLimitCommands > 0 || c.RateLimitSensor > 0 || c.RateLimitPairing > 0
}

func (c Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Location resolves TIMEZONE. Empty keeps the process local zone, which is
// what "today" and the session log timestamps are interpreted in.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
