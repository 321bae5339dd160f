package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Typesense   TypesenseConfig
	Geolocation GeolocationConfig
	ProviderAPI ProviderAPIConfig
	Pipeline    PipelineConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string
	Port        int
	Environment string
	LogLevel    string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// GeolocationConfig holds geolocation provider configuration
type GeolocationConfig struct {
	Provider string
	APIKey   string
}

// ProviderAPIConfig holds configuration for the upstream provider feed
type ProviderAPIConfig struct {
	BaseURL  string
	APIKey   string
	PageSize int
}

// PipelineConfig holds the home feed pipeline tunables. These are passed
// explicitly into the pipeline rather than read from ambient state so the
// pipeline stays testable in isolation.
type PipelineConfig struct {
	// ReferenceCity is the canonical location ID whose providers back-fill
	// cities that have no real listings.
	ReferenceCity string
	// CityMatchRadiusKm is the radius used when matching provider GPS
	// coordinates to a catalog city.
	CityMatchRadiusKm float64
	// AutoDetectRadiusKm is the (wider) radius used when resolving a user's
	// device coordinates to a city.
	AutoDetectRadiusKm float64
	// ShowcaseSize is how many showcase profiles are injected into an
	// otherwise empty city.
	ShowcaseSize int
	// MaxPerCity caps how many providers a single city feed returns.
	// Zero means unlimited.
	MaxPerCity int
	// FeedCacheTTLSeconds is how long computed home feeds stay cached.
	FeedCacheTTLSeconds int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "provider_discovery"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Geolocation: GeolocationConfig{
			Provider: getEnv("GEOLOCATION_PROVIDER", "mock"),
			APIKey:   getEnv("GEOLOCATION_API_KEY", ""),
		},
		ProviderAPI: ProviderAPIConfig{
			BaseURL:  getEnv("PROVIDER_API_URL", ""),
			APIKey:   getEnv("PROVIDER_API_KEY", ""),
			PageSize: getEnvAsInt("PROVIDER_API_PAGE_SIZE", 500),
		},
		Pipeline: PipelineConfig{
			ReferenceCity:       getEnv("PIPELINE_REFERENCE_CITY", "yogyakarta"),
			CityMatchRadiusKm:   getEnvAsFloat("PIPELINE_CITY_MATCH_RADIUS_KM", 25),
			AutoDetectRadiusKm:  getEnvAsFloat("PIPELINE_AUTODETECT_RADIUS_KM", 50),
			ShowcaseSize:        getEnvAsInt("PIPELINE_SHOWCASE_SIZE", 5),
			MaxPerCity:          getEnvAsInt("PIPELINE_MAX_PER_CITY", 0),
			FeedCacheTTLSeconds: getEnvAsInt("PIPELINE_FEED_CACHE_TTL", 120),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "provider-discovery"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
