package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	Port     string
	Provider string
	MockMode bool

	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string

	SabreBaseURL      string
	SabreClientID     string
	SabreClientSecret string
	SabrePCC          string

	Currency   string
	MaxResults int

	AuthTimeout   time.Duration
	SearchTimeout time.Duration

	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration
}

// Load reads configuration from the environment, loading a .env file first
// if one exists.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "5000"),
		Provider: getEnv("FLIGHT_PROVIDER", "amadeus"),
		MockMode: getEnvBool("MOCK_MODE", false),

		AmadeusBaseURL:      getEnv("AMADEUS_ENVIRONMENT", "https://test.api.amadeus.com"),
		AmadeusClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),

		SabreBaseURL:      getEnv("SABRE_ENVIRONMENT", "https://api.test.sabre.com"),
		SabreClientID:     getEnv("SABRE_CLIENT_ID", ""),
		SabreClientSecret: getEnv("SABRE_CLIENT_SECRET", ""),
		SabrePCC:          getEnv("SABRE_PCC", "IPCC"),

		Currency:   getEnv("CURRENCY", "INR"),
		MaxResults: getEnvInt("MAX_RESULTS", 20),

		AuthTimeout:   getEnvDuration("AUTH_TIMEOUT", 15*time.Second),
		SearchTimeout: getEnvDuration("SEARCH_TIMEOUT", 25*time.Second),

		CacheEnabled: getEnvBool("CACHE_ENABLED", false),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
