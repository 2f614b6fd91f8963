package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database configuration
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBPoolSize int

	// Number of concurrent store calls the repository may have in flight
	StoreWorkers int

	// Identity provider configuration
	GoogleClientID     string
	GoogleClientSecret string
	UserInfoURL        string
	UserInfoTimeout    time.Duration

	// Food analysis service configuration
	VisionServiceURL string
	VisionTimeout    time.Duration

	// CORS configuration
	AllowedOrigins []string

	// Logging configuration
	LogFormat string
	LogLevel  string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	// Create and populate config
	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 30)) * time.Second,

		// Database configuration
		DBHost:     getEnvString("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvString("DB_NAME", "dietadvisor"),
		DBPoolSize: getEnvInt("DB_MAX_POOL_SIZE", 20),

		StoreWorkers: getEnvInt("STORE_WORKERS", 5),

		// Identity provider configuration
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		UserInfoURL:        getEnvString("USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo"),
		UserInfoTimeout:    time.Duration(getEnvInt("USERINFO_TIMEOUT", 30)) * time.Second,

		// Food analysis service configuration
		VisionServiceURL: getEnvString("VISION_SERVICE_URL", "http://localhost:5000"),
		VisionTimeout:    time.Duration(getEnvInt("VISION_TIMEOUT", 60)) * time.Second,

		// CORS configuration
		AllowedOrigins: getEnvStringSlice("ALLOWED_ORIGINS", []string{"http://diet.kencs.net"}),

		// Logging configuration
		LogFormat: getEnvString("LOG_FORMAT", "pretty"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// DatabaseURL builds a postgres connection string from the discrete settings
func (c *Config) DatabaseURL() string {
	credentials := ""
	if c.DBUser != "" {
		credentials = url.QueryEscape(c.DBUser)
		if c.DBPassword != "" {
			credentials += ":" + url.QueryEscape(c.DBPassword)
		}
		credentials += "@"
	}
	return fmt.Sprintf("postgres://%s%s:%d/%s?pool_max_conns=%d",
		credentials, c.DBHost, c.DBPort, c.DBName, c.DBPoolSize)
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	// Check if Google OAuth credentials are provided
	if config.GoogleClientID == "" || config.GoogleClientSecret == "" {
		log.Println("Warning: No Google OAuth client credentials provided. Frontend login flows will fail.")
	}

	// Check if database credentials are provided
	if config.DBUser == "" {
		log.Println("Warning: No database user provided. Connecting without credentials.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	return strings.Split(valueStr, ",")
}
