package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage driver names
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage configuration
	StorageDriver string
	AWSRegion     string
	DynamoDBTable string
	GSI1IndexName string // conversation and group-message history
	GSI2IndexName string // recipient-side lookups and received requests
	GSI3IndexName string // sender-side lookups and sent requests

	// Lambda configuration
	IsLambda bool

	// Authentication
	JWTSecret      string
	JWTIssuer      string
	JWTExpiryHours int

	// Rate limiting, requests per minute
	IPRateLimit   int
	UserRateLimit int

	// Logging and features
	LogLevel   string
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StorageDriver: getEnv("STORAGE_DRIVER", StorageDynamoDB),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "howudoin")),
		GSI1IndexName: getEnv("GSI1_INDEX_NAME", "GSI1"),
		GSI2IndexName: getEnv("GSI2_INDEX_NAME", "GSI2"),
		GSI3IndexName: getEnv("GSI3_INDEX_NAME", "GSI3"),

		IsLambda: getEnvBool("IS_LAMBDA", false),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTIssuer:      getEnv("JWT_ISSUER", "howudoin"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		IPRateLimit:   getEnvInt("IP_RATE_LIMIT", 120),
		UserRateLimit: getEnvInt("USER_RATE_LIMIT", 300),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.StorageDriver != StorageDynamoDB && c.StorageDriver != StorageMemory {
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	if c.IsProduction() {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.StorageDriver != StorageDynamoDB {
			return fmt.Errorf("production requires the dynamodb storage driver")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
