package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	UserCollection            string `json:"mongo_user_collection"`
	PassengerCollection       string `json:"mongo_passenger_collection"`
	DriverCollection          string `json:"mongo_driver_collection"`
	VehicleCollection         string `json:"mongo_vehicle_collection"`
	TripCollection            string `json:"mongo_trip_collection"`
	FavoriteAddressCollection string `json:"mongo_favorite_address_collection"`
	CPFVerificationCollection string `json:"mongo_cpf_verification_collection"`

	// JWT configuration
	JWTSecret string        `json:"-"`
	JWTTTL    time.Duration `json:"jwt_ttl"`

	// CPF provider configuration
	CPFProviderBaseURL string        `json:"cpf_provider_base_url"`
	CPFProviderToken   string        `json:"-"`
	CPFProviderTimeout time.Duration `json:"cpf_provider_timeout"`

	// Verification queue configuration
	VerificationWorkers   int `json:"verification_workers"`
	VerificationQueueSize int `json:"verification_queue_size"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	jwtTTL, err := time.ParseDuration(getEnvOrDefault("JWT_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	providerTimeout, err := time.ParseDuration(getEnvOrDefault("CPF_PROVIDER_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("invalid CPF_PROVIDER_TIMEOUT: %w", err)
	}

	workers, err := strconv.Atoi(getEnvOrDefault("VERIFICATION_WORKERS", "4"))
	if err != nil {
		return fmt.Errorf("invalid VERIFICATION_WORKERS: %w", err)
	}

	queueSize, err := strconv.Atoi(getEnvOrDefault("VERIFICATION_QUEUE_SIZE", "256"))
	if err != nil {
		return fmt.Errorf("invalid VERIFICATION_QUEUE_SIZE: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "ride"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		UserCollection:            getEnvOrDefault("MONGODB_USER_COLLECTION", "users"),
		PassengerCollection:       getEnvOrDefault("MONGODB_PASSENGER_COLLECTION", "passengers"),
		DriverCollection:          getEnvOrDefault("MONGODB_DRIVER_COLLECTION", "drivers"),
		VehicleCollection:         getEnvOrDefault("MONGODB_VEHICLE_COLLECTION", "vehicles"),
		TripCollection:            getEnvOrDefault("MONGODB_TRIP_COLLECTION", "trips"),
		FavoriteAddressCollection: getEnvOrDefault("MONGODB_FAVORITE_ADDRESS_COLLECTION", "favorite_addresses"),
		CPFVerificationCollection: getEnvOrDefault("MONGODB_CPF_VERIFICATION_COLLECTION", "cpf_verifications"),

		// JWT configuration
		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,

		// CPF provider configuration
		CPFProviderBaseURL: getEnvOrDefault("CPF_PROVIDER_BASE_URL", "https://apigateway.conectagov.estaleiro.serpro.gov.br/api-cpf-light/v2"),
		CPFProviderToken:   getEnvOrDefault("CPF_PROVIDER_TOKEN", ""),
		CPFProviderTimeout: providerTimeout,

		// Verification queue configuration
		VerificationWorkers:   workers,
		VerificationQueueSize: queueSize,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
