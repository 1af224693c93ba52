package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	JWTSecret      string
	TokenTTL       time.Duration
	RabbitMQURL    string
	RabbitExchange string
	CargoExpiry    time.Duration
	ExpirySchedule string
	ExpiryBatch    int
	StoreTimeout   time.Duration
	RequestTimeout time.Duration
}

// LoadConfig reads the environment after applying envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	tokenTTL, ttlErr := getDuration("TOKEN_TTL", 24*time.Hour)
	cargoExpiry, expiryErr := getDuration("CARGO_EXPIRY", 72*time.Hour)
	storeTimeout, storeErr := getDuration("STORE_TIMEOUT", 5*time.Second)
	requestTimeout, requestErr := getDuration("REQUEST_TIMEOUT", 10*time.Second)
	expiryBatch, batchErr := getInt("EXPIRY_BATCH", 100)

	config := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "cargo"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       tokenTTL,
		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", "cargo.events"),
		CargoExpiry:    cargoExpiry,
		ExpirySchedule: getEnv("EXPIRY_SCHEDULE", "@every 1m"),
		ExpiryBatch:    expiryBatch,
		StoreTimeout:   storeTimeout,
		RequestTimeout: requestTimeout,
	}

	var secretErr error
	if config.JWTSecret == "" {
		secretErr = errors.New("JWT_SECRET is required")
	}

	if err := errors.Join(ttlErr, expiryErr, storeErr, requestErr, batchErr, secretErr); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN is the PostgreSQL connection string for gorm. StoreTimeout doubles as
// the connect timeout.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode, max(1, int(c.StoreTimeout.Seconds())))
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: %s is not greater than 0", key, d)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
