package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials is returned when no telephony credentials are configured
var ErrMissingCredentials = errors.New("TELEPHONY_ACCOUNT_SID and TELEPHONY_AUTH_TOKEN must be set")

// Config holds all configuration for the application
type Config struct {
	Port             string
	AllowedOrigins   []string
	LogLevel         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration

	// Agent roster
	AgentsFile string

	// Telephony API
	TelephonyBaseURL    string
	TelephonyAccountSID string
	TelephonyAuthToken  string
	TelephonyTimeout    time.Duration
	CallLimit           int
	RecordingLimit      int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:                getEnv("PORT", "8080"),
		AllowedOrigins:      strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		AgentsFile:          getEnv("AGENTS_FILE", "agents.json"),
		TelephonyBaseURL:    strings.TrimSuffix(getEnv("TELEPHONY_BASE_URL", "https://api.twilio.com"), "/"),
		TelephonyAccountSID: strings.TrimSpace(os.Getenv("TELEPHONY_ACCOUNT_SID")),
		TelephonyAuthToken:  strings.TrimSpace(os.Getenv("TELEPHONY_AUTH_TOKEN")),
	}

	// No embedded fallback credentials
	if config.TelephonyAccountSID == "" || config.TelephonyAuthToken == "" {
		return nil, ErrMissingCredentials
	}

	var err error
	if config.HTTPReadTimeout, err = getSeconds("HTTP_READ_TIMEOUT", 15); err != nil {
		return nil, err
	}
	if config.HTTPWriteTimeout, err = getSeconds("HTTP_WRITE_TIMEOUT", 30); err != nil {
		return nil, err
	}
	if config.TelephonyTimeout, err = getSeconds("TELEPHONY_TIMEOUT", 10); err != nil {
		return nil, err
	}
	if config.CallLimit, err = getPositiveInt("CALL_LIMIT", 20); err != nil {
		return nil, err
	}
	if config.RecordingLimit, err = getPositiveInt("RECORDING_LIMIT", 10); err != nil {
		return nil, err
	}

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", key, n)
	}
	return n, nil
}

func getSeconds(key string, defaultValue int) (time.Duration, error) {
	n, err := getPositiveInt(key, defaultValue)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}
