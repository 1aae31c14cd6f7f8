package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	Credentials Credentials

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users    string
	OTPs     string
	APIKeys  string
	Accounts string
}

// Credentials carries the credential-lifecycle knobs. They are injected into
// the services at construction so tests can shrink TTLs and swap the expiry
// vocabulary without touching process-wide state.
type Credentials struct {
	OTPTTLSeconds    int64
	APIKeyTTLSeconds int64
	// ExpiryOptions maps symbolic duration tags to seconds. 0 is the
	// never-expires sentinel.
	ExpiryOptions map[string]int64
}

// DefaultExpiryOptions returns the fixed tag vocabulary.
func DefaultExpiryOptions() map[string]int64 {
	return map[string]int64{
		"1d":    1 * 24 * 60 * 60,
		"7d":    7 * 24 * 60 * 60,
		"30d":   30 * 24 * 60 * 60,
		"1m":    30 * 24 * 60 * 60,
		"never": 0,
	}
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:    getEnv("DYNAMO_TABLE_USERS", "users"),
			OTPs:     getEnv("DYNAMO_TABLE_OTPS", "otps"),
			APIKeys:  getEnv("DYNAMO_TABLE_APIKEYS", "apikeys"),
			Accounts: getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
		},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "InboxPilot <onboarding@inboxpilot.dev>"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URI", ""),

		Credentials: Credentials{
			OTPTTLSeconds:    getEnvInt64("OTP_TTL_SECONDS", 600),
			APIKeyTTLSeconds: getEnvInt64("API_KEY_TTL_SECONDS", 30*24*60*60),
			ExpiryOptions:    DefaultExpiryOptions(),
		},

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
