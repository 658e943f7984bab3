package config

import (
	"fmt"
	"os"
	"strconv"
)

// EncryptionKeyLength is the exact key size accepted for stored-field
// encryption (AES-128). The process must not come up with anything else.
const EncryptionKeyLength = 16

type Config struct {
	Port              string
	DatabaseDSN       string
	EncryptionKey     string
	UserManagementURL string
	CollaborationURL  string
	ConsentURL        string
	AMQPURL           string
	QueueName         string
	HTTPTimeout       int // seconds, applied to every outbound identity/validation call
}

func Load() (*Config, error) {
	httpTimeout, err := strconv.Atoi(getEnvWithDefault("HTTP_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %v", err)
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "9193"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		EncryptionKey:     os.Getenv("STORAGE_ENCRYPTION_KEY"),
		UserManagementURL: os.Getenv("USER_MANAGEMENT_URL"),
		CollaborationURL:  os.Getenv("COLLABORATION_URL"),
		ConsentURL:        os.Getenv("CONSENT_URL"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		QueueName:         getEnvWithDefault("NOTIFICATION_QUEUE", "notification_queue"),
		HTTPTimeout:       httpTimeout,
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN environment variable is not set")
	}

	if len(cfg.EncryptionKey) != EncryptionKeyLength {
		return nil, fmt.Errorf("STORAGE_ENCRYPTION_KEY must be exactly %d characters", EncryptionKeyLength)
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
