package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MigrationsPath string

	BlobStoreURL   string
	BlobStoreToken string

	// Empty key keeps the legacy reversible session encoding; setting it
	// switches the server to the HMAC-signed codec.
	SessionSigningKey string
	FlashKey          string
}

func Load() Config {
	// Missing .env is fine, env vars may come from the environment directly.
	_ = godotenv.Load()

	return Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "charitysite"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		BlobStoreURL:   getEnv("BLOB_STORE_URL", ""),
		BlobStoreToken: getEnv("BLOB_STORE_TOKEN", ""),

		SessionSigningKey: getEnv("SESSION_SIGNING_KEY", ""),
		FlashKey:          getEnv("FLASH_KEY", "charitysite-flash-key"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// DatabaseDSN is the key=value form lib/pq expects.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// DatabaseURL is the URL form golang-migrate expects.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}
