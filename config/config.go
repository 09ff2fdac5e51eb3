// config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	ServiceToken   string
	AuthMode       string // "gateway" or "jwt"
	JWTSecret      string
	AllowedOrigins []string

	R2AccountID    string
	R2AccessKeyID  string
	R2AccessSecret string
	R2Bucket       string
	CDNBaseURL     string

	AchievementSweepInterval time.Duration
	SeedCatalog              bool
}

const (
	AuthModeGateway = "gateway"
	AuthModeJWT     = "jwt"
)

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	return &Config{
		Port:           getEnv("PORT", "5200"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		ServiceToken:   getEnv("SERVICE_TOKEN", ""),
		AuthMode:       strings.ToLower(getEnv("AUTH_MODE", AuthModeGateway)),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		R2AccountID:    getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
		R2AccessKeyID:  getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessSecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2Bucket:       getEnv("R2_BUCKET_NAME", ""),
		CDNBaseURL:     getEnv("CDN_BASE_URL", ""),

		AchievementSweepInterval: getEnvDuration("ACHIEVEMENT_SWEEP_INTERVAL", time.Hour),
		SeedCatalog:              getEnvBool("SEED_CATALOG", true),
	}
}

// Validate reports missing settings the HTTP server cannot start without.
func (c *Config) Validate() []string {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	switch c.AuthMode {
	case AuthModeGateway:
		if c.ServiceToken == "" {
			missing = append(missing, "SERVICE_TOKEN")
		}
	case AuthModeJWT:
		if c.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}
	default:
		missing = append(missing, "AUTH_MODE (gateway|jwt)")
	}
	return missing
}

// UploadsEnabled is false when no R2 bucket is configured.
func (c *Config) UploadsEnabled() bool {
	return c.R2Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️  invalid bool for %s=%q, using %t", key, v, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	if v == "0" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  invalid duration for %s=%q, using %s", key, v, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
