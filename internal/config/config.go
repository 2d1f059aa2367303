package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DevAdminToken is the token used when ADMIN_TOKEN is unset. It is public
// knowledge and must never guard a deployed environment.
const DevAdminToken = "dev-admin-token"

// Config holds application configuration
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	AdminToken      string
	DataDir         string
	PublicDir       string
	ClientStaticDir string

	// Lead sinks, tried in LeadSinks order before the local file.
	LeadSinks       []string
	LeadSinkTimeout time.Duration

	// Google Sheets
	GoogleClientEmail string
	GooglePrivateKey  string
	GoogleSheetID     string
	GoogleSheetTab    string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	LeadsRedisKey string

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	LeadsS3Bucket       string
	LeadsSQSQueueURL    string

	// New-lead alerts
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	LeadAlertEmail    string

	CORSAllowedOrigins []string
	LeadRatePerSec     float64
	LeadRateBurst      int

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

// Load reads configuration from environment variables
func Load() *Config {
	env := getEnv("ENV", getEnv("NODE_ENV", "development"))
	return &Config{
		Port:            getEnv("PORT", "3000"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", ""),
		AdminToken:      getEnv("ADMIN_TOKEN", DevAdminToken),
		DataDir:         getEnv("DATA_DIR", "server/data"),
		PublicDir:       getEnv("PUBLIC_DIR", "public"),
		ClientStaticDir: getEnv("CLIENT_STATIC_DIR", "client/static"),

		LeadSinks:       getEnvAsList("LEAD_SINKS", []string{"sheets", "postgres", "sqs", "s3", "redis"}),
		LeadSinkTimeout: getEnvAsDuration("LEAD_SINK_TIMEOUT", 10*time.Second),

		GoogleClientEmail: getEnv("GOOGLE_CLIENT_EMAIL", ""),
		// Keys pasted into a single-line env var carry literal "\n".
		GooglePrivateKey: strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
		GoogleSheetID:    getEnv("GOOGLE_SHEET_ID", ""),
		GoogleSheetTab:   getEnv("GOOGLE_SHEET_TAB", "Leads"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		LeadsRedisKey: getEnv("LEADS_REDIS_KEY", "leads:inbound"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		LeadsS3Bucket:       getEnv("LEADS_S3_BUCKET", ""),
		LeadsSQSQueueURL:    getEnv("LEADS_SQS_QUEUE_URL", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "BLCK OPS"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		LeadAlertEmail:    getEnv("LEAD_ALERT_EMAIL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		LeadRatePerSec:     getEnvAsFloat("LEAD_RATE_PER_SEC", 0.5),
		LeadRateBurst:      getEnvAsInt("LEAD_RATE_BURST", 5),
		TrustProxy:         getEnvAsBool("TRUST_PROXY", false),
	}
}

// IsDevelopment reports whether the process runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// InsecureAdminToken reports whether the well-known development token is
// guarding a non-development environment.
func (c *Config) InsecureAdminToken() bool {
	return c.AdminToken == DevAdminToken && !c.IsDevelopment()
}

// SheetsConfigured reports whether every Google Sheets credential is present.
func (c *Config) SheetsConfigured() bool {
	return strings.TrimSpace(c.GoogleClientEmail) != "" &&
		strings.TrimSpace(c.GooglePrivateKey) != "" &&
		strings.TrimSpace(c.GoogleSheetID) != ""
}

// AWSNeeded reports whether any AWS-backed component is configured.
func (c *Config) AWSNeeded() bool {
	return c.LeadsS3Bucket != "" || c.LeadsSQSQueueURL != "" ||
		(c.SESFromEmail != "" && c.SendGridAPIKey == "")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
