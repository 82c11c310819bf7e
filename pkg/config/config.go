package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Jira       JiraConfig
	SendGrid   SendGridConfig
	Graph      GraphConfig
	AI         AIConfig
	Automation AutomationConfig
	Detector   DetectorConfig
	Auth       AuthConfig
	Cache      CacheConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
	URLExpiry       time.Duration
}

// JiraConfig holds issue tracker configuration
type JiraConfig struct {
	BaseURL           string
	Email             string
	APIToken          string
	ProjectKey        string
	RequestsPerSecond float64
	Burst             int
}

// SendGridConfig holds transactional email configuration
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	BaseURL   string
}

// GraphConfig holds Microsoft Graph configuration
type GraphConfig struct {
	BaseURL         string
	AccessToken     string
	DefaultTimeZone string
}

// AIConfig selects and configures the summarizer
type AIConfig struct {
	Provider string // "gemini" or "groq"
	Gemini   GeminiConfig
	Groq     GroqConfig
}

// GeminiConfig holds Gemini configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GroqConfig holds Groq configuration
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AutomationConfig holds the reminder webhook configuration
type AutomationConfig struct {
	WebhookURL   string
	WebhookToken string
}

// DetectorConfig holds missing-field detector configuration
type DetectorConfig struct {
	OrganizerEmail string
	Interval       time.Duration
	AlertTTL       time.Duration
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	Enabled      bool
	AccessSecret string
	AccessExpiry time.Duration
}

// CacheConfig holds cache TTLs
type CacheConfig struct {
	ProjectTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meeting_minutes"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-minutes"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			URLExpiry:       getEnvAsDuration("STORAGE_URL_EXPIRY", "168h"),
		},
		Jira: JiraConfig{
			BaseURL:           strings.TrimRight(getEnv("JIRA_BASE_URL", ""), "/"),
			Email:             getEnv("JIRA_EMAIL", ""),
			APIToken:          getEnv("JIRA_API_TOKEN", ""),
			ProjectKey:        getEnv("JIRA_PROJECT_KEY", ""),
			RequestsPerSecond: getEnvAsFloat("JIRA_REQUESTS_PER_SECOND", 5),
			Burst:             getEnvAsInt("JIRA_BURST", 10),
		},
		SendGrid: SendGridConfig{
			APIKey:    getEnv("SENDGRID_API_KEY", ""),
			FromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
			BaseURL:   getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com"),
		},
		Graph: GraphConfig{
			BaseURL:         getEnv("GRAPH_BASE_URL", "https://graph.microsoft.com"),
			AccessToken:     getEnv("GRAPH_ACCESS_TOKEN", ""),
			DefaultTimeZone: getEnv("GRAPH_DEFAULT_TIMEZONE", "Asia/Kolkata"),
		},
		AI: AIConfig{
			Provider: strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
			Gemini: GeminiConfig{
				APIKey:  getEnv("GEMINI_API_KEY", ""),
				Model:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
				BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			},
			Groq: GroqConfig{
				APIKey:  getEnv("GROQ_API_KEY", ""),
				BaseURL: getEnv("GROQ_API_URL", "https://api.groq.com"),
				Model:   getEnv("GROQ_MODEL", "llama-3.1-70b-versatile"),
			},
		},
		Automation: AutomationConfig{
			WebhookURL:   getEnv("WEBHOOK_URL", ""),
			WebhookToken: getEnv("WEBHOOK_TOKEN", ""),
		},
		Detector: DetectorConfig{
			OrganizerEmail: getEnv("ORGANIZER_EMAIL", ""),
			Interval:       getEnvAsDuration("DETECTOR_INTERVAL", "0s"),
			AlertTTL:       getEnvAsDuration("DETECTOR_ALERT_TTL", "24h"),
		},
		Auth: AuthConfig{
			Enabled:      getEnvAsBool("AUTH_ENABLED", false),
			AccessSecret: getEnv("JWT_ACCESS_SECRET", ""),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
		},
		Cache: CacheConfig{
			ProjectTTL: getEnvAsDuration("CACHE_PROJECT_TTL", "10m"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Auth.Enabled && c.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required when AUTH_ENABLED is true")
	}
	switch c.AI.Provider {
	case "gemini", "groq":
	default:
		return fmt.Errorf("AI_PROVIDER must be gemini or groq, got %q", c.AI.Provider)
	}
	if c.Jira.RequestsPerSecond <= 0 {
		return fmt.Errorf("JIRA_REQUESTS_PER_SECOND must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// TaskBoardURL returns the issue tracker board link for a task
func (c *JiraConfig) TaskBoardURL(taskID string) string {
	return fmt.Sprintf("%s/jira/software/projects/%s/list?selectedIssue=%s", c.BaseURL, c.ProjectKey, taskID)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

// getEnvAsSlice splits a comma separated value
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
