package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	URL        string
	ServiceKey string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
	Migrations string
}

type Instagram struct {
	AccessToken string
	UserID      string
	APIBase     string
}

type LinkedIn struct {
	ClientID       string
	ClientSecret   string
	OrganizationID string
	APIBase        string
	TokenURL       string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Config struct {
	ServerPort         int
	Environment        string
	LogLevel           string
	DB                 DB
	Instagram          Instagram
	LinkedIn           LinkedIn
	MinIO              MinIO
	ProviderTimeout    time.Duration
	FeedLimit          int
	SyncFetchLimit     int
	SyncSchedule       string
	SyncJobTimeout     time.Duration
	SyncOnStart        bool
	SyncJWTSecret      string
	RateLimitPerMinute int
}

// IsProduction - в production эндпоинт синхронизации требует заголовок Authorization
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (i Instagram) Configured() bool {
	return i.AccessToken != "" && i.UserID != ""
}

// Configured - для запроса постов организации нужны ключи приложения и id организации
func (l LinkedIn) Configured() bool {
	return l.ClientID != "" && l.ClientSecret != "" && l.OrganizationID != ""
}

func (m MinIO) Enabled() bool {
	return m.Endpoint != ""
}

// DSN - DATABASE_URL с ключом сервиса в качестве пароля,
// либо строка подключения из параметров DB_*, если URL не задан
func (d DB) DSN() (string, error) {
	if d.URL == "" {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			d.DbHOST, d.DbPORT, d.DbUSER, d.DbPASSWORD, d.DbNAME, d.DbSSLMODE,
		), nil
	}

	if d.ServiceKey == "" {
		return d.URL, nil
	}

	u, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("некорректный DATABASE_URL: %w", err)
	}

	username := "postgres"
	if u.User != nil && u.User.Username() != "" {
		username = u.User.Username()
	}
	u.User = url.UserPassword(username, d.ServiceKey)

	return u.String(), nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		URL:        getEnv("DATABASE_URL", ""),
		ServiceKey: getEnv("DATABASE_SERVICE_KEY", ""),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "socialfeed"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
		Migrations: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}

func LoadInstagram() Instagram {
	return Instagram{
		AccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
		UserID:      getEnv("INSTAGRAM_USER_ID", ""),
		APIBase:     getEnv("INSTAGRAM_API_BASE", "https://graph.instagram.com"),
	}
}

func LoadLinkedIn() LinkedIn {
	return LinkedIn{
		ClientID:       getEnv("LINKEDIN_CLIENT_ID", ""),
		ClientSecret:   getEnv("LINKEDIN_CLIENT_SECRET", ""),
		OrganizationID: getEnv("LINKEDIN_ORGANIZATION_ID", ""),
		APIBase:        getEnv("LINKEDIN_API_BASE", "https://api.linkedin.com"),
		TokenURL:       getEnv("LINKEDIN_TOKEN_URL", "https://www.linkedin.com/oauth/v2/accessToken"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", ""),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "feed-snapshots"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:         getEnvAsInt("SERVER_PORT", 8080),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DB:                 LoadDB(),
		Instagram:          LoadInstagram(),
		LinkedIn:           LoadLinkedIn(),
		MinIO:              LoadMinIO(),
		ProviderTimeout:    parseDuration(getEnv("PROVIDER_TIMEOUT", "10s"), 10*time.Second),
		FeedLimit:          getEnvAsInt("FEED_LIMIT", 10),
		SyncFetchLimit:     getEnvAsInt("SYNC_FETCH_LIMIT", 25),
		SyncSchedule:       getEnv("SYNC_SCHEDULE", "@hourly"),
		SyncJobTimeout:     parseDuration(getEnv("SYNC_JOB_TIMEOUT", "2m"), 2*time.Minute),
		SyncOnStart:        getEnvBool("SYNC_ON_START", false),
		SyncJWTSecret:      getEnv("SYNC_JWT_SECRET", ""),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}
