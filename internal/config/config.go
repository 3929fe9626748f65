package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Queue    QueueConfig
	Auth     AuthConfig
	Analysis AnalysisConfig
	Payment  PaymentConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	RateLimitRPS    int
	RateLimitBurst  int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
}

// QueueConfig holds message queue configuration
type QueueConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Vhost    string
}

// AuthConfig holds session token configuration
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
	// Emails with permanent pro access regardless of subscription state.
	WhitelistedEmails []string
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	OpenAIKey     string
	FFmpegPath    string
	FFprobePath   string
	TempDir       string
	MaxUploadSize int64
	FrameFPS      int
	MaxFrames     int
	// Mock replaces the external model calls with deterministic canned
	// results; used for demos and offline development.
	Mock bool
	// Retention cleanup sweep interval.
	CleanupInterval time.Duration
}

// PaymentConfig holds Dodo payment configuration
type PaymentConfig struct {
	APIKey        string
	Endpoint      string
	WebhookSecret string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.readTimeout", "30s")
	viper.SetDefault("server.writeTimeout", "30s")
	viper.SetDefault("server.shutdownTimeout", "10s")
	viper.SetDefault("server.frontendURL", "http://localhost:3000")
	viper.SetDefault("server.rateLimitRPS", 10)
	viper.SetDefault("server.rateLimitBurst", 20)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "epquotient")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxConns", 25)
	viper.SetDefault("database.minConns", 5)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Storage defaults
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.accessKeyID", "minioadmin")
	viper.SetDefault("storage.secretAccessKey", "minioadmin")
	viper.SetDefault("storage.bucketName", "ep-videos")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.useSSL", false)

	// Queue defaults
	viper.SetDefault("queue.host", "localhost")
	viper.SetDefault("queue.port", 5672)
	viper.SetDefault("queue.user", "guest")
	viper.SetDefault("queue.password", "guest")
	viper.SetDefault("queue.vhost", "/")

	// Auth defaults
	viper.SetDefault("auth.jwtSecret", "")
	viper.SetDefault("auth.sessionTTL", "168h") // 7 days
	viper.SetDefault("auth.whitelistedEmails", []string{})

	// Analysis defaults
	viper.SetDefault("analysis.openAIKey", "")
	viper.SetDefault("analysis.ffmpegPath", "ffmpeg")
	viper.SetDefault("analysis.ffprobePath", "ffprobe")
	viper.SetDefault("analysis.tempDir", "/tmp/epquotient")
	viper.SetDefault("analysis.maxUploadSize", 200*1024*1024) // 200MB
	viper.SetDefault("analysis.frameFPS", 2)
	viper.SetDefault("analysis.maxFrames", 60)
	viper.SetDefault("analysis.mock", false)
	viper.SetDefault("analysis.cleanupInterval", "24h")

	// Payment defaults
	viper.SetDefault("payment.apiKey", "")
	viper.SetDefault("payment.endpoint", "https://api.dodopayments.com")
	viper.SetDefault("payment.webhookSecret", "")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}
