package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/akorchak/docchat-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// External service configurations
	OpenAICfg OpenAIConfig `envPrefix:"OPENAI_"`
	QdrantCfg QdrantConfig `envPrefix:"QDRANT_"`

	// Answering pipeline configuration
	ChatCfg ChatConfig `envPrefix:"CHAT_"`

	// Session store configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Telegram bot configuration (only needed by the bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// OpenAIConfig configures the embedding and completion client.
type OpenAIConfig struct {
	APIKey         string        `env:"API_KEY"`
	BaseURL        string        `env:"BASE_URL"`
	EmbeddingModel string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	ChatModel      string        `env:"CHAT_MODEL" envDefault:"gpt-3.5-turbo"`
	Temperature    float64       `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens      int           `env:"MAX_TOKENS" envDefault:"512"`
	RequestTimeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

// QdrantConfig configures the vector store connector.
type QdrantConfig struct {
	HTTPClientConfig
	Collection string          `env:"COLLECTION" envDefault:"custom-chatgpt"`
	VectorSize int             `env:"VECTOR_SIZE" envDefault:"1536"`
	Retry      pkgRetry.Config `envPrefix:"RETRY_"`
}

// ChatConfig holds the tuning knobs of the answering pipeline.
type ChatConfig struct {
	ChunkMaxLength    int    `env:"CHUNK_MAX_LENGTH" envDefault:"800"`
	TopK              int    `env:"TOP_K" envDefault:"5"`
	HistoryLimit      int    `env:"HISTORY_LIMIT" envDefault:"3"`
	FallbackMinLength int    `env:"FALLBACK_MIN_LENGTH" envDefault:"30"`
	DefaultLanguage   string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}

// SessionConfig selects and tunes the session history backing.
type SessionConfig struct {
	// Backend is "memory" (default) or "postgres".
	Backend string        `env:"BACKEND" envDefault:"memory"`
	TTL     time.Duration `env:"TTL" envDefault:"24h"`

	// Database configuration, used when Backend is "postgres".
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
}

// HTTPClientConfig tunes the outbound HTTP client of a connector.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
	APIKey                string        `env:"API_KEY"`
	Url                   string        `env:"URL" envDefault:"http://localhost:6333"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"52428800"`  // 50 MiB per file
	MaxTotalSize  int64 `env:"MAX_TOTAL_SIZE" envDefault:"104857600"` // 100 MiB per request
	MaxFileCount  int   `env:"MAX_FILE_COUNT" envDefault:"16"`
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"134217728"` // multipart memory ceiling
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.ChatCfg.HistoryLimit < 1 || cfg.ChatCfg.HistoryLimit > 50 {
		return fmt.Errorf("CHAT_HISTORY_LIMIT must be between 1 and 50, got %d", cfg.ChatCfg.HistoryLimit)
	}

	if cfg.ChatCfg.TopK < 1 || cfg.ChatCfg.TopK > 100 {
		return fmt.Errorf("CHAT_TOP_K must be between 1 and 100, got %d", cfg.ChatCfg.TopK)
	}

	if cfg.ChatCfg.ChunkMaxLength < 1 {
		return fmt.Errorf("CHAT_CHUNK_MAX_LENGTH must be positive, got %d", cfg.ChatCfg.ChunkMaxLength)
	}

	if cfg.ChatCfg.FallbackMinLength < 0 {
		return fmt.Errorf("CHAT_FALLBACK_MIN_LENGTH must not be negative, got %d", cfg.ChatCfg.FallbackMinLength)
	}

	switch cfg.SessionCfg.Backend {
	case "memory":
	case "postgres":
		if cfg.SessionCfg.DatabaseURL == "" {
			return fmt.Errorf("SESSION_DATABASE_URL is required when SESSION_BACKEND is postgres")
		}
		if cfg.SessionCfg.DBMaxConns < 1 || cfg.SessionCfg.DBMaxConns > 200 {
			return fmt.Errorf("SESSION_DB_MAX_CONNS must be between 1 and 200, got %d", cfg.SessionCfg.DBMaxConns)
		}
		if cfg.SessionCfg.DBMinConns < 0 || cfg.SessionCfg.DBMinConns > cfg.SessionCfg.DBMaxConns {
			return fmt.Errorf("SESSION_DB_MIN_CONNS must be between 0 and SESSION_DB_MAX_CONNS(%d), got %d",
				cfg.SessionCfg.DBMaxConns, cfg.SessionCfg.DBMinConns)
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory or postgres, got %q", cfg.SessionCfg.Backend)
	}

	if cfg.QdrantCfg.VectorSize < 1 {
		return fmt.Errorf("QDRANT_VECTOR_SIZE must be positive, got %d", cfg.QdrantCfg.VectorSize)
	}

	if !cfg.EnableMocks && cfg.OpenAICfg.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required unless ENABLE_MOCKS is set")
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
