package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/tactohq/ingest-backend/internal/pkg/retry"
)

// Config holds the application configuration. Required credentials use
// notEmpty so a missing endpoint or key fails the build step before any
// request is served.
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	VectorStoreCfg VectorStoreConnectorConfig `envPrefix:"WEAVIATE_"`
	ExtractionCfg  ExtractionConnectorConfig  `envPrefix:"EXTRACTION_"`
	StorageCfg     ObjectStorageConfig        `envPrefix:"STORAGE_"`

	// Pipeline tuning
	IngestCfg IngestConfig `envPrefix:"INGEST_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// VectorStoreConnectorConfig configures the Weaviate-compatible store.
// Token is the store's own key (bearer); OpenAIAPIKey is forwarded on
// batch inserts so the store can generate embeddings at insert time.
type VectorStoreConnectorConfig struct {
	HTTPClientConfig
	ClassName    string               `env:"CLASS_NAME" envDefault:"TactoCollection"`
	OpenAIAPIKey string               `env:"OPENAI_API_KEY,notEmpty"`
	EmbedModel   string               `env:"EMBED_MODEL" envDefault:"text-embedding-3-large"`
	BatchSize    int                  `env:"BATCH_SIZE" envDefault:"100"`
	Retry        pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ExtractionConnectorConfig configures the multimodal messages API used
// for PDF and image extraction. Token is sent as the x-api-key header.
type ExtractionConnectorConfig struct {
	HTTPClientConfig
	Model          string               `env:"MODEL" envDefault:"claude-sonnet-4-5"`
	APIVersion     string               `env:"API_VERSION" envDefault:"2023-06-01"`
	DocMaxTokens   int                  `env:"DOC_MAX_TOKENS" envDefault:"4096"`
	ImageMaxTokens int                  `env:"IMAGE_MAX_TOKENS" envDefault:"2048"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ObjectStorageConfig holds S3 credentials for resolving stored file
// IDs to bytes.
type ObjectStorageConfig struct {
	AccessKey string `env:"ACCESS_KEY,notEmpty"`
	SecretKey string `env:"SECRET_KEY,notEmpty"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Bucket    string `env:"BUCKET,notEmpty"`
}

// IngestConfig tunes the chunking window and caps how many chunks one
// file may produce before its upload is refused.
type IngestConfig struct {
	ChunkSize        int `env:"CHUNK_SIZE" envDefault:"220"`
	ChunkOverlap     int `env:"CHUNK_OVERLAP" envDefault:"40"`
	MaxChunksPerFile int `env:"MAX_CHUNKS_PER_FILE" envDefault:"5000"`
}

// FileUploadConfig holds file upload limits.
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"20971520"`   // 20 MiB
	MaxTotalSize  int64 `env:"MAX_TOTAL_SIZE" envDefault:"134217728"` // 128 MiB
	MaxFileCount  int   `env:"MAX_FILE_COUNT" envDefault:"64"`
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB multipart memory
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
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	if cfg.IngestCfg.ChunkSize <= 0 {
		return fmt.Errorf("INGEST_CHUNK_SIZE must be positive, got %d", cfg.IngestCfg.ChunkSize)
	}

	if cfg.IngestCfg.ChunkOverlap < 0 || cfg.IngestCfg.ChunkOverlap >= cfg.IngestCfg.ChunkSize {
		return fmt.Errorf("INGEST_CHUNK_OVERLAP must be in [0, INGEST_CHUNK_SIZE), got %d", cfg.IngestCfg.ChunkOverlap)
	}

	if cfg.VectorStoreCfg.BatchSize < 1 {
		return fmt.Errorf("WEAVIATE_BATCH_SIZE must be positive, got %d", cfg.VectorStoreCfg.BatchSize)
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
