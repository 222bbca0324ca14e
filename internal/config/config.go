package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/quicknotes/notes-api/internal/storage"
	"github.com/spf13/viper"
)

// Record and blob backend names accepted in RECORD_STORE / BLOB_STORE.
const (
	RecordStoreDynamo = "dynamodb"
	RecordStoreMongo  = "mongo"
	RecordStoreRedis  = "redis"
	RecordStoreMemory = "memory"

	BlobStoreS3     = "s3"
	BlobStoreMemory = "memory"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	AWS       AWSConfig
	Stores    StoresConfig
	S3        storage.S3Config
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	APIKey    string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	APIPrefix    string
	MaxUploadMB  int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AWSConfig struct {
	Region         string
	DynamoTable    string
	DynamoEndpoint string
}

type StoresConfig struct {
	Record string
	Blob   string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// LoadConfig loads configuration from environment variables and an optional
// .env file. Missing required settings are reported as an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("MAX_UPLOAD_MB", 32)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("RECORD_STORE", RecordStoreDynamo)
	v.SetDefault("BLOB_STORE", BlobStoreS3)
	v.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
	v.SetDefault("S3_USE_SSL", true)
	v.SetDefault("MONGODB_DATABASE", "notes")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_KEY_PREFIX", "note:")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 2)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			APIPrefix:    strings.TrimRight(v.GetString("API_PREFIX"), "/"),
			MaxUploadMB:  v.GetInt64("MAX_UPLOAD_MB"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		AWS: AWSConfig{
			Region:         v.GetString("AWS_REGION"),
			DynamoTable:    v.GetString("DYNAMODB_TABLE"),
			DynamoEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		},
		Stores: StoresConfig{
			Record: strings.ToLower(v.GetString("RECORD_STORE")),
			Blob:   strings.ToLower(v.GetString("BLOB_STORE")),
		},
		S3: storage.S3Config{
			Endpoint:     v.GetString("S3_ENDPOINT"),
			Region:       v.GetString("AWS_REGION"),
			AccessKey:    v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey:    v.GetString("AWS_SECRET_ACCESS_KEY"),
			SessionToken: v.GetString("AWS_SESSION_TOKEN"),
			UseSSL:       v.GetBool("S3_USE_SSL"),
			Bucket:       v.GetString("S3_BUCKET_NAME"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		APIKey: v.GetString("API_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing required settings and unusable backend selections.
func (c *Config) Validate() error {
	var missing []string
	for name, val := range map[string]string{
		"AWS_REGION":     c.AWS.Region,
		"DYNAMODB_TABLE": c.AWS.DynamoTable,
		"S3_BUCKET_NAME": c.S3.Bucket,
	} {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("environment variables required: %s", strings.Join(missing, ", "))
	}

	switch c.Stores.Record {
	case RecordStoreDynamo, RecordStoreMemory:
	case RecordStoreMongo:
		if c.MongoDB.URI == "" {
			return fmt.Errorf("RECORD_STORE=mongo requires MONGODB_URI")
		}
	case RecordStoreRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("RECORD_STORE=redis requires REDIS_HOST")
		}
	default:
		return fmt.Errorf("unknown RECORD_STORE %q", c.Stores.Record)
	}

	switch c.Stores.Blob {
	case BlobStoreS3, BlobStoreMemory:
	default:
		return fmt.Errorf("unknown BLOB_STORE %q", c.Stores.Blob)
	}

	if c.RateLimit.Enabled && c.RateLimit.UseRedis && c.Redis.Host == "" {
		return fmt.Errorf("RATE_LIMIT_USE_REDIS requires REDIS_HOST")
	}
	return nil
}
