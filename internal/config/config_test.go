package config

import (
	"testing"
	"time"

	"github.com/quicknotes/notes-api/internal/storage"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("DYNAMODB_TABLE", "NotesTable")
	t.Setenv("S3_BUCKET_NAME", "MyNotesBucket")
}

func TestLoadConfig(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "us-west-2", cfg.AWS.Region)
	require.Equal(t, "us-west-2", cfg.S3.Region)
	require.Equal(t, "NotesTable", cfg.AWS.DynamoTable)
	require.Equal(t, "MyNotesBucket", cfg.S3.Bucket)
	require.Equal(t, RecordStoreDynamo, cfg.Stores.Record)
	require.Equal(t, BlobStoreS3, cfg.Stores.Blob)
	require.Equal(t, "s3.amazonaws.com", cfg.S3.Endpoint)
	require.True(t, cfg.S3.UseSSL)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, int64(32), cfg.Server.MaxUploadMB)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, 10.0, cfg.RateLimit.RPS)
	require.Equal(t, 2, cfg.RateLimit.Burst)
	require.False(t, cfg.RateLimit.Enabled)
	require.Empty(t, cfg.APIKey)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("DYNAMODB_TABLE", "")
	t.Setenv("S3_BUCKET_NAME", "MyNotesBucket")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AWS_REGION, DYNAMODB_TABLE")
}

func TestLoadConfigBackends(t *testing.T) {
	setRequired(t)
	t.Setenv("API_PREFIX", "/api/v1/")
	t.Setenv("RECORD_STORE", "Redis")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("BLOB_STORE", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, RecordStoreRedis, cfg.Stores.Record)
	require.Equal(t, BlobStoreMemory, cfg.Stores.Blob)
	require.Equal(t, "/api/v1", cfg.Server.APIPrefix)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestValidateRejectsUnusableBackends(t *testing.T) {
	base := func() *Config {
		return &Config{
			AWS:    AWSConfig{Region: "us-west-2", DynamoTable: "t"},
			S3:     storage.S3Config{Bucket: "b"},
			Stores: StoresConfig{Record: RecordStoreDynamo, Blob: BlobStoreS3},
		}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.Stores.Record = RecordStoreMongo
	require.ErrorContains(t, c.Validate(), "MONGODB_URI")

	c = base()
	c.Stores.Record = RecordStoreRedis
	require.ErrorContains(t, c.Validate(), "REDIS_HOST")

	c = base()
	c.Stores.Record = "cassandra"
	require.ErrorContains(t, c.Validate(), "unknown RECORD_STORE")

	c = base()
	c.Stores.Blob = "gcs"
	require.ErrorContains(t, c.Validate(), "unknown BLOB_STORE")

	c = base()
	c.RateLimit = RateLimitConfig{Enabled: true, UseRedis: true}
	require.ErrorContains(t, c.Validate(), "RATE_LIMIT_USE_REDIS")
}
