package app

import (
	"context"
	"fmt"

	"github.com/quicknotes/notes-api/internal/config"
	"github.com/quicknotes/notes-api/internal/database"
	"github.com/quicknotes/notes-api/internal/note/gateway"
	"github.com/quicknotes/notes-api/internal/note/repository"
	"github.com/quicknotes/notes-api/internal/storage"
	"github.com/quicknotes/notes-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const mongoConnectAttempts = 5

// connectRedis returns the shared Redis client when either the record store or
// the rate limiter needs it, nil otherwise.
func (a *App) connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	needed := cfg.Stores.Record == config.RecordStoreRedis || (cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis)
	if !needed {
		return nil, nil
	}
	client, err := database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	logger.Infof("connected to Redis at %s", cfg.Redis.Addr())
	return client, nil
}

func (a *App) buildRecordStore(ctx context.Context, cfg *config.Config) (gateway.RecordStore, error) {
	switch cfg.Stores.Record {
	case config.RecordStoreDynamo:
		client, err := database.NewDynamoClient(ctx, cfg.AWS.Region, cfg.AWS.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		return repository.NewDynamoRepo(client, cfg.AWS.DynamoTable), nil
	case config.RecordStoreMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.AWS.DynamoTable)
		return repository.NewMongoRepo(ctx, col)
	case config.RecordStoreRedis:
		return repository.NewRedisRepo(a.redis, cfg.Redis.KeyPrefix), nil
	case config.RecordStoreMemory:
		logger.Warnf("using in-memory record store; notes are lost on restart")
		return repository.NewMemoryRepo(), nil
	}
	return nil, fmt.Errorf("unknown record store %q", cfg.Stores.Record)
}

func buildBlobStore(cfg *config.Config) (gateway.BlobStore, error) {
	switch cfg.Stores.Blob {
	case config.BlobStoreS3:
		return storage.NewS3Storage(&cfg.S3)
	case config.BlobStoreMemory:
		logger.Warnf("using in-memory blob store; attachments are lost on restart")
		return storage.NewMemoryStorage(), nil
	}
	return nil, fmt.Errorf("unknown blob store %q", cfg.Stores.Blob)
}
