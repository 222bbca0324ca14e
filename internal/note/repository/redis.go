package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quicknotes/notes-api/internal/note"
	"github.com/redis/go-redis/v9"
)

// RedisRepo stores note records as JSON under "<prefix><note_id>".
// Records never expire.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-based record store. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "note:"
	}
	return &RedisRepo{client: client, prefix: prefix}
}

func (r *RedisRepo) Name() string { return "redis" }

func (r *RedisRepo) key(id string) string {
	return r.prefix + id
}

func (r *RedisRepo) Put(ctx context.Context, rec *note.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(rec.NoteID), b, 0).Err()
}

func (r *RedisRepo) Get(ctx context.Context, id string) (*note.Record, error) {
	b, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, note.ErrNotFound
		}
		return nil, err
	}
	var rec note.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode note %s: %w", id, err)
	}
	return &rec, nil
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
