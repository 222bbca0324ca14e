package repository

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/quicknotes/notes-api/internal/note"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepo_PutGet(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepo(client, "test:note:")
	ctx := context.Background()

	key := "notes/n1/dummy.txt"
	require.NoError(t, repo.Put(ctx, &note.Record{NoteID: "n1", Title: "File", Content: "with", S3Key: &key}))
	require.NoError(t, repo.Put(ctx, &note.Record{NoteID: "n2", Title: "JSON", Content: "only"}))

	got, err := repo.Get(ctx, "n1")
	require.NoError(t, err)
	require.Equal(t, "File", got.Title)
	require.NotNil(t, got.S3Key)
	require.Equal(t, key, *got.S3Key)

	got2, err := repo.Get(ctx, "n2")
	require.NoError(t, err)
	require.Nil(t, got2.S3Key)

	// stored under the prefixed key with the wire field names
	raw, err := m.Get("test:note:n2")
	require.NoError(t, err)
	require.JSONEq(t, `{"note_id":"n2","title":"JSON","content":"only","s3_key":null}`, raw)
	require.Zero(t, m.TTL("test:note:n2"))

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, note.ErrNotFound)
	require.NoError(t, repo.Ping(ctx))
}

func TestRedisRepo_BackendFailure(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	repo := NewRedisRepo(client, "")
	m.Close()

	ctx := context.Background()
	require.Error(t, repo.Put(ctx, &note.Record{NoteID: "n1", Title: "t", Content: "c"}))
	_, err = repo.Get(ctx, "n1")
	require.Error(t, err)
	require.NotErrorIs(t, err, note.ErrNotFound)
}
