package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/quicknotes/notes-api/internal/note"
	"github.com/quicknotes/notes-api/pkg/metrics"
)

// BlobStore holds attachment bytes addressed by key.
type BlobStore interface {
	Name() string
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// RecordStore holds note records addressed by note_id. Get returns
// note.ErrNotFound when no record exists.
type RecordStore interface {
	Name() string
	Put(ctx context.Context, rec *note.Record) error
	Get(ctx context.Context, id string) (*note.Record, error)
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Gateway is the boundary between the note service and the two stores. Any
// backend failure comes back wrapped in note.ErrStorage; a missing record
// comes back as note.ErrNotFound.
type Gateway struct {
	blobs   BlobStore
	records RecordStore
}

func New(blobs BlobStore, records RecordStore) *Gateway {
	return &Gateway{blobs: blobs, records: records}
}

// StoreBlob writes body under key, overwriting any previous object.
func (g *Gateway) StoreBlob(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	err := g.blobs.Put(ctx, key, body, size, contentType)
	observe(g.blobs.Name(), "put", err)
	if err != nil {
		return storageError("store blob", err)
	}
	return nil
}

// PutRecord upserts rec under its note_id.
func (g *Gateway) PutRecord(ctx context.Context, rec *note.Record) error {
	err := g.records.Put(ctx, rec)
	observe(g.records.Name(), "put", err)
	if err != nil {
		return storageError("put record", err)
	}
	return nil
}

// GetRecord reads a record without mutating anything.
func (g *Gateway) GetRecord(ctx context.Context, id string) (*note.Record, error) {
	rec, err := g.records.Get(ctx, id)
	observe(g.records.Name(), "get", err)
	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			return nil, note.ErrNotFound
		}
		return nil, storageError("get record", err)
	}
	if rec == nil {
		return nil, note.ErrNotFound
	}
	return rec, nil
}

// Ready pings every backend that supports it. Backends without a Ping method
// are reported as ready.
func (g *Gateway) Ready(ctx context.Context) map[string]bool {
	return map[string]bool{
		"blob_" + g.blobs.Name():     ping(ctx, g.blobs),
		"record_" + g.records.Name(): ping(ctx, g.records),
	}
}

func ping(ctx context.Context, backend any) bool {
	p, ok := backend.(Pinger)
	if !ok {
		return true
	}
	return p.Ping(ctx) == nil
}

func storageError(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, note.ErrStorage, cause)
}

func observe(store, op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, note.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.StorageOperations.WithLabelValues(store, op, result).Inc()
}
