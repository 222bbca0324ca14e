package repository

import (
	"context"
	"sync"

	"github.com/quicknotes/notes-api/internal/note"
)

// MemoryRepo is an in-memory record store used for local runs and unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]note.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]note.Record)}
}

func (m *MemoryRepo) Name() string { return "memory" }

// Put stores a copy of rec, replacing any previous record with the same id.
func (m *MemoryRepo) Put(ctx context.Context, rec *note.Record) error {
	cp := *rec
	if rec.S3Key != nil {
		k := *rec.S3Key
		cp.S3Key = &k
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[rec.NoteID] = cp
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*note.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, note.ErrNotFound
	}
	return &r, nil
}

// Len reports how many records are stored.
func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
