package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quicknotes/notes-api/internal/note"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores note records in a MongoDB collection, keyed by note_id.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo ensures a unique index on note_id and returns the repo.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "note_id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("create note_id index: %w", err)
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) Name() string { return "mongo" }

func (m *MongoRepo) Put(ctx context.Context, rec *note.Record) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"note_id": rec.NoteID}, rec, opts); err != nil {
		return fmt.Errorf("upsert note %s: %w", rec.NoteID, err)
	}
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*note.Record, error) {
	var r note.Record
	err := m.col.FindOne(ctx, bson.M{"note_id": id}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, note.ErrNotFound
		}
		return nil, fmt.Errorf("find note %s: %w", id, err)
	}
	return &r, nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
