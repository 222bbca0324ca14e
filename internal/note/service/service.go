package service

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/quicknotes/notes-api/internal/note"
	"github.com/quicknotes/notes-api/pkg/logger"
	"github.com/quicknotes/notes-api/pkg/metrics"
)

// Attachment is an uploaded file accompanying a new note.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Gateway is the storage boundary the service writes through.
type Gateway interface {
	StoreBlob(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PutRecord(ctx context.Context, rec *note.Record) error
	GetRecord(ctx context.Context, id string) (*note.Record, error)
}

// Service defines the note operations used by the handler layer.
type Service interface {
	Create(ctx context.Context, in note.Input, att *Attachment) (*note.Created, error)
	Get(ctx context.Context, id string) (*note.Output, error)
}

// Option customises a Service.
type Option func(*noteService)

// WithIDGenerator replaces uuid.NewString as the note id source.
func WithIDGenerator(f func() string) Option {
	return func(s *noteService) { s.newID = f }
}

// WithKeyFunc replaces note.BlobKey for attachment key derivation.
func WithKeyFunc(f note.KeyFunc) Option {
	return func(s *noteService) { s.keyFor = f }
}

func New(gw Gateway, opts ...Option) Service {
	s := &noteService{gw: gw, newID: uuid.NewString, keyFor: note.BlobKey}
	for _, o := range opts {
		o(s)
	}
	return s
}

type noteService struct {
	gw     Gateway
	newID  func() string
	keyFor note.KeyFunc
}

// Create validates in, uploads the attachment if any, then writes the record.
// The blob is written first, so a record never points at a failed upload. If
// the record write fails after a successful upload the blob is left in place.
func (s *noteService) Create(ctx context.Context, in note.Input, att *Attachment) (*note.Created, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id := s.newID()
	var s3Key *string
	if att != nil {
		key := s.keyFor(id, att.Filename)
		if err := s.gw.StoreBlob(ctx, key, att.Body, att.Size, att.ContentType); err != nil {
			return nil, err
		}
		s3Key = &key
	}

	rec := note.NewRecord(id, in, s3Key)
	if err := s.gw.PutRecord(ctx, rec); err != nil {
		if s3Key != nil {
			metrics.OrphanedBlobs.Inc()
			logger.WithFields(map[string]interface{}{"note_id": id, "s3_key": *s3Key}).
				Warnf("record write failed after upload; blob is orphaned: %v", err)
		}
		return nil, err
	}

	metrics.NotesCreated.WithLabelValues(strconv.FormatBool(s3Key != nil)).Inc()
	logger.Debugf("created note %s (attachment=%v)", id, s3Key != nil)
	return rec.Created(), nil
}

func (s *noteService) Get(ctx context.Context, id string) (*note.Output, error) {
	rec, err := s.gw.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			metrics.Lookups.WithLabelValues("not_found").Inc()
		} else {
			metrics.Lookups.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.Lookups.WithLabelValues("found").Inc()
	return rec.Output(), nil
}
