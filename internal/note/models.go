package note

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Input is the client-supplied note payload. It arrives as a JSON string inside
// a form field, next to an optional file part.
type Input struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

// Record is the persisted shape of a note. Field names are shared by every
// record store backend and must not change.
type Record struct {
	NoteID  string  `json:"note_id" bson:"note_id" dynamodbav:"note_id"`
	Title   string  `json:"title" bson:"title" dynamodbav:"title"`
	Content string  `json:"content" bson:"content" dynamodbav:"content"`
	S3Key   *string `json:"s3_key" bson:"s3_key" dynamodbav:"s3_key"`
}

// Created is returned from a successful create.
type Created struct {
	NoteID string  `json:"note_id"`
	S3Key  *string `json:"s3_key"`
}

// Output is returned from a successful lookup.
type Output struct {
	NoteID  string  `json:"note_id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	S3Key   *string `json:"s3_key"`
}

// DecodeInput parses the JSON note payload. It does not validate field bounds;
// call Validate for that.
func DecodeInput(raw string) (Input, error) {
	var in Input
	if strings.TrimSpace(raw) == "" {
		return in, NewValidationError("note: field required")
	}
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return in, NewValidationError(fmt.Sprintf("note: invalid JSON: %v", err))
	}
	return in, nil
}

// Validate checks the field constraints. Title is 1..200 characters, content is non-empty.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return NewValidationError(msgs...)
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + ": field required"
	case "min":
		return fmt.Sprintf("%s: must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", field, fe.Param())
	}
	return fmt.Sprintf("%s: failed %q constraint", field, fe.Tag())
}

// NewRecord builds the stored record for a freshly created note.
func NewRecord(id string, in Input, s3Key *string) *Record {
	return &Record{NoteID: id, Title: in.Title, Content: in.Content, S3Key: s3Key}
}

func (r *Record) Created() *Created {
	return &Created{NoteID: r.NoteID, S3Key: r.S3Key}
}

func (r *Record) Output() *Output {
	return &Output{NoteID: r.NoteID, Title: r.Title, Content: r.Content, S3Key: r.S3Key}
}
