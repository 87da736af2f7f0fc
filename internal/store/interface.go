package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no meeting exists for the requested id.
var ErrNotFound = errors.New("meeting not found")

// Fields carries a partial update; only non-nil members are written.
type Fields struct {
	AudioFilePath    *string
	Transcript       *string
	DetectedLanguage *string
	SummaryEN        *string
	SummaryZH        *string
	ActionItemsEN    StringList
	ActionItemsZH    StringList
	Status           *Status
	ErrorMessage     *string
}

// Store is the meeting record store consumed by the pipeline and the API.
// All operations are atomic per call.
type Store interface {
	Create(ctx context.Context, filename string) (*Meeting, error)
	Get(ctx context.Context, id uint) (*Meeting, error)
	List(ctx context.Context, offset, limit int) ([]Meeting, error)
	UpdateFields(ctx context.Context, id uint, fields Fields) error
	// UpdateStatus writes status and error message without loading the
	// record. An empty errorMessage clears the column.
	UpdateStatus(ctx context.Context, id uint, status Status, errorMessage string) error
	Delete(ctx context.Context, id uint) (bool, error)
	SearchTranscripts(ctx context.Context, query string, limit int) ([]Meeting, error)
}

// Factory hands out a session-scoped Store for one unit of work. The
// release func must be called on every exit path.
type Factory interface {
	Acquire() (Store, func())
}
