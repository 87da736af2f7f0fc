package pipeline

import (
	"github.com/fluentoffice/notes-backend/internal/logger"
	"github.com/fluentoffice/notes-backend/internal/store"
	"github.com/fluentoffice/notes-backend/internal/summarizer"
	"github.com/fluentoffice/notes-backend/internal/transcriber"
)

type implRunner struct {
	stores      store.Factory
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	logger      logger.Logger
}

// NewRunner creates a Runner. The transcription and summarization engines
// are shared by reference across concurrent runs and must be safe for
// concurrent use; each run acquires its own store session from the factory.
func NewRunner(stores store.Factory, tr transcriber.Transcriber, sum summarizer.Summarizer, log logger.Logger) Runner {
	return &implRunner{
		stores:      stores,
		transcriber: tr,
		summarizer:  sum,
		logger:      log,
	}
}
