package summarizer

import (
	"context"

	"github.com/fluentoffice/notes-backend/internal/config"
	"github.com/fluentoffice/notes-backend/internal/logger"
	"github.com/fluentoffice/notes-backend/internal/translator"
)

// generator is the raw text-generation call, separated so tests can fake
// the model.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type implSummarizer struct {
	gen        generator
	translator translator.Translator
	logger     logger.Logger
}

// New creates a Summarizer backed by the Gemini API.
func New(cfg config.GeminiConfig, tr translator.Translator, log logger.Logger) Summarizer {
	return &implSummarizer{
		gen:        &geminiGenerator{apiKey: cfg.APIKey, model: cfg.Model},
		translator: tr,
		logger:     log,
	}
}

func newWithGenerator(gen generator, tr translator.Translator, log logger.Logger) Summarizer {
	return &implSummarizer{gen: gen, translator: tr, logger: log}
}
