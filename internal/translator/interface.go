package translator

import "context"

// Translator converts text into a target language. The pipeline depends on
// this interface only, so a real translation backend can be substituted
// without touching the orchestrator.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
