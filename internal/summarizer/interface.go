package summarizer

import "context"

// Result holds the per-language summary variants produced from one
// transcript. The EN pair comes from the model response, the ZH pair from
// the translation step.
type Result struct {
	SummaryEN     string
	ActionItemsEN []string
	SummaryZH     string
	ActionItemsZH []string
}

// Summarizer turns a transcript into a structured summary via a hosted
// text-generation model.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, detectedLanguage string) (Result, error)
}
