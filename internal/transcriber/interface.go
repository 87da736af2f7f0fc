package transcriber

import (
	"context"
	"errors"
)

// ErrEngineUnavailable is returned when the speech-to-text engine cannot
// run at all (missing binary or model file).
var ErrEngineUnavailable = errors.New("ASR model not loaded")

// Result is a completed transcription.
type Result struct {
	// Text is the full transcript. May be empty for silent audio.
	Text string
	// Language is the language code the engine detected, e.g. "en", "zh".
	Language string
}

// Transcriber converts an audio file into transcript text. The call is
// synchronous and produces either the full transcript or an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
}
