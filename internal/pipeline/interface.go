package pipeline

import "context"

// Runner executes the full processing pipeline for one meeting record:
// transcription, then summarization, with every state transition persisted.
type Runner interface {
	Process(ctx context.Context, meetingID uint) error
}

// Pool runs pipeline units of work on background workers. Enqueue returns
// immediately; failures are recorded on the meeting record, never returned
// to the caller.
type Pool interface {
	Start()
	Enqueue(meetingID uint) bool
	Shutdown()
}
