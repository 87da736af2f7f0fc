package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluentoffice/notes-backend/internal/store"
)

// emptyTranscriptSummary is recorded when transcription succeeds but yields
// no text; summarization is skipped and the record completes.
const emptyTranscriptSummary = "Transcript was empty."

// Process runs the two-stage pipeline for one meeting. Stage failures are
// persisted as FAILED with the error message and stop the run. A recover
// backstop guarantees no record is left in PROCESSING because of a
// programming error.
func (r *implRunner) Process(ctx context.Context, meetingID uint) (err error) {
	st, release := r.stores.Acquire()
	defer release()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(ctx, "Panic while processing meeting %d: %v", meetingID, rec)
			msg := fmt.Sprintf("Background task error: %v", rec)
			if uerr := st.UpdateStatus(ctx, meetingID, store.StatusFailed, msg); uerr != nil {
				r.logger.Error(ctx, "Failed to record panic for meeting %d: %v", meetingID, uerr)
			}
			err = errors.New(msg)
		}
	}()

	meeting, err := st.Get(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("load meeting %d: %w", meetingID, err)
	}
	if meeting.Status.IsTerminal() {
		r.logger.Warn(ctx, "Meeting %d already %s, skipping", meetingID, meeting.Status)
		return nil
	}

	r.logger.Info(ctx, "Processing started for meeting %d (%s)", meetingID, meeting.Filename)
	if err := st.UpdateStatus(ctx, meetingID, store.StatusProcessing, ""); err != nil {
		return fmt.Errorf("mark meeting %d processing: %w", meetingID, err)
	}

	result, err := r.runTranscription(ctx, st, meeting)
	if err != nil {
		return err
	}

	if result.Text == "" {
		r.logger.Warn(ctx, "Transcript is empty for meeting %d, skipping summarization", meetingID)
		return r.completeEmpty(ctx, st, meetingID)
	}

	if err := r.runSummarization(ctx, st, meetingID, result.Text, result.Language); err != nil {
		return err
	}

	r.logger.Info(ctx, "Processing complete for meeting %d", meetingID)
	return nil
}

// runTranscription invokes the ASR engine and persists transcript plus
// detected language together. It does not advance the status to COMPLETED;
// that is the summarization stage's responsibility.
func (r *implRunner) runTranscription(ctx context.Context, st store.Store, meeting *store.Meeting) (transcriptionResult, error) {
	if meeting.AudioFilePath == nil || *meeting.AudioFilePath == "" {
		return transcriptionResult{}, r.fail(ctx, st, meeting.ID, errors.New("audio file not attached to record"))
	}

	result, err := r.transcriber.Transcribe(ctx, *meeting.AudioFilePath)
	if err != nil {
		return transcriptionResult{}, r.fail(ctx, st, meeting.ID, err)
	}

	err = st.UpdateFields(ctx, meeting.ID, store.Fields{
		Transcript:       &result.Text,
		DetectedLanguage: &result.Language,
	})
	if err != nil {
		return transcriptionResult{}, r.fail(ctx, st, meeting.ID, fmt.Errorf("persist transcript: %w", err))
	}

	return transcriptionResult{Text: result.Text, Language: result.Language}, nil
}

// runSummarization invokes the LLM and persists all four language-variant
// fields plus the COMPLETED status as a single update.
func (r *implRunner) runSummarization(ctx context.Context, st store.Store, meetingID uint, transcript, language string) error {
	result, err := r.summarizer.Summarize(ctx, transcript, language)
	if err != nil {
		return r.fail(ctx, st, meetingID, err)
	}

	completed := store.StatusCompleted
	err = st.UpdateFields(ctx, meetingID, store.Fields{
		SummaryEN:     &result.SummaryEN,
		SummaryZH:     &result.SummaryZH,
		ActionItemsEN: store.StringList(result.ActionItemsEN),
		ActionItemsZH: store.StringList(result.ActionItemsZH),
		Status:        &completed,
	})
	if err != nil {
		return r.fail(ctx, st, meetingID, fmt.Errorf("persist summary: %w", err))
	}
	return nil
}

// completeEmpty records the placeholder summary for a zero-length
// transcript and moves the record straight to COMPLETED.
func (r *implRunner) completeEmpty(ctx context.Context, st store.Store, meetingID uint) error {
	placeholder := emptyTranscriptSummary
	completed := store.StatusCompleted
	err := st.UpdateFields(ctx, meetingID, store.Fields{
		SummaryEN:     &placeholder,
		SummaryZH:     &placeholder,
		ActionItemsEN: store.StringList{},
		ActionItemsZH: store.StringList{},
		Status:        &completed,
	})
	if err != nil {
		return r.fail(ctx, st, meetingID, fmt.Errorf("persist placeholder summary: %w", err))
	}
	return nil
}

// fail records a terminal FAILED state with the stage error message.
func (r *implRunner) fail(ctx context.Context, st store.Store, meetingID uint, cause error) error {
	r.logger.Error(ctx, "Processing failed for meeting %d: %v", meetingID, cause)
	if err := st.UpdateStatus(ctx, meetingID, store.StatusFailed, cause.Error()); err != nil {
		r.logger.Error(ctx, "Failed to record failure for meeting %d: %v", meetingID, err)
	}
	return cause
}

type transcriptionResult struct {
	Text     string
	Language string
}
