package summarizer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fluentoffice/notes-backend/internal/logger"
	"github.com/fluentoffice/notes-backend/internal/translator"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{
		response: "Summary:\nThe team agreed to ship on Friday.\n\nAction Items:\n[\"Call Bob\", \"Send report\"]",
	}
	s := newWithGenerator(gen, translator.NewIdentity(), logger.New("error"))

	got, err := s.Summarize(context.Background(), "we talked about shipping", "en")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if got.SummaryEN != "The team agreed to ship on Friday." {
		t.Errorf("SummaryEN = %q", got.SummaryEN)
	}
	if len(got.ActionItemsEN) != 2 || got.ActionItemsEN[0] != "Call Bob" {
		t.Errorf("ActionItemsEN = %v", got.ActionItemsEN)
	}
	// Identity translation: the ZH pair mirrors the EN pair.
	if got.SummaryZH != got.SummaryEN {
		t.Errorf("SummaryZH = %q, want %q", got.SummaryZH, got.SummaryEN)
	}
	if len(got.ActionItemsZH) != len(got.ActionItemsEN) {
		t.Errorf("ActionItemsZH = %v", got.ActionItemsZH)
	}

	if !strings.Contains(gen.prompt, "we talked about shipping") {
		t.Error("prompt does not include the transcript")
	}
	if !strings.Contains(gen.prompt, "language: en") {
		t.Error("prompt does not include the detected language")
	}
}

func TestSummarizeDegradedResponse(t *testing.T) {
	gen := &fakeGenerator{response: "free-form prose with no headings"}
	s := newWithGenerator(gen, translator.NewIdentity(), logger.New("error"))

	got, err := s.Summarize(context.Background(), "transcript", "en")
	if err != nil {
		t.Fatalf("Summarize() error = %v, degraded parsing must not fail the stage", err)
	}
	if got.SummaryEN != "free-form prose with no headings" {
		t.Errorf("SummaryEN = %q", got.SummaryEN)
	}
	if len(got.ActionItemsEN) != 0 {
		t.Errorf("ActionItemsEN = %v, want empty", got.ActionItemsEN)
	}
}

func TestSummarizeModelFailure(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("model unreachable")}
	s := newWithGenerator(gen, translator.NewIdentity(), logger.New("error"))

	_, err := s.Summarize(context.Background(), "transcript", "en")
	if err == nil || !strings.Contains(err.Error(), "summarization failed") {
		t.Errorf("error = %v, want wrapped model failure", err)
	}
}
