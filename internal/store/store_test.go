package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return New(db)
}

func TestCreateDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.Create(ctx, "standup.wav")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if m.ID == 0 {
		t.Error("Create() did not assign an id")
	}
	if m.Status != StatusPending {
		t.Errorf("Status = %v, want %v", m.Status, StatusPending)
	}
	if m.UploadTime.IsZero() {
		t.Error("UploadTime not set")
	}
	if m.Transcript != nil || m.ErrorMessage != nil {
		t.Error("new record should have null transcript and error message")
	}
}

func TestActionItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.Create(ctx, "standup.wav")
	if err != nil {
		t.Fatal(err)
	}

	items := StringList{"Call Bob", "Send report", "Review budget"}
	if err := s.UpdateFields(ctx, m.ID, Fields{ActionItemsEN: items}); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	got, err := s.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ActionItemsEN) != len(items) {
		t.Fatalf("got %d items, want %d", len(got.ActionItemsEN), len(items))
	}
	for i := range items {
		if got.ActionItemsEN[i] != items[i] {
			t.Errorf("item %d = %q, want %q", i, got.ActionItemsEN[i], items[i])
		}
	}

	// Never-written list reads back as null.
	if got.ActionItemsZH != nil {
		t.Errorf("ActionItemsZH = %v, want nil", got.ActionItemsZH)
	}
}

func TestActionItemsMalformed(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	s := New(db)

	m, err := s.Create(ctx, "standup.wav")
	if err != nil {
		t.Fatal(err)
	}

	for _, raw := range []string{"not json", "{}", "null"} {
		if err := db.Exec("UPDATE meetings SET action_items_en = ? WHERE id = ?", raw, m.ID).Error; err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx, m.ID)
		if err != nil {
			t.Fatalf("Get() after storing %q: error = %v", raw, err)
		}
		if got.ActionItemsEN == nil || len(got.ActionItemsEN) != 0 {
			t.Errorf("stored %q decoded to %v, want empty list", raw, got.ActionItemsEN)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.Create(ctx, "standup.wav")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateStatus(ctx, m.ID, StatusFailed, "ASR model not loaded"); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	got, err := s.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusFailed {
		t.Errorf("Status = %v, want %v", got.Status, StatusFailed)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "ASR model not loaded" {
		t.Errorf("ErrorMessage = %v, want %q", got.ErrorMessage, "ASR model not loaded")
	}

	// A status update without a message clears the previous one.
	if err := s.UpdateStatus(ctx, m.ID, StatusProcessing, ""); err != nil {
		t.Fatal(err)
	}
	got, err = s.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ErrorMessage != nil {
		t.Errorf("ErrorMessage = %v, want nil", *got.ErrorMessage)
	}

	if err := s.UpdateStatus(ctx, 9999, StatusFailed, "x"); err != ErrNotFound {
		t.Errorf("UpdateStatus(absent) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateFieldsPartial(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.Create(ctx, "standup.wav")
	if err != nil {
		t.Fatal(err)
	}

	transcript := "we agreed to ship on friday"
	lang := "en"
	if err := s.UpdateFields(ctx, m.ID, Fields{Transcript: &transcript, DetectedLanguage: &lang}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Transcript == nil || *got.Transcript != transcript {
		t.Errorf("Transcript = %v, want %q", got.Transcript, transcript)
	}
	if got.DetectedLanguage == nil || *got.DetectedLanguage != lang {
		t.Errorf("DetectedLanguage = %v, want %q", got.DetectedLanguage, lang)
	}
	// Untouched fields stay untouched.
	if got.Status != StatusPending {
		t.Errorf("Status = %v, want %v", got.Status, StatusPending)
	}
	if got.Filename != "standup.wav" {
		t.Errorf("Filename = %v, want standup.wav", got.Filename)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.Create(ctx, "standup.wav")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.Delete(ctx, m.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !ok {
		t.Error("Delete() = false, want true")
	}

	if _, err := s.Get(ctx, m.ID); err != ErrNotFound {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	ok, err = s.Delete(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("second Delete() = true, want false")
	}
}

func TestSearchTranscripts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, _ := s.Create(ctx, "a.wav")
	second, _ := s.Create(ctx, "b.wav")

	t1 := "discussed the quarterly budget"
	t2 := "planning the offsite"
	if err := s.UpdateFields(ctx, first.ID, Fields{Transcript: &t1}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateFields(ctx, second.ID, Fields{Transcript: &t2}); err != nil {
		t.Fatal(err)
	}

	results, err := s.SearchTranscripts(ctx, "budget", 10)
	if err != nil {
		t.Fatalf("SearchTranscripts() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != first.ID {
		t.Errorf("SearchTranscripts() = %v records, want just meeting %d", len(results), first.ID)
	}

	results, err = s.SearchTranscripts(ctx, "nothing-matches", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("SearchTranscripts() = %d records, want 0", len(results))
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusProcessing, false},
		{StatusFailed, StatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
