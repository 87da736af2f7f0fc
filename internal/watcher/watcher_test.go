package watcher

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fluentoffice/notes-backend/internal/logger"
	"github.com/fluentoffice/notes-backend/internal/store"
)

type fakeEnqueuer struct {
	ids    []uint
	refuse bool
}

func (f *fakeEnqueuer) Enqueue(id uint) bool {
	if f.refuse {
		return false
	}
	f.ids = append(f.ids, id)
	return true
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/inbox/standup.wav", true},
		{"/inbox/standup.MP3", true},
		{"/inbox/call.m4a", true},
		{"/inbox/notes.txt", false},
		{"/inbox/video.mp4", false},
		{"/inbox/noext", false},
	}
	for _, tt := range tests {
		if got := isAudioFile(tt.path); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIntakeHandler(t *testing.T) {
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	st := store.New(db)
	uploadsDir := filepath.Join(dir, "uploads")

	inboxFile := filepath.Join(dir, "standup.wav")
	if err := os.WriteFile(inboxFile, []byte("fake audio"), 0644); err != nil {
		t.Fatalf("write inbox file: %v", err)
	}

	enq := &fakeEnqueuer{}
	handler := NewIntakeHandler(st, uploadsDir, enq, logger.NewWithWriter("error", io.Discard))

	if err := handler(t.Context(), inboxFile); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	if len(enq.ids) != 1 {
		t.Fatalf("enqueued ids = %v, want one", enq.ids)
	}
	m, err := st.Get(t.Context(), enq.ids[0])
	if err != nil {
		t.Fatalf("get meeting: %v", err)
	}
	if m.Filename != "standup.wav" {
		t.Errorf("filename = %q, want standup.wav", m.Filename)
	}
	if m.AudioFilePath == nil {
		t.Fatal("audio path not attached")
	}
	if _, err := os.Stat(*m.AudioFilePath); err != nil {
		t.Errorf("audio file not moved into uploads: %v", err)
	}
	if _, err := os.Stat(inboxFile); !os.IsNotExist(err) {
		t.Errorf("inbox file should be gone after intake")
	}
}

func TestIntakeHandlerQueueFull(t *testing.T) {
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	st := store.New(db)

	inboxFile := filepath.Join(dir, "standup.wav")
	if err := os.WriteFile(inboxFile, []byte("fake audio"), 0644); err != nil {
		t.Fatalf("write inbox file: %v", err)
	}

	enq := &fakeEnqueuer{refuse: true}
	handler := NewIntakeHandler(st, filepath.Join(dir, "uploads"), enq, logger.NewWithWriter("error", io.Discard))

	if err := handler(t.Context(), inboxFile); err == nil {
		t.Fatal("expected error when queue is full")
	}

	meetings, err := st.List(t.Context(), 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(meetings) != 1 || meetings[0].Status != store.StatusFailed {
		t.Fatalf("meetings = %+v, want one FAILED record", meetings)
	}
}
