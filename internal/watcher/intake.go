package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fluentoffice/notes-backend/internal/logger"
	"github.com/fluentoffice/notes-backend/internal/store"
)

// Enqueuer dispatches a meeting for background processing.
type Enqueuer interface {
	Enqueue(meetingID uint) bool
}

// NewIntakeHandler returns an EventHandler that turns a dropped audio file
// into a meeting record: create the record, move the file into uploadsDir
// under its canonical name, attach the path and enqueue processing.
func NewIntakeHandler(st store.Store, uploadsDir string, pipe Enqueuer, log logger.Logger) EventHandler {
	return func(ctx context.Context, filePath string) error {
		filename := filepath.Base(filePath)

		meeting, err := st.Create(ctx, filename)
		if err != nil {
			return fmt.Errorf("create meeting record: %w", err)
		}

		if err := os.MkdirAll(uploadsDir, 0755); err != nil {
			return fmt.Errorf("create uploads dir: %w", err)
		}

		audioPath := filepath.Join(uploadsDir, fmt.Sprintf("meeting_%d%s", meeting.ID, filepath.Ext(filename)))
		if err := os.Rename(filePath, audioPath); err != nil {
			// Rename fails across filesystems; fall back to copy.
			if copyErr := copyFile(filePath, audioPath); copyErr != nil {
				failErr := st.UpdateStatus(ctx, meeting.ID, store.StatusFailed, "Failed to move file: "+err.Error())
				if failErr != nil {
					log.Error(ctx, "Failed to mark meeting %d failed: %v", meeting.ID, failErr)
				}
				return fmt.Errorf("move audio file: %w", err)
			}
			if err := os.Remove(filePath); err != nil {
				log.Warn(ctx, "Failed to remove inbox file %s: %v", filePath, err)
			}
		}

		if err := st.UpdateFields(ctx, meeting.ID, store.Fields{AudioFilePath: &audioPath}); err != nil {
			return fmt.Errorf("attach audio path: %w", err)
		}

		if !pipe.Enqueue(meeting.ID) {
			failErr := st.UpdateStatus(ctx, meeting.ID, store.StatusFailed, "Processing queue is full")
			if failErr != nil {
				log.Error(ctx, "Failed to mark meeting %d failed: %v", meeting.ID, failErr)
			}
			return fmt.Errorf("processing queue is full")
		}

		log.Info(ctx, "Meeting %d ingested from inbox (%s), processing queued", meeting.ID, filename)
		return nil
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
