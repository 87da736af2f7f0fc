package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fluentoffice/notes-backend/internal/report"
	"github.com/fluentoffice/notes-backend/internal/store"
)

// uploadResponse matches the shape the frontend expects.
type uploadResponse struct {
	Success   bool   `json:"success"`
	MeetingID string `json:"meetingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"service": "notes-backend",
	})
}

// uploadMeeting accepts an audio file, creates the record, stores the file
// under a name derived from the record id and dispatches background
// processing. The response returns before the pipeline runs.
func (s *Server) uploadMeeting(c *gin.Context) {
	ctx := c.Request.Context()

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, uploadResponse{Success: false, Error: "file is required"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		c.JSON(http.StatusBadRequest, uploadResponse{Success: false, Error: "File must be an audio file"})
		return
	}

	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		s.logger.Error(ctx, "Failed to create uploads dir: %v", err)
		c.JSON(http.StatusInternalServerError, uploadResponse{Success: false, Error: "failed to store file"})
		return
	}

	meeting, err := s.store.Create(ctx, file.Filename)
	if err != nil {
		s.logger.Error(ctx, "Failed to create meeting record: %v", err)
		c.JSON(http.StatusInternalServerError, uploadResponse{Success: false, Error: "failed to create meeting"})
		return
	}

	// Name derived from the record id avoids collisions and path traversal.
	audioPath := filepath.Join(s.uploadsDir, fmt.Sprintf("meeting_%d%s", meeting.ID, filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, audioPath); err != nil {
		s.logger.Error(ctx, "Failed to save upload for meeting %d: %v", meeting.ID, err)
		s.markFailed(c, meeting.ID, "Failed to save file: "+err.Error())
		c.JSON(http.StatusInternalServerError, uploadResponse{Success: false, Error: "Failed to save uploaded file."})
		return
	}

	if err := s.store.UpdateFields(ctx, meeting.ID, store.Fields{AudioFilePath: &audioPath}); err != nil {
		s.logger.Error(ctx, "Failed to attach audio path for meeting %d: %v", meeting.ID, err)
		s.markFailed(c, meeting.ID, "Failed to attach audio file: "+err.Error())
		c.JSON(http.StatusInternalServerError, uploadResponse{Success: false, Error: "failed to record audio path"})
		return
	}

	if !s.pipeline.Enqueue(meeting.ID) {
		s.markFailed(c, meeting.ID, "Processing queue is full")
		c.JSON(http.StatusServiceUnavailable, uploadResponse{Success: false, Error: "processing queue is full, try again later"})
		return
	}

	s.logger.Info(ctx, "Meeting %d uploaded (%s), processing queued", meeting.ID, file.Filename)
	c.JSON(http.StatusOK, uploadResponse{Success: true, MeetingID: strconv.FormatUint(uint64(meeting.ID), 10)})
}

func (s *Server) markFailed(c *gin.Context, id uint, msg string) {
	if err := s.store.UpdateStatus(c.Request.Context(), id, store.StatusFailed, msg); err != nil {
		s.logger.Error(c.Request.Context(), "Failed to mark meeting %d failed: %v", id, err)
	}
}

func (s *Server) listMeetings(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	meetings, err := s.store.List(c.Request.Context(), skip, limit)
	if err != nil {
		s.logger.Error(c.Request.Context(), "Failed to list meetings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meetings"})
		return
	}
	if meetings == nil {
		meetings = []store.Meeting{}
	}
	c.JSON(http.StatusOK, meetings)
}

func (s *Server) getMeeting(c *gin.Context) {
	id, ok := s.meetingID(c)
	if !ok {
		return
	}

	meeting, err := s.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
		return
	}
	if err != nil {
		s.logger.Error(c.Request.Context(), "Failed to load meeting %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meeting"})
		return
	}
	c.JSON(http.StatusOK, meeting)
}

// deleteMeeting removes the record and, best-effort, its audio file. A
// missing file on disk does not fail the deletion.
func (s *Server) deleteMeeting(c *gin.Context) {
	id, ok := s.meetingID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	meeting, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
		return
	}
	if err != nil {
		s.logger.Error(ctx, "Failed to load meeting %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meeting"})
		return
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "Failed to delete meeting %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meeting"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
		return
	}

	if meeting.AudioFilePath != nil && *meeting.AudioFilePath != "" {
		if err := os.Remove(*meeting.AudioFilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn(ctx, "Failed to remove audio file for meeting %d: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) searchTranscripts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query cannot be empty"})
		return
	}

	meetings, err := s.store.SearchTranscripts(c.Request.Context(), query, 10)
	if err != nil {
		s.logger.Error(c.Request.Context(), "Search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if meetings == nil {
		meetings = []store.Meeting{}
	}
	c.JSON(http.StatusOK, meetings)
}

// exportMeeting renders the DOCX report and streams it as a download.
// Export is allowed in any state; incomplete records render with
// placeholder sections.
func (s *Server) exportMeeting(c *gin.Context) {
	id, ok := s.meetingID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	meeting, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
		return
	}
	if err != nil {
		s.logger.Error(ctx, "Failed to load meeting %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meeting"})
		return
	}

	if meeting.Status != store.StatusCompleted {
		s.logger.Warn(ctx, "Exporting meeting %d in state %s", id, meeting.Status)
	}

	tmpDir, err := os.MkdirTemp("", "export-*")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}
	defer os.RemoveAll(tmpDir)

	filename := fmt.Sprintf("meeting_%d_notes.docx", id)
	path := filepath.Join(tmpDir, filename)
	if err := report.Generate(meeting, path); err != nil {
		s.logger.Error(ctx, "Report generation failed for meeting %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	c.FileAttachment(path, filename)
}

func (s *Server) meetingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return 0, false
	}
	return uint(id), true
}
