package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

func (s *implStore) Create(ctx context.Context, filename string) (*Meeting, error) {
	meeting := &Meeting{
		Filename:   filename,
		UploadTime: time.Now().UTC(),
		Status:     StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}
	return meeting, nil
}

func (s *implStore) Get(ctx context.Context, id uint) (*Meeting, error) {
	var meeting Meeting
	err := s.db.WithContext(ctx).First(&meeting, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meeting %d: %w", id, err)
	}
	return &meeting, nil
}

func (s *implStore) List(ctx context.Context, offset, limit int) ([]Meeting, error) {
	var meetings []Meeting
	err := s.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return meetings, nil
}

func (s *implStore) UpdateFields(ctx context.Context, id uint, fields Fields) error {
	updates := map[string]interface{}{}
	if fields.AudioFilePath != nil {
		updates["audio_file_path"] = *fields.AudioFilePath
	}
	if fields.Transcript != nil {
		updates["transcript"] = *fields.Transcript
	}
	if fields.DetectedLanguage != nil {
		updates["detected_language"] = *fields.DetectedLanguage
	}
	if fields.SummaryEN != nil {
		updates["summary_en"] = *fields.SummaryEN
	}
	if fields.SummaryZH != nil {
		updates["summary_zh"] = *fields.SummaryZH
	}
	if fields.ActionItemsEN != nil {
		updates["action_items_en"] = fields.ActionItemsEN
	}
	if fields.ActionItemsZH != nil {
		updates["action_items_zh"] = fields.ActionItemsZH
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}
	if fields.ErrorMessage != nil {
		updates["error_message"] = *fields.ErrorMessage
	}
	if len(updates) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).Model(&Meeting{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update meeting %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *implStore) UpdateStatus(ctx context.Context, id uint, status Status, errorMessage string) error {
	updates := map[string]interface{}{
		"status":        status,
		"error_message": nil,
	}
	if errorMessage != "" {
		updates["error_message"] = errorMessage
	}

	res := s.db.WithContext(ctx).Model(&Meeting{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update status of meeting %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *implStore) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&Meeting{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete meeting %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *implStore) SearchTranscripts(ctx context.Context, query string, limit int) ([]Meeting, error) {
	var meetings []Meeting
	err := s.db.WithContext(ctx).
		Where("transcript LIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("search transcripts: %w", err)
	}
	return meetings, nil
}
