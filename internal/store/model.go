package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Status tracks a meeting through the processing pipeline.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// IsTerminal reports whether no further automated transition may occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether the pipeline may move a record from s to next.
// Transitions are monotonic forward; FAILED is reachable from any non-terminal
// state, COMPLETED only from PROCESSING.
func (s Status) CanTransition(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusProcessing:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusProcessing
	case StatusFailed:
		return true
	default:
		return false
	}
}

// StringList is an ordered list of free-text strings persisted as a JSON
// array in a TEXT column. A nil list is stored as NULL. Malformed stored
// text scans to an empty list rather than failing the read.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*l = StringList{}
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		*l = StringList{}
		return nil
	}
	*l = items
	return nil
}

// Meeting is the persisted record for one uploaded audio file and its
// processing results.
type Meeting struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	Filename         string     `gorm:"index" json:"filename"`
	AudioFilePath    *string    `json:"audio_file_path"`
	UploadTime       time.Time  `json:"upload_time"`
	Status           Status     `gorm:"not null;default:PENDING" json:"status"`
	Transcript       *string    `gorm:"type:text" json:"transcript"`
	DetectedLanguage *string    `gorm:"column:detected_language" json:"detected_language"`
	SummaryEN        *string    `gorm:"column:summary_en;type:text" json:"summary_en"`
	SummaryZH        *string    `gorm:"column:summary_zh;type:text" json:"summary_zh"`
	ActionItemsEN    StringList `gorm:"column:action_items_en;type:text" json:"action_items_en"`
	ActionItemsZH    StringList `gorm:"column:action_items_zh;type:text" json:"action_items_zh"`
	ErrorMessage     *string    `json:"error_message"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}
