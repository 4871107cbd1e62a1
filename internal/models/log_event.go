package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LogLevel is the severity of a diagnostics record
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

// LogDetails stores additional event-specific information as JSON
type LogDetails map[string]any

// Value implements the driver.Valuer interface for database storage
func (d LogDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil //nolint:nilnil // nil driver.Value represents SQL NULL, which is valid here
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for database retrieval
func (d *LogDetails) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal LogDetails value: %v", value)
	}

	result := make(LogDetails)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}

	*d = result
	return nil
}

// LogEvent is an append-only diagnostics record written by the onboarding
// flow. Error records are surfaced to the end user through their ID.
type LogEvent struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	Level    LogLevel `gorm:"type:varchar(10);index;not null" json:"level"`
	Kind     string   `gorm:"type:varchar(50);index"          json:"kind,omitempty"` // error taxonomy, empty for info
	Context  string   `gorm:"type:varchar(100);index"         json:"context"`        // e.g. handleZaloCallback
	Provider string   `gorm:"type:varchar(30);index"          json:"provider,omitempty"`
	Stage    string   `gorm:"type:varchar(30)"                json:"stage,omitempty"`
	Message  string   `gorm:"type:text;not null"              json:"message"`
	Detail   string   `gorm:"type:text"                       json:"detail,omitempty"` // error chain or stack

	UserID   *string    `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Request  *string    `gorm:"type:text"              json:"request,omitempty"`
	Response *string    `gorm:"type:text"              json:"response,omitempty"`
	Details  LogDetails `gorm:"type:json"              json:"details,omitempty"`

	// No UpdatedAt - immutable records
	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
}

// TableName specifies the table name for GORM
func (LogEvent) TableName() string {
	return "log_events"
}
