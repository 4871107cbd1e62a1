package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// IntegrationSetting holds per-provider application credentials and webhook
// configuration. It is read fresh for every onboarding request and never
// modified by the flow itself.
type IntegrationSetting struct {
	ID                 string      `gorm:"primaryKey;type:varchar(36)"          json:"id"`
	Provider           string      `gorm:"type:varchar(30);uniqueIndex;not null" json:"provider"`
	AppID              string      `gorm:"type:varchar(100);not null"           json:"app_id"`
	AppSecret          string      `gorm:"type:text;not null"                   json:"-"`
	Scopes             StringArray `gorm:"type:json"                            json:"scopes"`
	WebhookURL         string      `gorm:"type:varchar(500)"                    json:"webhook_url,omitempty"`
	WebhookVerifyToken string      `gorm:"type:varchar(255)"                    json:"-"`
	PublicBaseURL      string      `gorm:"type:varchar(500)"                    json:"public_base_url"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// TableName overrides the table name used by IntegrationSetting to `integration_settings`
func (IntegrationSetting) TableName() string {
	return "integration_settings"
}

// StringArray is a custom type for []string that can be stored as JSON in database
type StringArray []string

// Scan implements sql.Scanner interface
func (s *StringArray) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = []string{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("failed to unmarshal JSON value")
	}
}

// Value implements driver.Valuer interface
func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// Join returns a string with elements joined by the specified separator
func (s StringArray) Join(sep string) string {
	return strings.Join(s, sep)
}
