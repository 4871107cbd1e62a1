package models

import (
	"time"
)

// ChannelSource identifies the messaging platform a channel belongs to
type ChannelSource string

const (
	ChannelSourceFacebook ChannelSource = "Facebook"
	ChannelSourceZalo     ChannelSource = "Zalo"
)

// OmniChannel is a linked messaging channel (a Facebook Page, a Zalo OA) in
// the omnichannel registry. (ExternalID, Source) identifies a channel; repeat
// onboarding of the same channel updates the row in place.
type OmniChannel struct {
	ID         string        `gorm:"primaryKey;type:varchar(36)"                                                 json:"id"`
	ExternalID string        `gorm:"type:varchar(100);not null;uniqueIndex:idx_omni_channel_external,priority:1" json:"external_id"`
	Source     ChannelSource `gorm:"type:varchar(20);not null;uniqueIndex:idx_omni_channel_external,priority:2"  json:"source"`
	Name       string        `gorm:"type:varchar(255)"                                                           json:"name"`
	Enabled    bool          `gorm:"not null;index"                                                              json:"enabled"`

	// Credentials (should be encrypted at rest in production)
	AccessToken        string     `gorm:"type:text" json:"-"` // long-lived user/OA token
	RefreshToken       string     `gorm:"type:text" json:"-"`
	TokenExpiresAt     *time.Time `json:"token_expires_at,omitempty"`
	ChannelAccessToken string     `gorm:"type:text" json:"-"` // page-scoped token, if the provider issues one

	// Descriptive snapshot from discovery
	AvatarURL string `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	Category  string `gorm:"type:varchar(255)" json:"category,omitempty"`
	Verified  bool   `json:"verified"`

	CreatedBy string    `gorm:"type:varchar(36)" json:"created_by,omitempty"`
	UpdatedBy string    `gorm:"type:varchar(36)" json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name used by OmniChannel to `omni_channels`
func (OmniChannel) TableName() string {
	return "omni_channels"
}
