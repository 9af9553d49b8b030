package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// SettingKeyActiveProvider holds the name of the generative provider in use.
	SettingKeyActiveProvider = "ai:model:use"

	// Refill schedule overrides; configuration supplies the defaults.
	SettingKeyRefillEnabled  = "refill_enabled"
	SettingKeyRefillSchedule = "refill_schedule"

	// Refill job bookkeeping
	SettingKeyRefillLastAt      = "refill_last_at"
	SettingKeyRefillLastStatus  = "refill_last_status"
	SettingKeyRefillLastMessage = "refill_last_message"
)
