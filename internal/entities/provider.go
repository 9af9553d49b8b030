package entities

import "time"

// ModelProvider is a catalog entry describing a provider the service knows
// how to talk to.
type ModelProvider struct {
	ID             uint      `gorm:"primaryKey" json:"provider_id"`
	Name           string    `gorm:"uniqueIndex;size:100;not null" json:"provider_name"`
	BaseURL        string    `gorm:"size:512" json:"api_base_url"`
	APIKeyRequired bool      `json:"api_key_required"`
	ModelTypes     string    `gorm:"size:255" json:"model_types"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ModelProvider) TableName() string {
	return "model_providers"
}
