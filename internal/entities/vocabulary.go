package entities

import (
	"encoding/json"
	"time"

	"github.com/mrlokans/lexicon/internal/lexicon"
)

// VocabularyRecord is a persisted, possibly enriched, vocabulary entry.
// Empty string fields mean the value has not been filled in yet.
type VocabularyRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Word            string    `gorm:"uniqueIndex;size:255;not null" json:"word"`
	PhoneticUS      string    `gorm:"size:255" json:"phonetic_us"`
	PhoneticUK      string    `gorm:"size:255" json:"phonetic_uk"`
	PronunciationUS string    `gorm:"size:512" json:"pronunciation_us"`
	PronunciationUK string    `gorm:"size:512" json:"pronunciation_uk"`
	Meanings        string    `gorm:"type:text" json:"meaning"`
	Example         string    `gorm:"type:text" json:"example"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (VocabularyRecord) TableName() string {
	return "words"
}

// HasMeanings reports whether the record has already been enriched.
func (r *VocabularyRecord) HasMeanings() bool {
	return r.Meanings != "" && r.Meanings != "null" && r.Meanings != "[]"
}

// DecodedMeanings parses the stored meanings column.
func (r *VocabularyRecord) DecodedMeanings() ([]lexicon.Meaning, error) {
	if r.Meanings == "" {
		return nil, nil
	}
	var meanings []lexicon.Meaning
	if err := json.Unmarshal([]byte(r.Meanings), &meanings); err != nil {
		return nil, err
	}
	return meanings, nil
}

// SetMeanings stores meanings as a JSON array of {pos, definition}.
func (r *VocabularyRecord) SetMeanings(meanings []lexicon.Meaning) error {
	data, err := json.Marshal(meanings)
	if err != nil {
		return err
	}
	r.Meanings = string(data)
	return nil
}
