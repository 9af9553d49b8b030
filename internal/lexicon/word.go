// Package lexicon holds the transient domain types produced by providers
// and consumed by the enrichment service, plus the shared error taxonomy.
package lexicon

import (
	"strings"
	"unicode"
)

// Meaning is a single part-of-speech definition.
type Meaning struct {
	POS        string `json:"pos"`
	Definition string `json:"definition"`
}

// WordInfo is the result of a word-info lookup.
type WordInfo struct {
	USPhonetic string    `json:"us_phonetic"`
	UKPhonetic string    `json:"uk_phonetic"`
	Meanings   []Meaning `json:"meanings"`
}

// SentencePair is an english example sentence with its chinese translation.
type SentencePair struct {
	English string `json:"english"`
	Chinese string `json:"chinese"`
}

// ForbiddenPhoneticChars are added by display formatting, so a provider
// returning them has sent pre-wrapped phonetics.
const ForbiddenPhoneticChars = "/["

// CheckPhonetic rejects a phonetic transcription that is already wrapped.
func CheckPhonetic(field, value string) error {
	if strings.ContainsAny(value, ForbiddenPhoneticChars) {
		return NewValidationError(field, "must not contain '/' or '['")
	}
	return nil
}

// Validate checks the WordInfo invariants.
func (w *WordInfo) Validate() error {
	if len(w.Meanings) == 0 {
		return SchemaErrorf("meanings must not be empty")
	}
	if err := CheckPhonetic("us_phonetic", w.USPhonetic); err != nil {
		return err
	}
	return CheckPhonetic("uk_phonetic", w.UKPhonetic)
}

// IsPhrase reports whether text contains whitespace, i.e. is more than one word.
func IsPhrase(text string) bool {
	return strings.IndexFunc(text, unicode.IsSpace) >= 0
}

// NormalizeWord trims the input and rejects empty words.
func NormalizeWord(word string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", NewValidationError("word", "must not be empty")
	}
	return word, nil
}
