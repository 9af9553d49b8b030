// Package normalize turns raw generative-provider text into validated
// lexicon values.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/mrlokans/lexicon/internal/lexicon"
)

const fence = "```"

// CleanWrapper strips markdown code fences (with an optional language tag)
// around a payload and trims whitespace. Nested fences are stripped until
// none remain, which keeps the operation idempotent.
func CleanWrapper(text string) string {
	s := strings.TrimSpace(text)
	for strings.HasPrefix(s, fence) {
		s = s[len(fence):]

		line, rest, found := strings.Cut(s, "\n")
		if isLanguageTag(line) {
			if found {
				s = rest
			} else {
				s = ""
			}
		}

		s = strings.TrimSpace(s)
		s = strings.TrimSpace(strings.TrimSuffix(s, fence))
	}
	return s
}

func isLanguageTag(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '+', r == '.':
		default:
			return false
		}
	}
	return true
}

type phoneticsPayload struct {
	USIPA *string `json:"us_ipa"`
	UKIPA *string `json:"uk_ipa"`
}

// ParsePhonetics parses {"us_ipa": ..., "uk_ipa": ...}.
func ParsePhonetics(text string) (us, uk string, err error) {
	var payload phoneticsPayload
	if err := json.Unmarshal([]byte(CleanWrapper(text)), &payload); err != nil {
		return "", "", lexicon.SchemaErrorf("parse phonetics: %v", err)
	}
	if payload.USIPA == nil || strings.TrimSpace(*payload.USIPA) == "" {
		return "", "", lexicon.SchemaErrorf("phonetics: us_ipa missing")
	}
	if payload.UKIPA == nil || strings.TrimSpace(*payload.UKIPA) == "" {
		return "", "", lexicon.SchemaErrorf("phonetics: uk_ipa missing")
	}

	us = strings.TrimSpace(*payload.USIPA)
	uk = strings.TrimSpace(*payload.UKIPA)
	if err := lexicon.CheckPhonetic("us_ipa", us); err != nil {
		return "", "", err
	}
	if err := lexicon.CheckPhonetic("uk_ipa", uk); err != nil {
		return "", "", err
	}
	return us, uk, nil
}

// RequiredSentences is the number of example pairs a provider must return.
const RequiredSentences = 2

// ParseExampleSentences parses a JSON array of {"english", "chinese"} pairs.
func ParseExampleSentences(text string) ([]lexicon.SentencePair, error) {
	var pairs []lexicon.SentencePair
	if err := json.Unmarshal([]byte(CleanWrapper(text)), &pairs); err != nil {
		return nil, lexicon.SchemaErrorf("parse example sentences: %v", err)
	}
	if len(pairs) != RequiredSentences {
		return nil, lexicon.NewValidationError("sentences", "expected exactly 2 pairs")
	}

	for i := range pairs {
		pairs[i].English = strings.TrimSpace(pairs[i].English)
		pairs[i].Chinese = strings.TrimSpace(pairs[i].Chinese)
		if pairs[i].English == "" || pairs[i].Chinese == "" {
			return nil, lexicon.NewValidationError("sentences", "pair has an empty side")
		}
	}
	return pairs, nil
}

type wordInfoPayload struct {
	UKPhonetic *string           `json:"uk_phonetic"`
	USPhonetic *string           `json:"us_phonetic"`
	Meanings   []lexicon.Meaning `json:"meanings"`
}

// ParseWordInfo parses {"uk_phonetic", "us_phonetic", "meanings": [{"pos", "definition"}]}.
func ParseWordInfo(text string) (*lexicon.WordInfo, error) {
	var payload wordInfoPayload
	if err := json.Unmarshal([]byte(CleanWrapper(text)), &payload); err != nil {
		return nil, lexicon.SchemaErrorf("parse word info: %v", err)
	}
	if payload.UKPhonetic == nil || payload.USPhonetic == nil {
		return nil, lexicon.SchemaErrorf("word info: phonetic fields missing")
	}

	info := &lexicon.WordInfo{
		USPhonetic: strings.TrimSpace(*payload.USPhonetic),
		UKPhonetic: strings.TrimSpace(*payload.UKPhonetic),
	}
	for _, m := range payload.Meanings {
		pos := strings.TrimSpace(m.POS)
		def := strings.TrimSpace(m.Definition)
		if pos == "" && def == "" {
			continue
		}
		info.Meanings = append(info.Meanings, lexicon.Meaning{POS: pos, Definition: def})
	}

	if err := info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}

// FormatExamples renders pairs as "english\nchinese\n" lines.
func FormatExamples(pairs []lexicon.SentencePair) string {
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.English)
		b.WriteByte('\n')
		b.WriteString(p.Chinese)
		b.WriteByte('\n')
	}
	return b.String()
}

// MentionsWord reports whether any english sentence contains word, ignoring case.
func MentionsWord(pairs []lexicon.SentencePair, word string) bool {
	needle := strings.ToLower(strings.TrimSpace(word))
	if needle == "" {
		return false
	}
	for _, p := range pairs {
		if strings.Contains(strings.ToLower(p.English), needle) {
			return true
		}
	}
	return false
}
