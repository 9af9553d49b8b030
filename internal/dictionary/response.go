package dictionary

import (
	"encoding/json"
	"strings"

	"github.com/mrlokans/lexicon/internal/lexicon"
)

type ptRequest struct {
	Re      bool   `json:"re"`
	Content string `json:"content"`
}

// ptResponse rows are positional:
// [_, uk_phonetic, _, us_phonetic, _, [[pos, definition], ...]]
type ptResponse struct {
	Err      int                 `json:"err"`
	Data     [][]json.RawMessage `json:"data"`
	Content  string              `json:"content"`
	Duration float64             `json:"duration"`
	ReCode   int                 `json:"re_code"`
}

const (
	rowUKPhonetic = 1
	rowUSPhonetic = 3
	rowMeanings   = 5
	rowMinFields  = 6
)

func (r *ptResponse) wordInfo() (*lexicon.WordInfo, error) {
	if r.Err != 0 {
		return nil, lexicon.NotFoundErrorf("dictionary returned err=%d", r.Err)
	}
	if len(r.Data) == 0 {
		return nil, lexicon.NotFoundErrorf("dictionary returned no rows")
	}

	row := r.Data[0]
	if len(row) < rowMinFields {
		return nil, lexicon.SchemaErrorf("row has %d fields, want at least %d", len(row), rowMinFields)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(row[rowMeanings], &raw); err != nil {
		return nil, lexicon.SchemaErrorf("meanings field is not an array: %v", err)
	}

	info := &lexicon.WordInfo{
		UKPhonetic: stringField(row[rowUKPhonetic]),
		USPhonetic: stringField(row[rowUSPhonetic]),
	}
	for _, item := range raw {
		var pair []string
		if err := json.Unmarshal(item, &pair); err != nil || len(pair) < 2 {
			continue
		}
		info.Meanings = append(info.Meanings, lexicon.Meaning{
			POS:        strings.TrimSpace(pair[0]),
			Definition: strings.TrimSpace(pair[1]),
		})
	}

	if err := info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}

// stringField tolerates null or non-string positions as an empty value.
func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
