package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

// WordEnricher enriches a single word. *enrichment.Service implements it.
type WordEnricher interface {
	Enrich(ctx context.Context, word string) (*entities.VocabularyRecord, error)
}

// EnrichWordTask enriches one word in the background.
type EnrichWordTask struct {
	Word string `json:"word"`
}

func (t EnrichWordTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_word",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichWordProcessor creates a processor for word enrichment. Validation and
// missing-provider failures are logged and not retried.
func EnrichWordProcessor(enricher WordEnricher) backlite.QueueProcessor[EnrichWordTask] {
	return func(ctx context.Context, task EnrichWordTask) error {
		record, err := enricher.Enrich(ctx, task.Word)
		if err != nil {
			if permanent(err) {
				log.Printf("[TASK] enrich %q abandoned: %v", task.Word, err)
				return nil
			}
			return fmt.Errorf("enrich word %q: %w", task.Word, err)
		}

		log.Printf("[TASK] enriched word %q (id %d)", record.Word, record.ID)
		return nil
	}
}

func NewEnrichWordQueue(enricher WordEnricher) backlite.Queue {
	return backlite.NewQueue(EnrichWordProcessor(enricher))
}

// permanent reports errors that a retry cannot fix.
func permanent(err error) bool {
	return errors.Is(err, lexicon.ErrValidation) ||
		errors.Is(err, lexicon.ErrNotConfigured) ||
		errors.Is(err, lexicon.ErrConfiguration) ||
		errors.Is(err, lexicon.ErrUnsupported)
}
