package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexicon/internal/enrichment"
)

// RefillRunner runs one refill pass.
type RefillRunner interface {
	RunOnce(ctx context.Context) (*enrichment.RefillReport, error)
}

// RefillMissingTask fills in every record that has no meanings yet.
type RefillMissingTask struct{}

func (t RefillMissingTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refill_missing",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func RefillMissingProcessor(runner RefillRunner) backlite.QueueProcessor[RefillMissingTask] {
	return func(ctx context.Context, task RefillMissingTask) error {
		report, err := runner.RunOnce(ctx)
		if report != nil {
			log.Printf("[TASK] refill %s: %s", report.RunID, report.Summary())
		}
		if err != nil {
			return fmt.Errorf("refill missing: %w", err)
		}
		return nil
	}
}

func NewRefillMissingQueue(runner RefillRunner) backlite.Queue {
	return backlite.NewQueue(RefillMissingProcessor(runner))
}
