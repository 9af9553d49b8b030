package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/provider"
)

// BatchPolicy controls how RefillMissing reacts to a failed word.
type BatchPolicy int

const (
	// ContinueOnError records the failure and moves on to the next word.
	ContinueOnError BatchPolicy = iota
	// StopOnError aborts the run at the first failed word.
	StopOnError
)

func (p BatchPolicy) String() string {
	if p == StopOnError {
		return "stop_on_error"
	}
	return "continue_on_error"
}

// Outcome statuses.
const (
	OutcomeEnriched = "enriched"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Run statuses.
const (
	RunSuccess = "success"
	RunPartial = "partial"
	RunFailed  = "failed"
)

// Outcome is the result for one word in a refill run.
type Outcome struct {
	Word    string `json:"word"`
	Status  string `json:"status"`
	Message string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

// RefillReport summarizes a refill run.
type RefillReport struct {
	RunID      uuid.UUID `json:"run_id"`
	Policy     string    `json:"policy"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Enriched   int       `json:"enriched"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Aborted    bool      `json:"aborted"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Status classifies the run as success, partial or failed.
func (r *RefillReport) Status() string {
	switch {
	case r.Failed == 0 && !r.Aborted:
		return RunSuccess
	case r.Enriched > 0:
		return RunPartial
	default:
		return RunFailed
	}
}

// Summary is a one-line description of the run.
func (r *RefillReport) Summary() string {
	return fmt.Sprintf("enriched %d, skipped %d, failed %d of %d", r.Enriched, r.Skipped, r.Failed, r.Total)
}

func (r *RefillReport) add(word, status string, err error) {
	o := Outcome{Word: word, Status: status, Err: err}
	if err != nil {
		o.Message = err.Error()
	}
	r.Outcomes = append(r.Outcomes, o)
}

// RefillMissing enriches every stored record that has no meanings yet, in ID
// order, using the generative provider only. The provider is resolved once
// per run. The returned error joins every per-word failure; the report is
// returned even when the error is non-nil, unless the run could not start.
func (s *Service) RefillMissing(ctx context.Context) (*RefillReport, error) {
	report := &RefillReport{
		RunID:     uuid.New(),
		Policy:    s.policy.String(),
		StartedAt: time.Now().UTC(),
	}

	generative, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	report.Total = len(records)

	log.Printf("[ENRICH] refill %s started: %d records, provider %s, policy %s",
		report.RunID, report.Total, generative.Name(), report.Policy)

	var errs []error
	for i := range records {
		if err := ctx.Err(); err != nil {
			report.Aborted = true
			errs = append(errs, err)
			break
		}

		record := &records[i]
		if record.HasMeanings() {
			report.Skipped++
			report.add(record.Word, OutcomeSkipped, nil)
			continue
		}

		if err := s.refillOne(ctx, record, generative); err != nil {
			log.Printf("[ENRICH] refill %s: %v", report.RunID, err)
			report.Failed++
			report.add(record.Word, OutcomeFailed, err)
			errs = append(errs, err)
			if s.policy == StopOnError {
				report.Aborted = true
				break
			}
			continue
		}

		report.Enriched++
		report.add(record.Word, OutcomeEnriched, nil)
	}

	report.FinishedAt = time.Now().UTC()
	log.Printf("[ENRICH] refill %s finished: %s", report.RunID, report.Summary())

	return report, errors.Join(errs...)
}

func (s *Service) refillOne(ctx context.Context, record *entities.VocabularyRecord, generative provider.Client) error {
	result, err := s.fetch(ctx, record.Word, StrategyGenerativeOnly, generative)
	if err != nil {
		return newError(record.Word, StrategyGenerativeOnly, generative, err)
	}
	if err := result.applyTo(record); err != nil {
		return newError(record.Word, StrategyGenerativeOnly, generative, err)
	}
	if err := s.store.Save(ctx, record); err != nil {
		return fmt.Errorf("save %q: %w", record.Word, err)
	}
	return nil
}
