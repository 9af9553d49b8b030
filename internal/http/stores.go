package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexicon/internal/enrichment"
	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/settingsstore"
)

// WordService enriches and serves vocabulary records.
// Implemented by enrichment.Service.
type WordService interface {
	Enrich(ctx context.Context, word string) (*entities.VocabularyRecord, error)
	Lookup(ctx context.Context, word string) (*entities.VocabularyRecord, error)
	List(ctx context.Context, limit, offset int) ([]entities.VocabularyRecord, int64, error)
	Delete(ctx context.Context, id uint) error
}

// RefillRunner runs a refill pass and records its outcome.
// Implemented by scheduler.RefillScheduler.
type RefillRunner interface {
	RunOnce(ctx context.Context) (*enrichment.RefillReport, error)
}

// RefillScheduleControl reports and applies the refill schedule.
// Implemented by scheduler.RefillScheduler.
type RefillScheduleControl interface {
	Reschedule(ctx context.Context) error
	NextRunTime() *time.Time
	IsRefilling() bool
}

// TaskQueue enqueues background work. Implemented by tasks.Client.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// ProviderSelector reads and changes the active provider.
// Implemented by settingsstore.ActiveProvider.
type ProviderSelector interface {
	Active(ctx context.Context) (string, error)
	SetActive(ctx context.Context, name string) error
}

// ProviderCatalog lists known providers. Implemented by providers.Repository.
type ProviderCatalog interface {
	ListActive(ctx context.Context) ([]entities.ModelProvider, error)
}

// RefillSettingsStore persists refill schedule overrides and run outcomes.
// Implemented by settingsstore.RefillSettings.
type RefillSettingsStore interface {
	Info(ctx context.Context) settingsstore.RefillScheduleInfo
	Save(ctx context.Context, cfg settingsstore.RefillScheduleConfig) error
	Status(ctx context.Context) settingsstore.RefillStatus
}
