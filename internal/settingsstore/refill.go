package settingsstore

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

// Setting sources reported alongside effective values.
const (
	SourceDatabase = "database"
	SourceConfig   = "config"
)

// RefillScheduleConfig is the effective refill schedule.
type RefillScheduleConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// RefillScheduleInfo includes source information for each field.
type RefillScheduleInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"`

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`
}

// RefillStatus is the outcome of the last refill run.
type RefillStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"` // "success", "partial", "failed"
	Message   string     `json:"message,omitempty"`
}

// RefillSettings layers stored overrides on top of configured defaults.
type RefillSettings struct {
	store    KeyValueStore
	defaults RefillScheduleConfig
}

func NewRefillSettings(store KeyValueStore, defaults RefillScheduleConfig) *RefillSettings {
	return &RefillSettings{store: store, defaults: defaults}
}

// Info returns the effective schedule (store > config).
func (s *RefillSettings) Info(ctx context.Context) RefillScheduleInfo {
	info := RefillScheduleInfo{
		Enabled:        s.defaults.Enabled,
		EnabledSource:  SourceConfig,
		Schedule:       s.defaults.Schedule,
		ScheduleSource: SourceConfig,
	}

	if v, ok, err := s.store.Get(ctx, entities.SettingKeyRefillEnabled); err == nil && ok && v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			info.Enabled = enabled
			info.EnabledSource = SourceDatabase
		}
	}
	if v, ok, err := s.store.Get(ctx, entities.SettingKeyRefillSchedule); err == nil && ok && v != "" {
		info.Schedule = v
		info.ScheduleSource = SourceDatabase
	}
	return info
}

// Config returns the effective schedule without source details.
func (s *RefillSettings) Config(ctx context.Context) RefillScheduleConfig {
	info := s.Info(ctx)
	return RefillScheduleConfig{Enabled: info.Enabled, Schedule: info.Schedule}
}

// Save stores schedule overrides after validating the cron expression.
func (s *RefillSettings) Save(ctx context.Context, cfg RefillScheduleConfig) error {
	if err := ValidateCronSchedule(cfg.Schedule); err != nil {
		return err
	}
	if err := s.store.Set(ctx, entities.SettingKeyRefillEnabled, strconv.FormatBool(cfg.Enabled)); err != nil {
		return err
	}
	return s.store.Set(ctx, entities.SettingKeyRefillSchedule, cfg.Schedule)
}

// Status returns the last recorded refill outcome.
func (s *RefillSettings) Status(ctx context.Context) RefillStatus {
	status := RefillStatus{}

	if v, ok, err := s.store.Get(ctx, entities.SettingKeyRefillLastAt); err == nil && ok {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			status.LastRunAt = &ts
		}
	}
	if v, ok, err := s.store.Get(ctx, entities.SettingKeyRefillLastStatus); err == nil && ok {
		status.Status = v
	}
	if v, ok, err := s.store.Get(ctx, entities.SettingKeyRefillLastMessage); err == nil && ok {
		status.Message = v
	}
	return status
}

// RecordStatus stores the outcome of a refill run stamped with the current time.
func (s *RefillSettings) RecordStatus(ctx context.Context, status, message string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.store.Set(ctx, entities.SettingKeyRefillLastAt, now); err != nil {
		return err
	}
	if err := s.store.Set(ctx, entities.SettingKeyRefillLastStatus, status); err != nil {
		return err
	}
	return s.store.Set(ctx, entities.SettingKeyRefillLastMessage, message)
}

// ValidateCronSchedule validates a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return lexicon.NewValidationError("schedule", err.Error())
	}
	return nil
}
