package entrypoint

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/lexicon/internal/config"
	"github.com/mrlokans/lexicon/internal/database"
	"github.com/mrlokans/lexicon/internal/database/providers"
	"github.com/mrlokans/lexicon/internal/database/settings"
	"github.com/mrlokans/lexicon/internal/database/vocabulary"
	"github.com/mrlokans/lexicon/internal/enrichment"
	"github.com/mrlokans/lexicon/internal/provider"
	"github.com/mrlokans/lexicon/internal/scheduler"
	"github.com/mrlokans/lexicon/internal/settingsstore"
	"github.com/mrlokans/lexicon/internal/workerpool"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	Config *config.Config

	DB        *database.Database
	Registry  *provider.Registry
	Active    *settingsstore.ActiveProvider
	Words     *enrichment.Service
	Refill    *settingsstore.RefillSettings
	Scheduler *scheduler.RefillScheduler
	Catalog   *providers.Repository

	closers []func() error
}

// BuildOption adjusts how Build wires the application.
type BuildOption func(*buildOptions)

type buildOptions struct {
	dbLogLevel logger.LogLevel
}

// WithDatabaseLogLevel sets the GORM log level. Commands that print to
// stdout use this to keep SQL traces out of their output.
func WithDatabaseLogLevel(level logger.LogLevel) BuildOption {
	return func(o *buildOptions) {
		o.dbLogLevel = level
	}
}

// Build opens storage and wires every component. Callers must Close the
// returned App.
func Build(cfg *config.Config, opts ...BuildOption) (*App, error) {
	o := buildOptions{dbLogLevel: logger.Info}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := database.Open(database.Options{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.DSN,
		LogLevel: o.dbLogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{Config: cfg, DB: db}
	app.closers = append(app.closers, db.Close)

	store, err := newSettingsStore(cfg, db)
	if err != nil {
		app.Close()
		return nil, err
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		app.closers = append(app.closers, closer.Close)
	}

	app.Registry = provider.NewRegistry(cfg.Source(), workerpool.New(cfg.Providers.Workers))
	app.Active = settingsstore.NewActiveProvider(store, app.Registry)
	app.Catalog = providers.NewRepository(db.DB)

	policy := enrichment.ContinueOnError
	if cfg.Refill.StopOnError {
		policy = enrichment.StopOnError
	}
	serviceOpts := []enrichment.Option{enrichment.WithBatchPolicy(policy)}

	if cfg.Dictionary.Enabled {
		dict, err := app.Registry.GetOrCreate(provider.Config{
			Kind:    provider.KindDictionary,
			BaseURL: cfg.Dictionary.URL,
			Timeout: cfg.Dictionary.Timeout,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create dictionary client: %w", err)
		}
		serviceOpts = append(serviceOpts, enrichment.WithDictionary(dict))
	} else {
		log.Printf("Dictionary disabled, all words use the active provider only")
	}

	app.Words = enrichment.NewService(vocabulary.NewRepository(db.DB), app.Active, serviceOpts...)

	app.Refill = settingsstore.NewRefillSettings(store, settingsstore.RefillScheduleConfig{
		Enabled:  cfg.Refill.ScheduleEnabled,
		Schedule: cfg.Refill.Schedule,
	})
	app.Scheduler = scheduler.NewRefillScheduler(app.Words, app.Refill)

	return app, nil
}

// Close releases storage handles in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error during close: %v", err)
		}
	}
	a.closers = nil
}

func newSettingsStore(cfg *config.Config, db *database.Database) (settingsstore.KeyValueStore, error) {
	switch cfg.Settings.Backend {
	case "", config.SettingsBackendDatabase:
		return settingsstore.NewDatabaseStore(settings.NewRepository(db.DB)), nil
	case config.SettingsBackendRedis:
		store := settingsstore.NewRedisStore(settingsstore.RedisOptions{
			Addr:     cfg.Settings.RedisAddr,
			Password: cfg.Settings.RedisPassword,
			DB:       cfg.Settings.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Settings.RedisAddr, err)
		}
		log.Printf("Settings stored in redis at %s", cfg.Settings.RedisAddr)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported settings backend %q", cfg.Settings.Backend)
	}
}
