package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/lexicon/internal/database"
	"github.com/mrlokans/lexicon/internal/database/providers"
	"github.com/mrlokans/lexicon/internal/database/vocabulary"
	"github.com/mrlokans/lexicon/internal/enrichment"
	"github.com/mrlokans/lexicon/internal/http"
	"github.com/mrlokans/lexicon/internal/provider"
	"github.com/mrlokans/lexicon/internal/scheduler"
	"github.com/mrlokans/lexicon/internal/settingsstore"
	"github.com/mrlokans/lexicon/internal/tasks"
)

// =============================================================================
// Providers
// =============================================================================

var _ provider.Client = (*provider.ChatClient)(nil)
var _ provider.Client = (*provider.SDKClient)(nil)
var _ provider.Client = (*provider.StructuredClient)(nil)

var _ settingsstore.ClientResolver = (*provider.Registry)(nil)
var _ enrichment.ProviderResolver = (*settingsstore.ActiveProvider)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ enrichment.Store = (*vocabulary.Repository)(nil)
var _ http.ProviderCatalog = (*providers.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

var _ settingsstore.KeyValueStore = (*settingsstore.DatabaseStore)(nil)
var _ settingsstore.KeyValueStore = (*settingsstore.RedisStore)(nil)

// =============================================================================
// Orchestration
// =============================================================================

var _ http.WordService = (*enrichment.Service)(nil)
var _ tasks.WordEnricher = (*enrichment.Service)(nil)
var _ scheduler.Refiller = (*enrichment.Service)(nil)

var _ http.RefillRunner = (*scheduler.RefillScheduler)(nil)
var _ http.RefillScheduleControl = (*scheduler.RefillScheduler)(nil)
var _ tasks.RefillRunner = (*scheduler.RefillScheduler)(nil)

var _ http.ProviderSelector = (*settingsstore.ActiveProvider)(nil)
var _ http.RefillSettingsStore = (*settingsstore.RefillSettings)(nil)
var _ scheduler.RefillSettings = (*settingsstore.RefillSettings)(nil)

var _ http.TaskQueue = (*tasks.Client)(nil)
