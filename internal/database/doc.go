// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, provider seeding
//	├── vocabulary/      # Vocabulary record persistence
//	├── settings/        # Key/value settings
//	└── providers/       # Provider catalog
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./lexicon.db")
//
//	vocabRepo := vocabulary.NewRepository(db.DB)
//	settingsRepo := settings.NewRepository(db.DB)
//
//	record, err := vocabRepo.FindByWord(ctx, "xylophone")
//
// # Interface Implementations
//
//   - vocabulary.Repository: implements enrichment.Store
//   - settings.Repository: backs settingsstore.DatabaseStore
//   - providers.Repository: implements http.ProviderCatalog
package database
