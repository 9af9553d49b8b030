package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/lexicon/internal/dictionary"
	"github.com/mrlokans/lexicon/internal/entities"
	"github.com/mrlokans/lexicon/internal/provider"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var defaultProviders = []entities.ModelProvider{
	{Name: provider.KindChat.String(), BaseURL: provider.DefaultChatBaseURL, APIKeyRequired: true, ModelTypes: provider.DefaultChatModel, IsActive: true},
	{Name: provider.KindSDK.String(), BaseURL: provider.DefaultSDKBaseURL, APIKeyRequired: true, ModelTypes: provider.DefaultSDKCreativeModel + "," + provider.DefaultSDKModel, IsActive: true},
	{Name: provider.KindDictionary.String(), BaseURL: dictionary.DefaultBaseURL, APIKeyRequired: false, ModelTypes: "dictionary", IsActive: true},
}

type Database struct {
	DB *gorm.DB
}

// Options selects the driver and connection target.
type Options struct {
	Driver   string // "sqlite" (default) or "postgres"
	Path     string // SQLite file path
	DSN      string // Postgres connection string
	LogLevel logger.LogLevel
}

// NewDatabase opens a SQLite database at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(Options{Driver: DriverSQLite, Path: dbPath, LogLevel: logger.Info})
}

// Open connects, migrates and seeds the database.
func Open(opts Options) (*Database, error) {
	var dialector gorm.Dialector
	target := opts.Path
	switch opts.Driver {
	case "", DriverSQLite:
		dialector = sqlite.Open(opts.Path)
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		dialector = postgres.Open(opts.DSN)
		target = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.VocabularyRecord{},
		&entities.Setting{},
		&entities.ModelProvider{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedProviders(); err != nil {
		return nil, fmt.Errorf("failed to seed providers: %w", err)
	}

	log.Printf("Database initialized successfully at %s", target)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks database connectivity.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) seedProviders() error {
	for _, p := range defaultProviders {
		var existing entities.ModelProvider
		result := d.DB.Where("name = ?", p.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&p).Error; err != nil {
				return fmt.Errorf("failed to create provider %s: %w", p.Name, err)
			}
			log.Printf("Created provider: %s", p.Name)
		} else if result.Error != nil {
			return result.Error
		}
	}
	return nil
}
