package config

// Default paths and schedules
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./lexicon.db"

	// DefaultRefillSchedule runs the refill job daily at 03:00.
	DefaultRefillSchedule = "0 3 * * *"
)

// Settings backends
const (
	SettingsBackendDatabase = "database"
	SettingsBackendRedis    = "redis"
)
