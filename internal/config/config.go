package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Settings
		Providers
		Dictionary
		Tasks
		Refill

		// source keeps the viper instance so per-provider keys
		// (LLM_<NAME>_*) can be read on demand.
		source *viper.Viper
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver string // "sqlite" or "postgres"
		Path   string
		DSN    string
	}
	Settings struct {
		Backend       string // "database" or "redis"
		RedisAddr     string
		RedisPassword string
		RedisDB       int
	}
	Providers struct {
		Workers int // bound on concurrent blocking SDK calls
	}
	Dictionary struct {
		Enabled bool
		URL     string
		Timeout time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Refill struct {
		ScheduleEnabled bool
		Schedule        string // Cron format: "0 3 * * *" = daily at 03:00
		StopOnError     bool
	}
)

func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")

	v.SetDefault("settings_backend", SettingsBackendDatabase)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("provider_workers", 4)

	v.SetDefault("dictionary_enabled", true)
	v.SetDefault("dictionary_url", "")
	v.SetDefault("dictionary_timeout", "10s")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("refill_schedule_enabled", false)
	v.SetDefault("refill_schedule", DefaultRefillSchedule)
	v.SetDefault("refill_stop_on_error", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: v.GetString("DATABASE_DRIVER"),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Settings: Settings{
			Backend:       v.GetString("SETTINGS_BACKEND"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		Providers: Providers{
			Workers: v.GetInt("PROVIDER_WORKERS"),
		},
		Dictionary: Dictionary{
			Enabled: v.GetBool("DICTIONARY_ENABLED"),
			URL:     v.GetString("DICTIONARY_URL"),
			Timeout: v.GetDuration("DICTIONARY_TIMEOUT"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Refill: Refill{
			ScheduleEnabled: v.GetBool("REFILL_SCHEDULE_ENABLED"),
			Schedule:        v.GetString("REFILL_SCHEDULE"),
			StopOnError:     v.GetBool("REFILL_STOP_ON_ERROR"),
		},
		source: v,
	}
}

// Source exposes the underlying configuration for keys that are not part of
// the static struct, such as LLM_YI_API_KEY.
func (c *Config) Source() *viper.Viper {
	return c.source
}
