package config

import (
	"time"

	"github.com/rickgao/market-loader/internal/model"
)

// LoaderConfig is the root configuration for a loader instance.
type LoaderConfig struct {
	Instance    InstanceConfig     `yaml:"instance"`
	Provider    ProviderConfig     `yaml:"provider"`
	Fetch       FetchConfig        `yaml:"fetch"`
	Database    DBConfig           `yaml:"database"`
	Load        LoadConfig         `yaml:"load"`
	Schedule    ScheduleConfig     `yaml:"schedule"`
	Log         LogConfig          `yaml:"log"`
	Instruments []model.Instrument `yaml:"instruments"`
}

// InstanceConfig identifies this loader.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// ProviderConfig holds chart API settings.
type ProviderConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// FetchConfig holds the per-instrument retry budget.
type FetchConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// DBConfig holds the database connection.
type DBConfig struct {
	Driver         string        `yaml:"driver"` // mysql | postgres
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Name           string        `yaml:"name"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	SSLMode        string        `yaml:"ssl_mode"` // postgres only
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// LoadConfig holds loader settings.
type LoadConfig struct {
	Timezone string `yaml:"timezone"` // Zone of the loaded_at timestamp
}

// ScheduleConfig enables repeated runs. An empty Cron runs once and exits.
type ScheduleConfig struct {
	Cron       string `yaml:"cron"`
	HealthPort int    `yaml:"health_port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}
