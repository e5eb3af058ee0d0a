package config

import (
	"time"

	"github.com/phrazzld/scry-planner/internal/domain"
)

// Storage drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig           `mapstructure:"server" validate:"required"`
	Storage  StorageConfig          `mapstructure:"storage" validate:"required"`
	Calendar CalendarConfig         `mapstructure:"calendar" validate:"required"`
	Reviews  domain.ReviewIntervals `mapstructure:"reviews"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects and configures the task store.
type StorageConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=file postgres"`
	DataDir     string `mapstructure:"data_dir" validate:"required_if=Driver file"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
}

// CalendarConfig controls how "today" is computed.
type CalendarConfig struct {
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}

// Location loads the configured time zone.
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
