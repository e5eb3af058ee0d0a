package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Load configuration from environment variables and optionally config files
// in the working directory. Environment variables take precedence over
// values from config files.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with config.yaml and .env looked up in dir.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SCRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Reviews.Validate(); err != nil {
		return nil, fmt.Errorf("%w: reviews: %v", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can bind it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.database_url", "")
	v.SetDefault("calendar.timezone", "Asia/Tehran")
	v.SetDefault("reviews.first", 1)
	v.SetDefault("reviews.second", 3)
	v.SetDefault("reviews.third", 7)
	v.SetDefault("reviews.exam", 14)
}
