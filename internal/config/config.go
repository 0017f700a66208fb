package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "INVENTORY"

// Config holds everything the CLI needs at startup.
type Config struct {
	Database Database `mapstructure:"database"`
	Stock    Stock    `mapstructure:"stock"`
}

type Database struct {
	URL            string        `mapstructure:"url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
}

type Stock struct {
	// EnforceFloor rejects stock adjustments that would leave a negative quantity.
	EnforceFloor bool `mapstructure:"enforce_floor"`
}

// Load reads configuration from the environment, an optional config file and
// defaults, in that order of precedence.
//
// The file is taken from INVENTORY_CONFIG when set; otherwise inventory.yaml
// in the working directory is used if present.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.url", "")
	v.SetDefault("database.connect_timeout", "5s")
	v.SetDefault("database.query_timeout", "3s")
	v.SetDefault("stock.enforce_floor", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// DATABASE_URL is kept as a fallback for existing deployments.
	if err := v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return Config{}, fmt.Errorf("failed to bind database url: %w", err)
	}

	explicit := os.Getenv(envPrefix + "_CONFIG")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("inventory")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("%s_DATABASE_URL (or DATABASE_URL) is required", envPrefix)
	}
	if c.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("database.connect_timeout must be positive")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be positive")
	}
	return nil
}

// RedactedURL returns the database URL with any password masked, for logging.
func (c Config) RedactedURL() string {
	u, err := url.Parse(c.Database.URL)
	if err != nil || u.Scheme == "" {
		return "<redacted>"
	}
	return u.Redacted()
}
