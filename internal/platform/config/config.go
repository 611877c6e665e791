package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSourceURL is the phonebook endpoint used when none is configured.
const DefaultSourceURL = "http://www.mocky.io/v2/581335f71000004204abaf83"

// Config holds all configuration for the contact fetcher and its stub source.
type Config struct {
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Contact fetcher
	SourceURL          string `mapstructure:"SOURCE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"` // 0 disables the client timeout
	MetricsTextfile    string `mapstructure:"METRICS_TEXTFILE"`     // node-exporter textfile target, empty to skip

	// Phonebook stub
	StubServerPort   int    `mapstructure:"STUB_SERVER_PORT"`
	StubContactsFile string `mapstructure:"STUB_CONTACTS_FILE"`
}

// HTTPTimeout returns the configured client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load reads config.defaults.yaml (if present) and APP_* environment overrides.
// serviceName is only used for diagnostics.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath("../../../configs") // tests deep within internal/
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP") // APP_SOURCE_URL, APP_LOG_LEVEL etc.

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("SOURCE_URL", DefaultSourceURL)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 10)
	v.SetDefault("METRICS_TEXTFILE", "")
	v.SetDefault("STUB_SERVER_PORT", 8089)
	v.SetDefault("STUB_CONTACTS_FILE", "configs/contacts.sample.json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Printf("%s: configuration file 'config.defaults.yaml' not found; using defaults and environment variables.", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
