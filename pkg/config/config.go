package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration for a JSON:API push source.
type Config struct {
	// Name identifies the source in logs and events.
	Name string `json:"name" yaml:"name" validate:"required"`

	Remote  RemoteConfig  `json:"remote" yaml:"remote"`
	Rewrite RewriteConfig `json:"rewrite,omitempty" yaml:"rewrite,omitempty"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// RemoteConfig describes the JSON:API endpoint and the per-source request
// defaults. Per-call options win over these values.
type RemoteConfig struct {
	// Host is the base URL of the remote API, e.g. "https://api.example.com".
	Host string `json:"host" yaml:"host" validate:"required,url"`

	// Namespace is an optional path prefix inserted before resource paths.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Headers are sent with every request in addition to the media type.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Timeout bounds each request; zero means no client-side deadline.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRequestsPerTransform caps how many requests one transform may
	// plan; zero means unbounded.
	MaxRequestsPerTransform int `json:"max_requests_per_transform" yaml:"max_requests_per_transform" validate:"gte=0"`

	// Include names relationships appended as an include query parameter.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// KeyName is the secondary key under which remote-assigned ids are
	// stored in the key map.
	KeyName string `json:"key_name" yaml:"key_name" validate:"required"`
}

// RewriteConfig enables spec-driven reshaping of outbound request bodies
// for servers that deviate from stock JSON:API envelopes.
type RewriteConfig struct {
	Enabled    bool               `json:"enabled" yaml:"enabled"`
	Operations []RewriteOperation `json:"operations,omitempty" yaml:"operations,omitempty"`
}

// RewriteOperation is a single kazaam operation applied to outbound
// bodies, in registration order.
type RewriteOperation struct {
	Operation string                 `json:"operation" yaml:"operation" validate:"required"`
	Spec      map[string]interface{} `json:"spec" yaml:"spec"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=json console"`
}

// MetricsConfig controls prometheus registration.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Name: "recordsync",
		Remote: RemoteConfig{
			Timeout:                 0,
			MaxRequestsPerTransform: 0,
			KeyName:                 "remoteId",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "recordsync",
		},
	}
}

// LoadConfiguration loads configuration using viper, honoring defaults,
// an optional config file and RECORDSYNC_* environment variables.
func LoadConfiguration(configFile string) (*Config, error) {
	viper.SetDefault("Name", "recordsync")
	viper.SetDefault("Remote.Timeout", time.Duration(0))
	viper.SetDefault("Remote.MaxRequestsPerTransform", 0)
	viper.SetDefault("Remote.KeyName", "remoteId")

	viper.SetDefault("Logging.Level", "info")
	viper.SetDefault("Logging.Format", "json")

	viper.SetDefault("Metrics.Enabled", true)
	viper.SetDefault("Metrics.Namespace", "recordsync")

	viper.SetEnvPrefix("RECORDSYNC")
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
