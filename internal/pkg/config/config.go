package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Nominatim NominatimConfig `mapstructure:"nominatim"`
	Overpass  OverpassConfig  `mapstructure:"overpass"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type NominatimConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type OverpassConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// UpstreamConfig applies to both outbound OSM clients.
type UpstreamConfig struct {
	// UserAgent must identify the deployment; OSM endpoints reject
	// anonymous clients.
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 35)
	v.SetDefault("nominatim.endpoint", "https://nominatim.openstreetmap.org")
	v.SetDefault("overpass.endpoint", "https://overpass-api.de/api/interpreter")
	v.SetDefault("upstream.user_agent",
		"data-tales-tree-locator/1.0 (+https://data-tales.dev/; info@data-tales.dev)")
	v.SetDefault("upstream.timeout_seconds", 30)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: TREELOCATOR_OVERPASS_ENDPOINT → overpass.endpoint
	v.SetEnvPrefix("TREELOCATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if !strings.HasPrefix(c.Nominatim.Endpoint, "http") {
		errs = append(errs, "nominatim.endpoint must be an http(s) URL")
	}
	if !strings.HasPrefix(c.Overpass.Endpoint, "http") {
		errs = append(errs, "overpass.endpoint must be an http(s) URL")
	}
	if c.Upstream.UserAgent == "" {
		errs = append(errs, "upstream.user_agent is required")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		errs = append(errs, "upstream.timeout_seconds must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
