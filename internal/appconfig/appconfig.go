// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/langchain-mcp/internal/jsonrpc"
	"github.com/spf13/viper"
)

const (
	// DefaultServerName is the name advertised in the initialize handshake.
	DefaultServerName = "langchain-anthropic-server"
	// DefaultServerVersion is the version advertised in the initialize handshake.
	DefaultServerVersion = "1.0.0"
	// EnvPrefix prefixes environment overrides, e.g. LANGCHAIN_MCP_DEBUG.
	EnvPrefix = "LANGCHAIN_MCP"
)

// Config represents the top-level application configuration.
type Config struct {
	ServerName    string `json:"serverName" mapstructure:"serverName"`
	ServerVersion string `json:"serverVersion" mapstructure:"serverVersion"`
	Framing       string `json:"framing" mapstructure:"framing"`
	LogFile       string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug         bool   `json:"debug" mapstructure:"debug"`
	Metrics       bool   `json:"metrics" mapstructure:"metrics"`
	ConfigPath    string `json:"-" mapstructure:"-"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("serverName", DefaultServerName)
	v.SetDefault("serverVersion", DefaultServerVersion)
	v.SetDefault("framing", string(jsonrpc.FramingAuto))
	v.SetDefault("logFile", "")
	v.SetDefault("debug", false)
	v.SetDefault("metrics", false)
}

// BindEnv enables LANGCHAIN_MCP_* overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// FramingMode parses the configured framing.
func (c Config) FramingMode() (jsonrpc.Framing, error) {
	return jsonrpc.ParseFraming(c.Framing)
}

// Validate checks values that cannot be caught by decoding.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ServerName) == "" {
		return errors.New("serverName must not be empty")
	}
	if _, err := c.FramingMode(); err != nil {
		return err
	}
	return nil
}

// FromViper materializes the merged configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load reads the configuration at path, layered over defaults and the
// environment. An empty path yields defaults plus environment.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
		}
	}
	return FromViper(v)
}
