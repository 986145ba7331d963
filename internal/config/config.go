package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is used when PORT is unset or not a valid port number
	DefaultPort = 3000
	// MaxCount is the hard upper bound on requested sequence length
	MaxCount = 1000
	// ConfigName is the base name of the optional config file (seqapi.toml, seqapi.yaml, seqapi.json)
	ConfigName = "seqapi"
	// PortEnv is the environment variable holding the listen port
	PortEnv = "PORT"
)

// Config represents the complete seqapi configuration
type Config struct {
	Server  ServerConfig  `json:"server" mapstructure:"server" toml:"server" yaml:"server"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging" toml:"logging" yaml:"logging"`
	Limits  LimitsConfig  `json:"limits" mapstructure:"limits" toml:"limits" yaml:"limits"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Host                   string `json:"host" mapstructure:"host" toml:"host" yaml:"host"`
	Port                   int    `json:"port" mapstructure:"port" toml:"port" yaml:"port"`
	ReadTimeoutSeconds     int    `json:"readTimeoutSeconds" mapstructure:"readTimeoutSeconds" toml:"readTimeoutSeconds" yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds    int    `json:"writeTimeoutSeconds" mapstructure:"writeTimeoutSeconds" toml:"writeTimeoutSeconds" yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds     int    `json:"idleTimeoutSeconds" mapstructure:"idleTimeoutSeconds" toml:"idleTimeoutSeconds" yaml:"idleTimeoutSeconds"`
	ShutdownTimeoutSeconds int    `json:"shutdownTimeoutSeconds" mapstructure:"shutdownTimeoutSeconds" toml:"shutdownTimeoutSeconds" yaml:"shutdownTimeoutSeconds"`
	MaxBodyBytes           int64  `json:"maxBodyBytes" mapstructure:"maxBodyBytes" toml:"maxBodyBytes" yaml:"maxBodyBytes"`
	Compression            bool   `json:"compression" mapstructure:"compression" toml:"compression" yaml:"compression"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format" toml:"format" yaml:"format"`
	Level  string `json:"level" mapstructure:"level" toml:"level" yaml:"level"`
}

// LimitsConfig bounds the work a single request may ask for
type LimitsConfig struct {
	MaxCount int `json:"maxCount" mapstructure:"maxCount" toml:"maxCount" yaml:"maxCount"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                   "",
			Port:                   DefaultPort,
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    15,
			IdleTimeoutSeconds:     60,
			ShutdownTimeoutSeconds: 10,
			MaxBodyBytes:           100 << 10,
			Compression:            true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		Limits: LimitsConfig{
			MaxCount: MaxCount,
		},
	}
}

// Addr returns the host:port listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the idle timeout as a duration
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown budget as a duration
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// ParsePort converts a raw port value to a port number, falling back to
// DefaultPort for empty, non-numeric or out-of-range input.
func ParsePort(raw string) int {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return DefaultPort
	}
	return port
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config file path. It must exist when set.
	ConfigFile string
	// SearchPaths are directories searched for seqapi.{toml,yaml,json}
	// when ConfigFile is empty. Defaults to the working directory.
	SearchPaths []string
}

// LoadResult contains the loaded config and where it came from
type LoadResult struct {
	Config       *Config
	ConfigPath   string
	UsedDefaults bool
	EnvOverrides []EnvOverride
}

// EnvOverride records an environment variable that changed a setting
type EnvOverride struct {
	Key   string `json:"key"`
	Var   string `json:"var"`
	Value string `json:"value"`
}

// envBindings maps config keys to the environment variables that override them.
// PORT is handled separately so that invalid values fall back instead of failing.
var envBindings = []struct {
	key string
	env string
}{
	{"server.host", "SEQAPI_HOST"},
	{"server.compression", "SEQAPI_COMPRESSION"},
	{"logging.level", "SEQAPI_LOG_LEVEL"},
	{"logging.format", "SEQAPI_LOG_FORMAT"},
	{"limits.maxCount", "SEQAPI_MAX_COUNT"},
}

// SupportedEnvVars lists every environment variable seqapi reads
func SupportedEnvVars() []EnvOverride {
	vars := []EnvOverride{{Key: "server.port", Var: PortEnv}}
	for _, b := range envBindings {
		vars = append(vars, EnvOverride{Key: b.key, Var: b.env})
	}
	return vars
}

// Load reads configuration from defaults, an optional config file and the environment
func Load(opts LoadOptions) (*LoadResult, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(ConfigName)
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	result := &LoadResult{}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		result.UsedDefaults = true
	} else {
		result.ConfigPath = v.ConfigFileUsed()
	}

	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.env, err)
		}
		if val, ok := os.LookupEnv(b.env); ok {
			result.EnvOverrides = append(result.EnvOverrides, EnvOverride{Key: b.key, Var: b.env, Value: val})
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if raw, ok := os.LookupEnv(PortEnv); ok {
		cfg.Server.Port = ParsePort(raw)
		result.EnvOverrides = append(result.EnvOverrides, EnvOverride{Key: "server.port", Var: PortEnv, Value: raw})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result.Config = &cfg
	return result, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.readTimeoutSeconds", d.Server.ReadTimeoutSeconds)
	v.SetDefault("server.writeTimeoutSeconds", d.Server.WriteTimeoutSeconds)
	v.SetDefault("server.idleTimeoutSeconds", d.Server.IdleTimeoutSeconds)
	v.SetDefault("server.shutdownTimeoutSeconds", d.Server.ShutdownTimeoutSeconds)
	v.SetDefault("server.maxBodyBytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.compression", d.Server.Compression)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("limits.maxCount", d.Limits.MaxCount)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: fmt.Sprintf("%d is not a valid port", c.Server.Port)}
	}
	if c.Limits.MaxCount < 0 || c.Limits.MaxCount > MaxCount {
		return &ConfigError{Field: "limits.maxCount", Message: fmt.Sprintf("must be between 0 and %d", MaxCount)}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return &ConfigError{Field: "server.maxBodyBytes", Message: "must be positive"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be 'human' or 'json'"}
	}
	return nil
}

// Encode writes the configuration in the given format (toml, yaml or json)
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	default:
		return fmt.Errorf("unsupported config format: %s", format)
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
