// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "DIET_REGISTRY"

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	// PublicURL is the externally reachable base URL, used to tell MCP
	// clients where to post messages.
	PublicURL string `mapstructure:"publicURL"`
}

// APIConfig points at the remote registry backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"dbPath"`
}

type ExportConfig struct {
	DateLayout  string `mapstructure:"dateLayout"`
	Timezone    string `mapstructure:"timezone"`
	CatalogFile string `mapstructure:"catalogFile"`
	Format      string `mapstructure:"format"`
}

type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.transport", "http")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8012)
	v.SetDefault("server.publicURL", "")
	v.SetDefault("api.baseURL", "https://web-production-4f0d.up.railway.app/api/v2/")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 50*time.Second)
	v.SetDefault("storage.dbPath", "/data/diet-registry.db")
	v.SetDefault("export.dateLayout", "02/01/2006")
	v.SetDefault("export.timezone", "UTC")
	v.SetDefault("export.catalogFile", "")
	v.SetDefault("export.format", "csv")
	v.SetDefault("logging.mode", "production")
	v.SetDefault("logging.level", "info")
}

// New returns a viper instance with defaults and environment overrides
// (DIET_REGISTRY_API_TOKEN, DIET_REGISTRY_SERVER_PORT, ...) wired in.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and decodes the result. An
// empty path looks for diet-registry.yaml in the working directory and
// /etc/diet-registry; a missing default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("diet-registry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/diet-registry")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return &ConfigError{Field: "api.baseURL", Message: "must not be empty"}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: fmt.Sprintf("invalid port %d", c.Server.Port)}
	}
	switch strings.ToLower(c.Export.Format) {
	case "csv", "xlsx":
	default:
		return &ConfigError{Field: "export.format", Message: fmt.Sprintf("unsupported format %q", c.Export.Format)}
	}
	if _, err := time.LoadLocation(c.Export.Timezone); err != nil {
		return &ConfigError{Field: "export.timezone", Message: err.Error()}
	}
	return nil
}

// Location resolves Export.Timezone; Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Export.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MessageURL is the absolute URL MCP clients post JSON-RPC messages to.
func (c *Config) MessageURL() string {
	base := c.Server.PublicURL
	if base == "" {
		base = fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
	}
	return strings.TrimRight(base, "/") + "/message"
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
