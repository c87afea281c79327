// Package config loads navd settings from an optional config file, the
// environment and built-in defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "navd"

	// ConfigFileName is the name of the config file, without extension.
	ConfigFileName = "navd"

	// EnvPrefix prefixes environment overrides, e.g. NAVD_SERVER_PORT.
	EnvPrefix = "NAVD"

	// EnvVarConfigDir names an extra directory searched for the config file.
	EnvVarConfigDir = "NAVD_CONFIG_DIR"
)

// Config keys.
const (
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
	KeyServerPort      = "server.port"
	KeyShutdownTimeout = "server.shutdown_timeout"
	KeyReadTimeout     = "server.read_timeout"
	KeyWriteTimeout    = "server.write_timeout"
	KeyIdleTimeout     = "server.idle_timeout"
	KeyMaxHeaderBytes  = "server.max_header_bytes"
	KeySiteName        = "site.name"
	KeyMenuFiles       = "menus.files"
	KeyPageMenus       = "menus.page"
)

// Defaults.
const (
	DefaultLogLevel        = "info"
	DefaultServerPort      = 9876
	DefaultShutdownTimeout = 5 * time.Second
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20
	DefaultSiteName        = "navd"
)

// ErrInvalidPort is returned when the configured port is out of range.
var ErrInvalidPort = errors.New("server port must be between 0 and 65535")

// ErrInvalidHeaderLimit is returned when the header size limit is not positive.
var ErrInvalidHeaderLimit = errors.New("server max header bytes must be positive")

// Config holds the resolved settings.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Site   SiteConfig   `mapstructure:"site"`
	Menus  MenusConfig  `mapstructure:"menus"`

	// File is the config file that was read, empty if none was found.
	File string `mapstructure:"-"`
}

// LogConfig configures the log sink.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// SiteConfig configures the rendered page.
type SiteConfig struct {
	Name string `mapstructure:"name"`
}

// MenusConfig lists menu definition files and the menus shown on the page.
type MenusConfig struct {
	Files []string `mapstructure:"files"`
	Page  []string `mapstructure:"page"`
}

// Validate checks the resolved settings.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	if c.Server.MaxHeaderBytes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHeaderLimit, c.Server.MaxHeaderBytes)
	}
	return nil
}

// SearchPaths returns the directories searched for the config file when no
// explicit file is given.
func SearchPaths() []string {
	paths := []string{}
	if dir := os.Getenv(EnvVarConfigDir); dir != "" {
		paths = append(paths, dir)
	}
	paths = append(paths, ".")
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppName))
	}
	return paths
}

// Load resolves the configuration. With a non-empty file that file must
// exist; otherwise the search paths are tried and a missing config file is
// not an error. Relative menu file paths are resolved against the
// directory of the config file.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigFileName)
		for _, p := range SearchPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.File != "" {
		base := filepath.Dir(cfg.File)
		for i, f := range cfg.Menus.Files {
			if !filepath.IsAbs(f) {
				cfg.Menus.Files[i] = filepath.Join(base, f)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyServerPort, DefaultServerPort)
	v.SetDefault(KeyShutdownTimeout, DefaultShutdownTimeout)
	v.SetDefault(KeyReadTimeout, DefaultReadTimeout)
	v.SetDefault(KeyWriteTimeout, DefaultWriteTimeout)
	v.SetDefault(KeyIdleTimeout, DefaultIdleTimeout)
	v.SetDefault(KeyMaxHeaderBytes, DefaultMaxHeaderBytes)
	v.SetDefault(KeySiteName, DefaultSiteName)
	v.SetDefault(KeyMenuFiles, []string{})
	v.SetDefault(KeyPageMenus, []string{})
}
