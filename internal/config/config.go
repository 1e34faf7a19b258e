package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Timers   TimersConfig
	Database DatabaseConfig
	Notify   NotifyConfig
	Log      LogConfig
}

// TimersConfig holds countdown behaviour.
type TimersConfig struct {
	DefaultSeconds int64         `mapstructure:"default_seconds"`
	ResetSeconds   int64         `mapstructure:"reset_seconds"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// NotifyConfig selects the expiry collaborators.
type NotifyConfig struct {
	Bell    bool
	Journal bool
}

// LogConfig routes the standard logger. An empty path discards log output.
type LogConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix MULTITIMER_.
// An explicit path (from --config) wins over MULTITIMER_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("timers.default_seconds", 300)
	v.SetDefault("timers.reset_seconds", 300)
	v.SetDefault("timers.tick_interval", time.Second)
	v.SetDefault("database.path", filepath.Join(dataDir(), "multitimer.db"))
	v.SetDefault("notify.bell", true)
	v.SetDefault("notify.journal", true)
	v.SetDefault("log.path", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("MULTITIMER_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MULTITIMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// a missing file means defaults; one that fails to parse is an error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Timers.DefaultSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timers.default_seconds must be positive, got %d", c.Timers.DefaultSeconds))
	}
	if c.Timers.ResetSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timers.reset_seconds must be positive, got %d", c.Timers.ResetSeconds))
	}
	if c.Timers.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("timers.tick_interval must be positive, got %s", c.Timers.TickInterval))
	}
	return errors.Join(errs...)
}

// Path resolves the config file Load and Save use: path, then
// MULTITIMER_CONFIG, then the default location.
func Path(path string) string {
	if path == "" {
		path = os.Getenv("MULTITIMER_CONFIG")
	}
	if path == "" {
		path = filepath.Join(configDir(), "config.toml")
	}
	return path
}

// Save writes cfg to Path(path), creating the config directory if needed.
func Save(path string, cfg Config) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("timers.default_seconds", cfg.Timers.DefaultSeconds)
	v.Set("timers.reset_seconds", cfg.Timers.ResetSeconds)
	v.Set("timers.tick_interval", cfg.Timers.TickInterval.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("notify.bell", cfg.Notify.Bell)
	v.Set("notify.journal", cfg.Notify.Journal)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "multitimer")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "multitimer")
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "multitimer")
}
