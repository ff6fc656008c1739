// Package config loads propkit settings from an optional YAML file and
// PROPKIT_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/joshuapare/propkit/pkg/detect"
	"github.com/joshuapare/propkit/propstore"
)

// EnvPrefix is prepended to every environment override, e.g.
// PROPKIT_PROPERTY_PATH or PROPKIT_LOG_LEVEL.
const EnvPrefix = "PROPKIT"

type Config struct {
	Property PropertyConfig `mapstructure:"property"`
	Detect   DetectConfig   `mapstructure:"detect"`
	Baseline BaselineConfig `mapstructure:"baseline"`
	Server   ServerConfig   `mapstructure:"server"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Log      LogConfig      `mapstructure:"log"`
}

type PropertyConfig struct {
	Type        string `mapstructure:"type"` // build, system, default, vendor
	Path        string `mapstructure:"path"` // overrides type
	Diagnostics bool   `mapstructure:"diagnostics"`
}

type DetectConfig struct {
	FridaAddr      string   `mapstructure:"frida_addr"`
	ProbeTimeoutMS int      `mapstructure:"probe_timeout_ms"`
	ProcessCommand string   `mapstructure:"process_command"`
	MapsPath       string   `mapstructure:"maps_path"`
	MountsPath     string   `mapstructure:"mounts_path"`
	SELinuxPath    string   `mapstructure:"selinux_path"`
	ExtraRootPaths []string `mapstructure:"extra_root_paths"`
}

type BaselineConfig struct {
	Type     string `mapstructure:"type"` // sqlite, mysql
	Path     string `mapstructure:"path"` // sqlite file
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("property.type", "build")
	v.SetDefault("property.path", "")
	v.SetDefault("property.diagnostics", false)

	v.SetDefault("detect.frida_addr", detect.DefaultFridaAddr)
	v.SetDefault("detect.probe_timeout_ms", int(detect.DefaultProbeTimeout/time.Millisecond))
	v.SetDefault("detect.process_command", detect.DefaultProcessCommand)
	v.SetDefault("detect.maps_path", "/proc/self/maps")
	v.SetDefault("detect.mounts_path", "/proc/mounts")
	v.SetDefault("detect.selinux_path", "/sys/fs/selinux/enforce")
	v.SetDefault("detect.extra_root_paths", []string{})

	v.SetDefault("baseline.type", "sqlite")
	v.SetDefault("baseline.path", "propkit.db")
	v.SetDefault("baseline.host", "127.0.0.1")
	v.SetDefault("baseline.port", 3306)
	v.SetDefault("baseline.user", "")
	v.SetDefault("baseline.password", "")
	v.SetDefault("baseline.db_name", "propkit")

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("watch.debounce_ms", 200)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Default returns the built-in configuration without consulting files or
// the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads path (YAML) when non-empty, then applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PropertyOptions converts the property section into parser options.
func (c *Config) PropertyOptions(log logrus.FieldLogger) propstore.Options {
	return propstore.Options{
		Type:               propstore.ParseType(c.Property.Type),
		Path:               c.Property.Path,
		Logger:             log,
		CollectDiagnostics: c.Property.Diagnostics,
	}
}

// DetectConfig converts the detect section into a check configuration.
func (c *Config) DetectConfig(log logrus.FieldLogger) detect.Config {
	return detect.Config{
		FridaAddr:      c.Detect.FridaAddr,
		ProbeTimeout:   time.Duration(c.Detect.ProbeTimeoutMS) * time.Millisecond,
		ProcessCommand: c.Detect.ProcessCommand,
		MapsPath:       c.Detect.MapsPath,
		MountsPath:     c.Detect.MountsPath,
		SELinuxPath:    c.Detect.SELinuxPath,
		ExtraRootPaths: c.Detect.ExtraRootPaths,
		Property:       c.PropertyOptions(log),
	}
}

// WatchDebounce returns the watch debounce interval.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
