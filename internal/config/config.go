package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".wellnest"
	fileName = "config.yaml"

	// HomeEnv overrides the home directory that holds .wellnest.
	HomeEnv = "WELLNEST_HOME"

	DefaultUser       = "default"
	DefaultDriver     = "json"
	DefaultLogLevel   = "warn"
	DefaultRemindSpec = "@every 1h"
)

// ErrUnknownKey is returned by Get and Set for keys that are not part of Config.
var ErrUnknownKey = errors.New("unknown config key")

type Storage struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path,omitempty"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type Remind struct {
	Spec string `yaml:"spec"`
}

// Config is the content of ~/.wellnest/config.yaml.
type Config struct {
	User    string  `yaml:"user"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Remind  Remind  `yaml:"remind"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		User:    DefaultUser,
		Storage: Storage{Driver: DefaultDriver},
		Log:     Log{Level: DefaultLogLevel},
		Remind:  Remind{Spec: DefaultRemindSpec},
	}
}

// ResolveHome returns $WELLNEST_HOME when set, otherwise the user's home directory.
func ResolveHome() (string, error) {
	if h := strings.TrimSpace(os.Getenv(HomeEnv)); h != "" {
		return h, nil
	}
	return os.UserHomeDir()
}

// WellnestDir returns the path to ~/.wellnest.
func WellnestDir(homeDir string) string {
	return filepath.Join(homeDir, dirName)
}

// Path returns the path to the config file.
func Path(homeDir string) string {
	return filepath.Join(WellnestDir(homeDir), fileName)
}

// Read loads the config file, filling unset fields with defaults.
// A missing file yields Default().
func Read(homeDir string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(Path(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", Path(homeDir), err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// Write saves cfg to the config file.
func Write(homeDir string, cfg Config) error {
	if err := os.MkdirAll(WellnestDir(homeDir), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(Path(homeDir), data, 0644)
}

func (c *Config) fillDefaults() {
	d := Default()
	if strings.TrimSpace(c.User) == "" {
		c.User = d.User
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = d.Storage.Driver
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Remind.Spec == "" {
		c.Remind.Spec = d.Remind.Spec
	}
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

var fields = map[string]field{
	"user": {
		get: func(c *Config) string { return c.User },
		set: func(c *Config, v string) error {
			if v == "" {
				return fmt.Errorf("user cannot be empty")
			}
			c.User = v
			return nil
		},
	},
	"storage.driver": {
		get: func(c *Config) string { return c.Storage.Driver },
		set: func(c *Config, v string) error {
			v = strings.ToLower(v)
			if v != "json" && v != "sqlite" {
				return fmt.Errorf("invalid storage driver %q (valid: json, sqlite)", v)
			}
			c.Storage.Driver = v
			return nil
		},
	},
	"storage.path": {
		get: func(c *Config) string { return c.Storage.Path },
		set: func(c *Config, v string) error { c.Storage.Path = v; return nil },
	},
	"log.level": {
		get: func(c *Config) string { return c.Log.Level },
		set: func(c *Config, v string) error {
			switch strings.ToLower(v) {
			case "trace", "debug", "info", "warn", "error", "disabled":
				c.Log.Level = strings.ToLower(v)
				return nil
			}
			return fmt.Errorf("invalid log level %q", v)
		},
	},
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) error { c.Log.File = v; return nil },
	},
	"remind.spec": {
		get: func(c *Config) string { return c.Remind.Spec },
		set: func(c *Config, v string) error {
			if v == "" {
				return fmt.Errorf("remind.spec cannot be empty")
			}
			c.Remind.Spec = v
			return nil
		},
	},
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under a dotted key such as "storage.driver".
func (c Config) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(&c), nil
}

// Set validates and assigns value to a dotted key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.set(c, strings.TrimSpace(value))
}
