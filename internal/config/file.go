package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAWSInitTimeout = 5 * time.Second
	DefaultFetchTimeout   = 30 * time.Second
	DefaultPresignExpiry  = time.Hour
	DefaultReloadInterval = 10 * time.Second
)

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "loupe"), nil
}

// ConfigPath returns the config file path, honoring the LOUPE_CONFIG
// environment variable when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("LOUPE_CONFIG")); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

type TimeoutConfig struct {
	AWSInit Duration `yaml:"aws_init,omitempty"`
	Fetch   Duration `yaml:"fetch,omitempty"`
}

type PresignConfig struct {
	Expiry Duration `yaml:"expiry,omitempty"`
}

type ReloadConfig struct {
	Interval Duration `yaml:"interval,omitempty"`
}

type StartupConfig struct {
	Region  string `yaml:"region,omitempty"`
	Profile string `yaml:"profile,omitempty"`
}

type FileConfig struct {
	mu       sync.RWMutex  `yaml:"-"`
	Timeouts TimeoutConfig `yaml:"timeouts,omitempty"`
	Presign  PresignConfig `yaml:"presign,omitempty"`
	Reload   ReloadConfig  `yaml:"reload,omitempty"`
	Startup  StartupConfig `yaml:"startup,omitempty"`
}

// Duration wraps time.Duration for YAML marshal/unmarshal as string (e.g., "5s", "30s")
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		Timeouts: TimeoutConfig{
			AWSInit: Duration(DefaultAWSInitTimeout),
			Fetch:   Duration(DefaultFetchTimeout),
		},
		Presign: PresignConfig{
			Expiry: Duration(DefaultPresignExpiry),
		},
		Reload: ReloadConfig{
			Interval: Duration(DefaultReloadInterval),
		},
	}
}

var (
	fileConfig     *FileConfig
	fileConfigOnce sync.Once
)

func File() *FileConfig {
	fileConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = DefaultFileConfig()
		}
		fileConfig = cfg
	})
	return fileConfig
}

func Load() (*FileConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultFileConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultFileConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultFileConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *FileConfig) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	snapshot := withRLock(&c.mu, func() FileConfig {
		return FileConfig{
			Timeouts: c.Timeouts,
			Presign:  c.Presign,
			Reload:   c.Reload,
			Startup:  c.Startup,
		}
	})

	data, err := yaml.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Atomic write: write to temp file, then rename
	tmpFile, err := os.CreateTemp(dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename config file: %w", err)
	}

	return nil
}

func (c *FileConfig) applyDefaults() {
	if c.Timeouts.AWSInit <= 0 {
		c.Timeouts.AWSInit = Duration(DefaultAWSInitTimeout)
	}
	if c.Timeouts.Fetch <= 0 {
		c.Timeouts.Fetch = Duration(DefaultFetchTimeout)
	}
	if c.Presign.Expiry <= 0 {
		c.Presign.Expiry = Duration(DefaultPresignExpiry)
	}
	if c.Reload.Interval <= 0 {
		c.Reload.Interval = Duration(DefaultReloadInterval)
	}
}

func (c *FileConfig) AWSInitTimeout() time.Duration {
	return withRLock(&c.mu, func() time.Duration {
		if c.Timeouts.AWSInit == 0 {
			return DefaultAWSInitTimeout
		}
		return c.Timeouts.AWSInit.Duration()
	})
}

func (c *FileConfig) FetchTimeout() time.Duration {
	return withRLock(&c.mu, func() time.Duration {
		if c.Timeouts.Fetch == 0 {
			return DefaultFetchTimeout
		}
		return c.Timeouts.Fetch.Duration()
	})
}

func (c *FileConfig) PresignExpiry() time.Duration {
	return withRLock(&c.mu, func() time.Duration {
		if c.Presign.Expiry == 0 {
			return DefaultPresignExpiry
		}
		return c.Presign.Expiry.Duration()
	})
}

func (c *FileConfig) ReloadInterval() time.Duration {
	return withRLock(&c.mu, func() time.Duration {
		if c.Reload.Interval == 0 {
			return DefaultReloadInterval
		}
		return c.Reload.Interval.Duration()
	})
}

func (c *FileConfig) SetStartup(region, profile string) {
	doWithLock(&c.mu, func() {
		c.Startup.Region = region
		c.Startup.Profile = profile
	})
}

func (c *FileConfig) GetStartup() (region, profile string) {
	type result struct {
		region  string
		profile string
	}
	r := withRLock(&c.mu, func() result {
		return result{c.Startup.Region, c.Startup.Profile}
	})
	return r.region, r.profile
}
