package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDuration_MarshalUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		duration Duration
		want     string
	}{
		{"5s", Duration(5 * time.Second), "5s"},
		{"30s", Duration(30 * time.Second), "30s"},
		{"1m", Duration(1 * time.Minute), "1m0s"},
		{"zero", Duration(0), "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data, err := yaml.Marshal(tt.duration)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			got := string(data)
			// yaml.Marshal adds newline
			if got != tt.want+"\n" {
				t.Errorf("Marshal = %q, want %q", got, tt.want+"\n")
			}

			// Unmarshal
			var d Duration
			if err := yaml.Unmarshal([]byte(tt.want), &d); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if d != tt.duration {
				t.Errorf("Unmarshal = %v, want %v", d, tt.duration)
			}
		})
	}
}

func TestDuration_UnmarshalEmpty(t *testing.T) {
	var d Duration
	if err := yaml.Unmarshal([]byte(`""`), &d); err != nil {
		t.Fatalf("Unmarshal empty failed: %v", err)
	}
	if d != 0 {
		t.Errorf("Unmarshal empty = %v, want 0", d)
	}
}

func TestDuration_UnmarshalInvalid(t *testing.T) {
	var d Duration
	if err := yaml.Unmarshal([]byte(`"not a duration"`), &d); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig()

	if cfg.Timeouts.AWSInit.Duration() != DefaultAWSInitTimeout {
		t.Errorf("AWSInit = %v, want %v", cfg.Timeouts.AWSInit.Duration(), DefaultAWSInitTimeout)
	}
	if cfg.Timeouts.Fetch.Duration() != DefaultFetchTimeout {
		t.Errorf("Fetch = %v, want %v", cfg.Timeouts.Fetch.Duration(), DefaultFetchTimeout)
	}
	if cfg.Presign.Expiry.Duration() != DefaultPresignExpiry {
		t.Errorf("Presign.Expiry = %v, want %v", cfg.Presign.Expiry.Duration(), DefaultPresignExpiry)
	}
	if cfg.Reload.Interval.Duration() != DefaultReloadInterval {
		t.Errorf("Reload.Interval = %v, want %v", cfg.Reload.Interval.Duration(), DefaultReloadInterval)
	}
}

func TestFileConfig_Accessors(t *testing.T) {
	cfg := &FileConfig{}

	// Zero values fall back to defaults
	if cfg.AWSInitTimeout() != DefaultAWSInitTimeout {
		t.Errorf("AWSInitTimeout() = %v, want %v", cfg.AWSInitTimeout(), DefaultAWSInitTimeout)
	}
	if cfg.FetchTimeout() != DefaultFetchTimeout {
		t.Errorf("FetchTimeout() = %v, want %v", cfg.FetchTimeout(), DefaultFetchTimeout)
	}
	if cfg.PresignExpiry() != DefaultPresignExpiry {
		t.Errorf("PresignExpiry() = %v, want %v", cfg.PresignExpiry(), DefaultPresignExpiry)
	}
	if cfg.ReloadInterval() != DefaultReloadInterval {
		t.Errorf("ReloadInterval() = %v, want %v", cfg.ReloadInterval(), DefaultReloadInterval)
	}

	cfg.Timeouts.Fetch = Duration(time.Minute)
	if cfg.FetchTimeout() != time.Minute {
		t.Errorf("FetchTimeout() = %v, want 1m", cfg.FetchTimeout())
	}
}

func TestFileConfig_Startup(t *testing.T) {
	cfg := &FileConfig{}

	cfg.SetStartup("us-west-2", "production")
	region, profile := cfg.GetStartup()
	if region != "us-west-2" {
		t.Errorf("GetStartup() region = %q, want us-west-2", region)
	}
	if profile != "production" {
		t.Errorf("GetStartup() profile = %q, want production", profile)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configDir := filepath.Join(dir, ".config", "loupe")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := []byte("timeouts:\n  fetch: 45s\npresign:\n  expiry: 30m\nstartup:\n  region: eu-west-1\n  profile: staging\n")
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.FetchTimeout() != 45*time.Second {
		t.Errorf("FetchTimeout() = %v, want 45s", cfg.FetchTimeout())
	}
	if cfg.PresignExpiry() != 30*time.Minute {
		t.Errorf("PresignExpiry() = %v, want 30m", cfg.PresignExpiry())
	}
	// Unset fields keep defaults
	if cfg.AWSInitTimeout() != DefaultAWSInitTimeout {
		t.Errorf("AWSInitTimeout() = %v, want default", cfg.AWSInitTimeout())
	}
	region, profile := cfg.GetStartup()
	if region != "eu-west-1" || profile != "staging" {
		t.Errorf("GetStartup() = %q, %q, want eu-west-1, staging", region, profile)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FetchTimeout() != DefaultFetchTimeout {
		t.Errorf("FetchTimeout() = %v, want default", cfg.FetchTimeout())
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configDir := filepath.Join(dir, ".config", "loupe")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultFileConfig()
	cfg.SetStartup("ap-southeast-2", "dev")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	region, profile := loaded.GetStartup()
	if region != "ap-southeast-2" || profile != "dev" {
		t.Errorf("GetStartup() = %q, %q, want ap-southeast-2, dev", region, profile)
	}
}

func TestApplyDefaults_NegativeValues(t *testing.T) {
	cfg := &FileConfig{
		Timeouts: TimeoutConfig{
			AWSInit: Duration(-1 * time.Second),
			Fetch:   Duration(-1 * time.Minute),
		},
		Presign: PresignConfig{Expiry: Duration(-1)},
	}
	cfg.applyDefaults()

	if cfg.Timeouts.AWSInit.Duration() != DefaultAWSInitTimeout {
		t.Errorf("negative AWSInit should default, got %v", cfg.Timeouts.AWSInit.Duration())
	}
	if cfg.Timeouts.Fetch.Duration() != DefaultFetchTimeout {
		t.Errorf("negative Fetch should default, got %v", cfg.Timeouts.Fetch.Duration())
	}
	if cfg.Presign.Expiry.Duration() != DefaultPresignExpiry {
		t.Errorf("negative Expiry should default, got %v", cfg.Presign.Expiry.Duration())
	}
}
