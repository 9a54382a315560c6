package aws

import (
	"os"
	"slices"
	"testing"

	"github.com/loupecli/loupe/internal/config"
)

func TestBuildSubprocessEnvNamedProfile(t *testing.T) {
	base := []string{"PATH=/bin", "AWS_PROFILE=old"}
	env := BuildSubprocessEnv(base, config.NamedProfile("staging"), "eu-west-1")

	if !slices.Contains(env, "AWS_PROFILE=staging") {
		t.Errorf("expected AWS_PROFILE=staging in %v", env)
	}
	if slices.Contains(env, "AWS_PROFILE=old") {
		t.Errorf("stale AWS_PROFILE should be replaced, got %v", env)
	}
	if !slices.Contains(env, "AWS_REGION=eu-west-1") {
		t.Errorf("expected AWS_REGION=eu-west-1 in %v", env)
	}
	if !slices.Contains(env, "AWS_DEFAULT_REGION=eu-west-1") {
		t.Errorf("expected AWS_DEFAULT_REGION=eu-west-1 in %v", env)
	}
}

func TestBuildSubprocessEnvEnvOnly(t *testing.T) {
	base := []string{"PATH=/bin", "AWS_PROFILE=old", "AWS_ACCESS_KEY_ID=AKIA"}
	env := BuildSubprocessEnv(base, config.EnvOnly(), "")

	if slices.Contains(env, "AWS_PROFILE=old") {
		t.Errorf("AWS_PROFILE should be stripped in env-only mode, got %v", env)
	}
	if !slices.Contains(env, "AWS_ACCESS_KEY_ID=AKIA") {
		t.Errorf("credential env vars must pass through, got %v", env)
	}
	if !slices.Contains(env, "AWS_CONFIG_FILE="+os.DevNull) {
		t.Errorf("shared config file should point at %s, got %v", os.DevNull, env)
	}
	if !slices.Contains(env, "AWS_SHARED_CREDENTIALS_FILE="+os.DevNull) {
		t.Errorf("shared credentials file should point at %s, got %v", os.DevNull, env)
	}
}

func TestBuildSubprocessEnvSDKDefault(t *testing.T) {
	base := []string{"PATH=/bin", "AWS_PROFILE=dev"}
	env := BuildSubprocessEnv(base, config.SDKDefault(), "")

	// SDK default mode leaves the environment untouched.
	if !slices.Equal(env, base) {
		t.Errorf("env = %v, want %v", env, base)
	}
}

func TestBuildSubprocessEnvNoRegion(t *testing.T) {
	env := BuildSubprocessEnv([]string{"PATH=/bin"}, config.SDKDefault(), "")
	for _, e := range env {
		if e == "AWS_REGION=" || e == "AWS_DEFAULT_REGION=" {
			t.Errorf("empty region must not be exported, got %v", env)
		}
	}
}
