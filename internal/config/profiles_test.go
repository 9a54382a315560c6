package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAWSFiles(t *testing.T, configContent, credsContent string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config")
	credsPath := filepath.Join(dir, "credentials")
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(credsPath, []byte(credsContent), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWS_CONFIG_FILE", configPath)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credsPath)
}

func TestListProfiles(t *testing.T) {
	writeAWSFiles(t, `
[default]
region = us-east-1

[profile staging]
region = eu-west-1
role_arn = arn:aws:iam::123456789012:role/deploy
source_profile = default

[sso-session corp]
sso_start_url = https://corp.awsapps.com/start
`, `
[default]
aws_access_key_id = AKIAEXAMPLE
aws_secret_access_key = secret

[ci]
aws_access_key_id = AKIACI
aws_secret_access_key = secret
`)

	profiles, err := ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}

	byName := make(map[string]Profile, len(profiles))
	var names []string
	for _, p := range profiles {
		byName[p.Name] = p
		names = append(names, p.Name)
	}

	// sso-session sections are not profiles
	want := []string{"ci", "default", "staging"}
	if len(names) != len(want) {
		t.Fatalf("ListProfiles() = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("profile %d = %q, want %q (sorted)", i, names[i], n)
		}
	}

	def := byName["default"]
	if !def.InConfig || !def.InCredentials || !def.HasCredentials {
		t.Errorf("default profile flags = %+v", def)
	}
	if def.Region != "us-east-1" {
		t.Errorf("default region = %q, want us-east-1", def.Region)
	}

	staging := byName["staging"]
	if staging.RoleArn != "arn:aws:iam::123456789012:role/deploy" {
		t.Errorf("staging role_arn = %q", staging.RoleArn)
	}
	if staging.SourceProfile != "default" {
		t.Errorf("staging source_profile = %q", staging.SourceProfile)
	}
	if staging.InCredentials {
		t.Error("staging should not be in credentials file")
	}

	ci := byName["ci"]
	if ci.InConfig || !ci.HasCredentials {
		t.Errorf("ci profile flags = %+v", ci)
	}
}

func TestListProfiles_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "nope"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "nope2"))

	profiles, err := ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected no profiles, got %v", profiles)
	}
}

func TestHasProfile(t *testing.T) {
	writeAWSFiles(t, "[profile dev]\nregion = us-west-2\n", "")

	if !HasProfile("dev") {
		t.Error("HasProfile(dev) should be true")
	}
	if HasProfile("missing") {
		t.Error("HasProfile(missing) should be false")
	}
}

func TestParseConfigSectionName(t *testing.T) {
	tests := []struct {
		section string
		name    string
		ok      bool
	}{
		{"default", "default", true},
		{"profile staging", "staging", true},
		{"DEFAULT", "", false},
		{"sso-session corp", "", false},
	}

	for _, tt := range tests {
		name, ok := parseConfigSectionName(tt.section)
		if name != tt.name || ok != tt.ok {
			t.Errorf("parseConfigSectionName(%q) = %q, %v, want %q, %v", tt.section, name, ok, tt.name, tt.ok)
		}
	}
}
