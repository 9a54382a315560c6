package config

import "testing"

func TestIsValidRegion(t *testing.T) {
	tests := []struct {
		region string
		want   bool
	}{
		{"us-east-1", true},
		{"eu-west-2", true},
		{"ap-northeast-1", true},
		{"us-gov-west-1", true},
		{"", false},
		{"useast1", false},
		{"US-EAST-1", false},
		{"us-east-1; rm -rf /", false},
		{"us-east-99999999999999999", false},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			if got := IsValidRegion(tt.region); got != tt.want {
				t.Errorf("IsValidRegion(%q) = %v, want %v", tt.region, got, tt.want)
			}
		})
	}
}

func TestIsValidAccountID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"123456789012", true},
		{"", true}, // not yet fetched
		{"12345", false},
		{"1234567890123", false},
		{"12345678901a", false},
	}

	for _, tt := range tests {
		if got := IsValidAccountID(tt.id); got != tt.want {
			t.Errorf("IsValidAccountID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestIsValidProfileName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"default", true},
		{"my-profile", true},
		{"prod_admin.2", true},
		{"", false},
		{"bad profile", false},
		{"bad;profile", false},
	}

	for _, tt := range tests {
		if got := IsValidProfileName(tt.name); got != tt.want {
			t.Errorf("IsValidProfileName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProfileSelection(t *testing.T) {
	sdk := SDKDefault()
	if !sdk.IsSDKDefault() || sdk.IsNamedProfile() || sdk.IsEnvOnly() {
		t.Error("SDKDefault() predicates are wrong")
	}

	env := EnvOnly()
	if !env.IsEnvOnly() {
		t.Error("EnvOnly() should report IsEnvOnly")
	}

	named := NamedProfile("staging")
	if !named.IsNamedProfile() {
		t.Error("NamedProfile() should report IsNamedProfile")
	}
	if named.DisplayName() != "staging" {
		t.Errorf("DisplayName() = %q, want %q", named.DisplayName(), "staging")
	}
	if named.ProfileName != "staging" {
		t.Errorf("ProfileName = %q, want %q", named.ProfileName, "staging")
	}
}

func TestConfig_Region(t *testing.T) {
	cfg := &Config{}

	if cfg.Region() != "" {
		t.Errorf("Region() = %q, want empty", cfg.Region())
	}

	cfg.SetRegion("eu-central-1")
	if cfg.Region() != "eu-central-1" {
		t.Errorf("Region() = %q, want eu-central-1", cfg.Region())
	}
}

func TestConfig_Selection(t *testing.T) {
	cfg := &Config{}

	// Defaults to SDK chain before anything is selected
	if !cfg.Selection().IsSDKDefault() {
		t.Error("Selection() should default to SDK default mode")
	}

	cfg.UseProfile("dev")
	sel := cfg.Selection()
	if !sel.IsNamedProfile() || sel.ProfileName != "dev" {
		t.Errorf("Selection() = %+v, want named profile dev", sel)
	}

	cfg.UseEnvOnly()
	if !cfg.Selection().IsEnvOnly() {
		t.Error("Selection() should be env-only after UseEnvOnly()")
	}

	cfg.UseSDKDefault()
	if !cfg.Selection().IsSDKDefault() {
		t.Error("Selection() should be SDK default after UseSDKDefault()")
	}
}

func TestConfig_AccountID(t *testing.T) {
	cfg := &Config{}

	cfg.SetAccountID("123456789012")
	if cfg.AccountID() != "123456789012" {
		t.Errorf("AccountID() = %q, want 123456789012", cfg.AccountID())
	}
}

func TestConfig_ReadOnly(t *testing.T) {
	cfg := &Config{}

	if cfg.ReadOnly() {
		t.Error("ReadOnly() should be false by default")
	}
	cfg.SetReadOnly(true)
	if !cfg.ReadOnly() {
		t.Error("ReadOnly() should be true after SetReadOnly(true)")
	}
}

func TestConfig_Warnings(t *testing.T) {
	cfg := &Config{}

	cfg.AddWarning("first")
	cfg.AddWarning("second")
	warnings := cfg.Warnings()
	if len(warnings) != 2 || warnings[0] != "first" || warnings[1] != "second" {
		t.Errorf("Warnings() = %v, want [first second]", warnings)
	}
}

func TestGlobal(t *testing.T) {
	if Global() != Global() {
		t.Error("Global() should return the same instance")
	}
}
