package config

import (
	"os"
	"regexp"
	"sync"
)

// Validation patterns
var (
	// regionPattern matches AWS region format: xx-xxxx-N (e.g., us-east-1, ap-northeast-1)
	regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+-\d|-(gov|iso|isob)-[a-z]+-\d)$`)

	// accountIDPattern matches 12-digit AWS account IDs
	accountIDPattern = regexp.MustCompile(`^\d{12}$`)

	// profileNamePattern matches valid AWS profile names (alphanumeric, hyphen, underscore, period)
	profileNamePattern = regexp.MustCompile(`^[\w\-.]+$`)
)

type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidRegion checks if the region name follows AWS region format.
// Valid examples: us-east-1, eu-west-2, ap-northeast-1, us-gov-west-1
func IsValidRegion(region string) bool {
	if region == "" || len(region) > 25 {
		return false
	}
	return regionPattern.MatchString(region)
}

// IsValidAccountID checks if the account ID is a 12-digit number.
// Used internally to validate STS-fetched account IDs, not for user input.
func IsValidAccountID(accountID string) bool {
	if accountID == "" {
		return true // Empty is allowed (not yet fetched)
	}
	return accountIDPattern.MatchString(accountID)
}

// IsValidProfileName checks if the profile name contains only valid characters.
// Valid characters: alphanumeric, hyphen, underscore, period
func IsValidProfileName(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	return profileNamePattern.MatchString(name)
}

// CredentialMode represents how AWS credentials are resolved
type CredentialMode int

const (
	// ModeSDKDefault lets AWS SDK decide via standard credential chain.
	// Preserves existing AWS_PROFILE environment variable.
	ModeSDKDefault CredentialMode = iota

	// ModeNamedProfile explicitly uses a named profile from ~/.aws config.
	ModeNamedProfile

	// ModeEnvOnly ignores ~/.aws files, uses IMDS/environment/ECS/Lambda creds only.
	ModeEnvOnly
)

// String returns a display string for the credential mode
func (m CredentialMode) String() string {
	switch m {
	case ModeSDKDefault:
		return "SDK Default"
	case ModeNamedProfile:
		return "" // Profile name is shown separately
	case ModeEnvOnly:
		return "Env/IMDS Only"
	default:
		return "Unknown"
	}
}

// ProfileSelection represents the selected credential mode and optional profile name
type ProfileSelection struct {
	Mode        CredentialMode
	ProfileName string // Only used when Mode == ModeNamedProfile
}

// SDKDefault returns a selection for SDK default credential chain
func SDKDefault() ProfileSelection {
	return ProfileSelection{Mode: ModeSDKDefault}
}

// EnvOnly returns a selection for environment/IMDS credentials only
func EnvOnly() ProfileSelection {
	return ProfileSelection{Mode: ModeEnvOnly}
}

// NamedProfile returns a selection for a specific named profile
func NamedProfile(name string) ProfileSelection {
	return ProfileSelection{Mode: ModeNamedProfile, ProfileName: name}
}

// DisplayName returns the display name for this selection.
// For SDKDefault mode, includes AWS_PROFILE value if set.
func (s ProfileSelection) DisplayName() string {
	switch s.Mode {
	case ModeSDKDefault:
		if p := os.Getenv("AWS_PROFILE"); p != "" {
			return "SDK Default (AWS_PROFILE=" + p + ")"
		}
		return "SDK Default"
	case ModeEnvOnly:
		return "Env/IMDS Only"
	case ModeNamedProfile:
		return s.ProfileName
	default:
		return "Unknown"
	}
}

// IsSDKDefault returns true if this is SDK default mode
func (s ProfileSelection) IsSDKDefault() bool {
	return s.Mode == ModeSDKDefault
}

// IsEnvOnly returns true if this is env-only mode
func (s ProfileSelection) IsEnvOnly() bool {
	return s.Mode == ModeEnvOnly
}

// IsNamedProfile returns true if this is a named profile
func (s ProfileSelection) IsNamedProfile() bool {
	return s.Mode == ModeNamedProfile
}

// Config holds the process-wide profile, region and mode state shared by the
// views and DAOs. All access goes through the accessor methods.
type Config struct {
	mu        sync.RWMutex
	region    string
	selection *ProfileSelection
	accountID string
	warnings  []string
	readOnly  bool
}

var (
	global   *Config
	initOnce sync.Once
)

// Global returns the global config instance
func Global() *Config {
	initOnce.Do(func() {
		global = &Config{}
	})
	return global
}

func (c *Config) Region() string {
	return withRLock(&c.mu, func() string { return c.region })
}

func (c *Config) SetRegion(region string) {
	doWithLock(&c.mu, func() { c.region = region })
}

func (c *Config) Selection() ProfileSelection {
	return withRLock(&c.mu, func() ProfileSelection {
		if c.selection == nil {
			return SDKDefault()
		}
		return *c.selection
	})
}

func (c *Config) SetSelection(sel ProfileSelection) {
	doWithLock(&c.mu, func() { c.selection = &sel })
}

// UseSDKDefault sets SDK default credential mode
func (c *Config) UseSDKDefault() {
	c.SetSelection(SDKDefault())
}

// UseEnvOnly sets environment-only credential mode
func (c *Config) UseEnvOnly() {
	c.SetSelection(EnvOnly())
}

// UseProfile sets a named profile
func (c *Config) UseProfile(name string) {
	c.SetSelection(NamedProfile(name))
}

func (c *Config) AccountID() string {
	return withRLock(&c.mu, func() string { return c.accountID })
}

func (c *Config) SetAccountID(id string) {
	doWithLock(&c.mu, func() { c.accountID = id })
}

func (c *Config) Warnings() []string {
	return withRLock(&c.mu, func() []string { return c.warnings })
}

func (c *Config) AddWarning(msg string) {
	doWithLock(&c.mu, func() { c.warnings = append(c.warnings, msg) })
}

func (c *Config) ReadOnly() bool {
	return withRLock(&c.mu, func() bool { return c.readOnly })
}

func (c *Config) SetReadOnly(readOnly bool) {
	doWithLock(&c.mu, func() { c.readOnly = readOnly })
}
