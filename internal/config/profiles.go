package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile describes a named profile parsed from the ~/.aws files.
type Profile struct {
	Name           string
	Region         string
	RoleArn        string
	SourceProfile  string
	SSOStartURL    string
	HasCredentials bool
	InConfig       bool
	InCredentials  bool
}

// parseConfigSectionName extracts the profile name from a config file section.
// In the config file profiles are "profile xxx" except for "default"; other
// sections (sso-session, services) are skipped.
func parseConfigSectionName(sectionName string) (string, bool) {
	if sectionName == "DEFAULT" {
		return "", false
	}
	if strings.HasPrefix(sectionName, "profile ") {
		return strings.TrimPrefix(sectionName, "profile "), true
	}
	if sectionName == "default" {
		return "default", true
	}
	return "", false
}

// awsConfigPath returns the AWS config file path, honoring AWS_CONFIG_FILE.
func awsConfigPath() (string, error) {
	if path := os.Getenv("AWS_CONFIG_FILE"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".aws", "config"), nil
}

// awsCredentialsPath returns the AWS credentials file path, honoring
// AWS_SHARED_CREDENTIALS_FILE.
func awsCredentialsPath() (string, error) {
	if path := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".aws", "credentials"), nil
}

// ListProfiles parses the ~/.aws/config and ~/.aws/credentials files and
// returns the profiles found, sorted by name. Missing files are not an error.
func ListProfiles() ([]Profile, error) {
	profiles := make(map[string]*Profile)

	configPath, err := awsConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := ini.Load(configPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	if err == nil {
		for _, section := range cfg.Sections() {
			name, ok := parseConfigSectionName(section.Name())
			if !ok {
				continue
			}
			p, ok := profiles[name]
			if !ok {
				p = &Profile{Name: name}
				profiles[name] = p
			}
			p.InConfig = true
			p.Region = section.Key("region").String()
			p.RoleArn = section.Key("role_arn").String()
			p.SourceProfile = section.Key("source_profile").String()
			p.SSOStartURL = section.Key("sso_start_url").String()
		}
	}

	credPath, err := awsCredentialsPath()
	if err != nil {
		return nil, err
	}
	creds, err := ini.Load(credPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("parse %s: %w", credPath, err)
	}
	if err == nil {
		for _, section := range creds.Sections() {
			name := section.Name()
			if name == "DEFAULT" {
				continue
			}
			p, ok := profiles[name]
			if !ok {
				p = &Profile{Name: name}
				profiles[name] = p
			}
			p.InCredentials = true
			if section.Key("aws_access_key_id").String() != "" {
				p.HasCredentials = true
			}
		}
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Profile, 0, len(names))
	for _, name := range names {
		result = append(result, *profiles[name])
	}
	return result, nil
}

// HasProfile reports whether name exists in the ~/.aws files.
func HasProfile(name string) bool {
	profiles, err := ListProfiles()
	if err != nil {
		return false
	}
	for _, p := range profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}
