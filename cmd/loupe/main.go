package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/loupecli/loupe/internal/app"
	"github.com/loupecli/loupe/internal/config"
	"github.com/loupecli/loupe/internal/log"
	"github.com/loupecli/loupe/internal/registry"
)

// version is set by ldflags during build
var version = "dev"

func main() {
	opts := parseFlags()

	propagateAllProxy()

	fileCfg := config.File()
	cfg := config.Global()

	// Check environment variables (CLI flags take precedence)
	if !opts.readOnly {
		if v := os.Getenv("LOUPE_READ_ONLY"); v == "1" || v == "true" {
			opts.readOnly = true
		}
	}
	cfg.SetReadOnly(opts.readOnly)

	if opts.profile != "" && !config.IsValidProfileName(opts.profile) {
		fmt.Fprintf(os.Stderr, "Error: invalid profile name: %s\n", opts.profile)
		fmt.Fprintln(os.Stderr, "Valid characters: alphanumeric, hyphen, underscore, period")
		os.Exit(1)
	}
	if opts.region != "" && !config.IsValidRegion(opts.region) {
		fmt.Fprintf(os.Stderr, "Error: invalid region format: %s\n", opts.region)
		fmt.Fprintln(os.Stderr, "Expected: xx-xxxx-N (e.g., us-east-1, ap-northeast-1)")
		os.Exit(1)
	}

	applyStartupConfig(opts, fileCfg, cfg)

	// Validate and resolve startup service/resource
	var startService, startResource string
	if opts.service != "" {
		var err error
		startService, startResource, err = resolveStartupService(strings.TrimSpace(opts.service))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if opts.resourceID != "" {
		fmt.Fprintln(os.Stderr, "Error: --resource-id requires --service")
		fmt.Fprintln(os.Stderr, "Example: loupe -s ecs/tasks -i 0abc123")
		os.Exit(1)
	}

	// Enable logging if log file specified
	if opts.logFile != "" {
		if err := log.EnableFile(opts.logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file %s: %v\n", opts.logFile, err)
		} else {
			log.Info("loupe started", "profile", opts.profile, "region", opts.region, "readOnly", opts.readOnly)
		}
	}

	ctx := context.Background()

	application := app.New(ctx, registry.Global)
	if startService != "" {
		application.SetStartView(startService, startResource)
	}
	if opts.resourceID != "" {
		application.SetStartFilter(strings.TrimSpace(opts.resourceID))
	}

	p := tea.NewProgram(application)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	profile    string
	region     string
	readOnly   bool
	envCreds   bool
	logFile    string
	service    string
	resourceID string
}

// parseFlags parses command line flags and returns options
func parseFlags() cliOptions {
	return parseFlagsFromArgs(os.Args[1:])
}

// parseFlagsFromArgs parses the given args and returns options (testable)
func parseFlagsFromArgs(args []string) cliOptions {
	opts := cliOptions{}
	showHelp := false
	showVersion := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-p", "--profile":
			if i+1 < len(args) {
				i++
				opts.profile = strings.TrimSpace(args[i])
			}
		case "-r", "--region":
			if i+1 < len(args) {
				i++
				opts.region = strings.TrimSpace(args[i])
			}
		case "-ro", "--read-only":
			opts.readOnly = true
		case "-e", "--env":
			opts.envCreds = true
		case "-l", "--log-file":
			if i+1 < len(args) {
				i++
				opts.logFile = args[i]
			}
		case "-s", "--service":
			if i+1 < len(args) {
				i++
				opts.service = args[i]
			}
		case "-i", "--resource-id":
			if i+1 < len(args) {
				i++
				opts.resourceID = args[i]
			}
		case "-h", "--help":
			showHelp = true
		case "-v", "--version":
			showVersion = true
		}
	}

	if showVersion {
		fmt.Printf("loupe %s\n", version)
		os.Exit(0)
	}

	if showHelp {
		printUsage()
		os.Exit(0)
	}

	return opts
}

func printUsage() {
	fmt.Println("loupe - A terminal UI for ECS and S3 status")
	fmt.Println()
	fmt.Println("Usage: loupe [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -p, --profile <name>")
	fmt.Println("        AWS profile to use")
	fmt.Println("  -r, --region <region>")
	fmt.Println("        AWS region to use")
	fmt.Println("  -s, --service <service>[/<resource>]")
	fmt.Println("        Start directly on a service/resource (e.g., ecs, ecs/tasks, s3)")
	fmt.Println("  -i, --resource-id <id>")
	fmt.Println("        Pre-filter the listing to a specific resource (requires --service)")
	fmt.Println("  -e, --env")
	fmt.Println("        Use environment credentials (ignore ~/.aws config)")
	fmt.Println("        Useful for instance profiles, ECS task roles, Lambda, etc.")
	fmt.Println("  -ro, --read-only")
	fmt.Println("        Run in read-only mode (disable dangerous actions)")
	fmt.Println("  -l, --log-file <path>")
	fmt.Println("        Enable debug logging to specified file")
	fmt.Println("  -v, --version")
	fmt.Println("        Show version")
	fmt.Println("  -h, --help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  loupe                      Start on ECS clusters (default)")
	fmt.Println("  loupe -s ecs/tasks         Open the ECS tasks browser")
	fmt.Println("  loupe -s s3                Open the S3 buckets browser")
	fmt.Println("  loupe -s ecs -i prod       Open clusters filtered to \"prod\"")
	fmt.Println("  loupe -p dev -r us-east-1  Use the dev profile in us-east-1")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  LOUPE_CONFIG=<path>      Use custom config file")
	fmt.Println("  LOUPE_READ_ONLY=1|true   Enable read-only mode")
	fmt.Println("  ALL_PROXY                Propagated to HTTP_PROXY/HTTPS_PROXY if not set")
}

func applyStartupConfig(opts cliOptions, fileCfg *config.FileConfig, cfg *config.Config) {
	startupRegion, startupProfile := fileCfg.GetStartup()

	if opts.envCreds {
		cfg.UseEnvOnly()
	} else if opts.profile != "" {
		cfg.UseProfile(opts.profile)
	} else if startupProfile != "" {
		cfg.UseProfile(startupProfile)
	}

	if opts.region != "" {
		cfg.SetRegion(opts.region)
	} else if startupRegion != "" {
		cfg.SetRegion(startupRegion)
	}
}

// resolveStartupService validates and resolves a service string (e.g., "ecs",
// "ecs/tasks") to a registered service/resourceType pair.
func resolveStartupService(input string) (service, resourceType string, err error) {
	return registry.Global.ParseServiceResource(input)
}

// propagateAllProxy copies ALL_PROXY to HTTP_PROXY/HTTPS_PROXY if not set.
// Go's net/http ignores ALL_PROXY, so we propagate it to the standard vars.
func propagateAllProxy() {
	allProxy := os.Getenv("ALL_PROXY")
	if allProxy == "" {
		return
	}

	var propagated []string

	if os.Getenv("HTTPS_PROXY") == "" {
		if err := os.Setenv("HTTPS_PROXY", allProxy); err != nil {
			log.Warn("failed to set HTTPS_PROXY", "error", err)
		} else {
			propagated = append(propagated, "HTTPS_PROXY")
		}
	}

	if os.Getenv("HTTP_PROXY") == "" {
		if err := os.Setenv("HTTP_PROXY", allProxy); err != nil {
			log.Warn("failed to set HTTP_PROXY", "error", err)
		} else {
			propagated = append(propagated, "HTTP_PROXY")
		}
	}

	if len(propagated) > 0 {
		log.Debug("propagated ALL_PROXY", "to", propagated)
	}
}
