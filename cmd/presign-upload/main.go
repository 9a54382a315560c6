package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	appaws "github.com/loupecli/loupe/internal/aws"
	"github.com/loupecli/loupe/internal/config"
	"github.com/loupecli/loupe/internal/presign"
)

// version is set by ldflags during build
var version = "dev"

func main() {
	opts := parseFlags()

	cfg := config.Global()

	if opts.profile != "" {
		if !config.IsValidProfileName(opts.profile) {
			fmt.Fprintf(os.Stderr, "Error: invalid profile name: %s\n", opts.profile)
			os.Exit(1)
		}
		cfg.UseProfile(opts.profile)
	}
	if opts.region != "" {
		if !config.IsValidRegion(opts.region) {
			fmt.Fprintf(os.Stderr, "Error: invalid region format: %s\n", opts.region)
			fmt.Fprintln(os.Stderr, "Expected: xx-xxxx-N (e.g., us-east-1, ap-northeast-1)")
			os.Exit(1)
		}
		cfg.SetRegion(opts.region)
	}

	expires := config.File().PresignExpiry()
	if opts.expires != "" {
		d, err := time.ParseDuration(opts.expires)
		if err != nil || d <= 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid expiry %q (expected a positive duration like 1h or 30m)\n", opts.expires)
			os.Exit(1)
		}
		expires = d
	}

	bucket, key, file := opts.bucket, opts.key, opts.file
	if bucket == "" || key == "" || file == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -bucket, -key and -file are required when stdin is not a terminal")
			os.Exit(1)
		}
		answers, err := runPrompts(context.Background(), bucket, key, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if answers.aborted {
			os.Exit(1)
		}
		bucket, key, file = answers.bucket, answers.key, answers.file
	}

	ctx := context.Background()
	awsCfg, err := appaws.NewConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	signer := presign.NewSigner(awsCfg)
	url, err := signer.UploadURL(ctx, bucket, key, expires)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(url)
	fmt.Println()
	fmt.Println(presign.CurlCommand(file, url))
}

type cliOptions struct {
	profile string
	region  string
	bucket  string
	key     string
	file    string
	expires string
}

func parseFlags() cliOptions {
	return parseFlagsFromArgs(os.Args[1:])
}

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
		case "-bucket", "--bucket":
			if i+1 < len(args) {
				i++
				opts.bucket = strings.TrimSpace(args[i])
			}
		case "-key", "--key":
			if i+1 < len(args) {
				i++
				opts.key = strings.TrimSpace(args[i])
			}
		case "-file", "--file":
			if i+1 < len(args) {
				i++
				opts.file = args[i]
			}
		case "-expires", "--expires":
			if i+1 < len(args) {
				i++
				opts.expires = strings.TrimSpace(args[i])
			}
		case "-h", "--help":
			showHelp = true
		case "-v", "--version":
			showVersion = true
		}
	}

	if showVersion {
		fmt.Printf("presign-upload %s\n", version)
		os.Exit(0)
	}

	if showHelp {
		printUsage()
		os.Exit(0)
	}

	return opts
}

func printUsage() {
	fmt.Println("presign-upload - Generate presigned S3 PUT URLs for uploads")
	fmt.Println()
	fmt.Println("Usage: presign-upload [options]")
	fmt.Println()
	fmt.Println("Prompts for any value not supplied via flags. The object key is")
	fmt.Println("prefilled with a yyyy/mm/dd/ date prefix.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -p, --profile <name>")
	fmt.Println("        AWS profile to use")
	fmt.Println("  -r, --region <region>")
	fmt.Println("        AWS region to use")
	fmt.Println("  -bucket <name>")
	fmt.Println("        Target S3 bucket")
	fmt.Println("  -key <key>")
	fmt.Println("        Object key for the upload")
	fmt.Println("  -file <path>")
	fmt.Println("        Local file the printed curl command uploads")
	fmt.Println("  -expires <duration>")
	fmt.Println("        URL validity, e.g. 1h, 30m (default 1h)")
	fmt.Println("  -v, --version")
	fmt.Println("        Show version")
	fmt.Println("  -h, --help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  presign-upload")
	fmt.Println("  presign-upload -bucket my-bucket -key 2026/08/30/report.pdf -file report.pdf")
	fmt.Println("  presign-upload -p dev -r us-east-1 -expires 30m")
}
