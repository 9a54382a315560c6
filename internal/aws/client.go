package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"

	appconfig "github.com/loupecli/loupe/internal/config"
)

type regionOverrideKey struct{}

// WithRegionOverride returns a context carrying a region that takes precedence
// over the configured one, e.g. for region-pinned S3 bucket calls.
func WithRegionOverride(ctx context.Context, region string) context.Context {
	return context.WithValue(ctx, regionOverrideKey{}, region)
}

// GetRegionFromContext returns the region override, or "" if not set.
func GetRegionFromContext(ctx context.Context) string {
	if r, ok := ctx.Value(regionOverrideKey{}).(string); ok {
		return r
	}
	return ""
}

// NewConfig creates an AWS config honoring the selected profile and region.
// This is how DAOs obtain their SDK configuration.
func NewConfig(ctx context.Context) (aws.Config, error) {
	opts := SelectionLoadOptions(appconfig.Global().Selection())

	region := GetRegionFromContext(ctx)
	if region == "" {
		region = appconfig.Global().Region()
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}
