package aws

import (
	"context"
	"testing"
)

func TestRegionOverride(t *testing.T) {
	ctx := context.Background()

	if got := GetRegionFromContext(ctx); got != "" {
		t.Errorf("GetRegionFromContext() on plain context = %q, want empty", got)
	}

	ctx = WithRegionOverride(ctx, "eu-central-1")
	if got := GetRegionFromContext(ctx); got != "eu-central-1" {
		t.Errorf("GetRegionFromContext() = %q, want %q", got, "eu-central-1")
	}

	// A later override shadows the earlier one.
	ctx = WithRegionOverride(ctx, "us-west-2")
	if got := GetRegionFromContext(ctx); got != "us-west-2" {
		t.Errorf("GetRegionFromContext() = %q, want %q", got, "us-west-2")
	}
}
