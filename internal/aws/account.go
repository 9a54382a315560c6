package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/loupecli/loupe/internal/log"
)

// FetchAccountID resolves the caller's account ID via STS. Returns "" when
// the identity cannot be resolved; startup proceeds without it.
func FetchAccountID(ctx context.Context, cfg aws.Config) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := sts.NewFromConfig(cfg)
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		log.Warn("fetch caller identity", "error", err)
		return ""
	}
	return Str(out.Account)
}
