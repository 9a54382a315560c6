package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"

	appconfig "github.com/loupecli/loupe/internal/config"
)

// InitContext resolves the region and account ID for the selected profile and
// records them in the global config.
func InitContext(ctx context.Context) error {
	sel := appconfig.Global().Selection()

	cfg, err := config.LoadDefaultConfig(ctx, SelectionLoadOptions(sel)...)
	if err != nil {
		return err
	}

	if appconfig.Global().Region() == "" {
		appconfig.Global().SetRegion(cfg.Region)
	}

	appconfig.Global().SetAccountID(FetchAccountID(ctx, cfg))
	return nil
}
