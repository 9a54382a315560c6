package buckets

import (
	"context"

	"github.com/loupecli/loupe/internal/dao"
	"github.com/loupecli/loupe/internal/registry"
	"github.com/loupecli/loupe/internal/render"
)

// ServiceResourcePath identifies this resource type in error messages and logs.
const ServiceResourcePath = "s3/buckets"

func init() {
	registry.Global.RegisterCustom("s3", "buckets", registry.Entry{
		DAOFactory: func(ctx context.Context) (dao.DAO, error) {
			return NewBucketDAO(ctx)
		},
		RendererFactory: func() render.Renderer {
			return NewBucketRenderer()
		},
	})
}
