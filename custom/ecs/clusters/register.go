package clusters

import (
	"context"

	"github.com/loupecli/loupe/internal/dao"
	"github.com/loupecli/loupe/internal/registry"
	"github.com/loupecli/loupe/internal/render"
)

// ServiceResourcePath identifies this resource type in error messages and logs.
const ServiceResourcePath = "ecs/clusters"

func init() {
	registry.Global.RegisterCustom("ecs", "clusters", registry.Entry{
		DAOFactory: func(ctx context.Context) (dao.DAO, error) {
			return NewClusterDAO(ctx)
		},
		RendererFactory: func() render.Renderer {
			return NewClusterRenderer()
		},
	})
}
