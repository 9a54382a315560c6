package services

import (
	"context"

	"github.com/loupecli/loupe/internal/dao"
	"github.com/loupecli/loupe/internal/registry"
	"github.com/loupecli/loupe/internal/render"
)

// ServiceResourcePath identifies this resource type in error messages and logs.
const ServiceResourcePath = "ecs/services"

func init() {
	registry.Global.RegisterCustom("ecs", "services", registry.Entry{
		DAOFactory: func(ctx context.Context) (dao.DAO, error) {
			return NewServiceDAO(ctx)
		},
		RendererFactory: func() render.Renderer {
			return NewServiceRenderer()
		},
	})
}
