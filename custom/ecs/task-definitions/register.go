package taskdefinitions

import (
	"context"

	"github.com/loupecli/loupe/internal/dao"
	"github.com/loupecli/loupe/internal/registry"
	"github.com/loupecli/loupe/internal/render"
)

// ServiceResourcePath identifies this resource type in error messages and logs.
const ServiceResourcePath = "ecs/task-definitions"

func init() {
	registry.Global.RegisterCustom("ecs", "task-definitions", registry.Entry{
		DAOFactory: func(ctx context.Context) (dao.DAO, error) {
			return NewTaskDefinitionDAO(ctx)
		},
		RendererFactory: func() render.Renderer {
			return NewTaskDefinitionRenderer()
		},
	})
}
