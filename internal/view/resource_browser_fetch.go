package view

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/loupecli/loupe/internal/dao"
	"github.com/loupecli/loupe/internal/log"
	"github.com/loupecli/loupe/internal/render"
)

func (r *ResourceBrowser) listResources(d dao.DAO) ([]dao.Resource, error) {
	listCtx := r.ctx
	if r.fieldFilter != "" && r.fieldFilterValue != "" {
		listCtx = dao.WithFilter(r.ctx, r.fieldFilter, r.fieldFilterValue)
	}
	return d.List(listCtx)
}

func (r *ResourceBrowser) loadResources() tea.Msg {
	start := time.Now()

	log.Debug("loading resources", "service", r.service, "resourceType", r.resourceType)

	renderer, err := r.registry.GetRenderer(r.service, r.resourceType)
	if err != nil {
		log.Error("failed to get renderer", "service", r.service, "resourceType", r.resourceType, "error", err)
		return resourcesErrorMsg{err: err}
	}

	d, err := r.registry.GetDAO(r.ctx, r.service, r.resourceType)
	if err != nil {
		log.Error("failed to get DAO", "service", r.service, "resourceType", r.resourceType, "error", err)
		return resourcesErrorMsg{err: err}
	}

	resources, err := r.listResources(d)
	if err != nil {
		log.Error("failed to list resources", "error", err, "duration", time.Since(start))
		return resourcesErrorMsg{err: err}
	}
	log.Debug("resources loaded", "count", len(resources), "duration", time.Since(start))

	return resourcesLoadedMsg{
		dao:       d,
		renderer:  renderer,
		resources: resources,
	}
}

func (r *ResourceBrowser) reloadResources() tea.Msg {
	d := r.dao
	if d == nil {
		var err error
		d, err = r.registry.GetDAO(r.ctx, r.service, r.resourceType)
		if err != nil {
			return resourcesErrorMsg{err: err}
		}
	}

	resources, err := r.listResources(d)
	if err != nil {
		return resourcesErrorMsg{err: err}
	}

	return resourcesLoadedMsg{
		dao:       d,
		renderer:  r.renderer,
		resources: resources,
	}
}

type resourcesLoadedMsg struct {
	dao       dao.DAO
	renderer  render.Renderer
	resources []dao.Resource
}

type resourcesErrorMsg struct {
	err error
}
