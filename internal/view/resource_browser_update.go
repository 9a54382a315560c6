package view

import (
	tea "charm.land/bubbletea/v2"
)

func (r *ResourceBrowser) handleResourcesLoaded(msg resourcesLoadedMsg) (tea.Model, tea.Cmd) {
	r.loading = false
	r.dao = msg.dao
	r.renderer = msg.renderer
	r.resources = msg.resources
	r.applyFilter()
	r.buildTable()

	if r.autoReload {
		return r, r.tickCmd()
	}
	return r, nil
}

func (r *ResourceBrowser) handleResourcesError(msg resourcesErrorMsg) (tea.Model, tea.Cmd) {
	r.loading = false
	r.err = msg.err
	if r.autoReload {
		return r, r.tickCmd()
	}
	return r, nil
}

func (r *ResourceBrowser) handleAutoReloadTick() (tea.Model, tea.Cmd) {
	return r, r.reloadResources
}

func (r *ResourceBrowser) handleRefreshMsg() (tea.Model, tea.Cmd) {
	r.loading = true
	r.err = nil
	return r, tea.Batch(r.loadResources, r.spinner.Tick)
}

func (r *ResourceBrowser) handleSortMsg(msg SortMsg) (tea.Model, tea.Cmd) {
	if msg.Column == "" {
		r.ClearSort()
	} else {
		colIdx := r.FindColumnByName(msg.Column)
		if colIdx >= 0 {
			r.SetSort(colIdx, msg.Ascending)
		}
	}
	r.applyFilter()
	r.buildTable()
	return r, nil
}
