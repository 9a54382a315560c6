package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/loupecli/loupe/internal/dao"
)

// applyFilter rebuilds r.filtered from r.resources using the active text
// filter, then re-applies the current sort and clamps the cursor.
func (r *ResourceBrowser) applyFilter() {
	if r.filterText == "" {
		r.filtered = slices.Clone(r.resources)
	} else {
		needle := strings.ToLower(r.filterText)
		filtered := make([]dao.Resource, 0, len(r.resources))
		for _, res := range r.resources {
			if r.matchesFilter(res, needle) {
				filtered = append(filtered, res)
			}
		}
		r.filtered = filtered
	}

	r.applySort()
	r.tc.SetCursor(r.tc.Cursor(), len(r.filtered))
	r.tc.UpdateScrollOffset(len(r.filtered))
}

// SetTextFilter pre-sets the free-text filter, e.g. from the -i startup flag.
// Takes effect on the next load when resources are not fetched yet.
func (r *ResourceBrowser) SetTextFilter(text string) {
	r.filterText = text
	r.filterInput.SetValue(text)
	r.applyFilter()
}

// matchesFilter matches case-insensitively against ID, name, tags, and all
// rendered cell values.
func (r *ResourceBrowser) matchesFilter(res dao.Resource, needle string) bool {
	if strings.Contains(strings.ToLower(res.GetID()), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(res.GetName()), needle) {
		return true
	}
	for k, v := range res.GetTags() {
		if strings.Contains(strings.ToLower(k), needle) || strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	if r.renderer != nil {
		cols := r.renderer.Columns()
		for _, cell := range r.renderer.RenderRow(res, cols) {
			if strings.Contains(strings.ToLower(cell), needle) {
				return true
			}
		}
	}
	return false
}

func (r *ResourceBrowser) applySort() {
	if r.sortColumn < 0 || r.renderer == nil {
		return
	}
	cols := r.renderer.Columns()
	if r.sortColumn >= len(cols) {
		return
	}
	getter := cols[r.sortColumn].Getter
	if getter == nil {
		return
	}
	slices.SortStableFunc(r.filtered, func(a, b dao.Resource) int {
		c := cmp.Compare(strings.ToLower(getter(a)), strings.ToLower(getter(b)))
		if !r.sortAscending {
			c = -c
		}
		return c
	})
}

// SetSort sets the sort column and direction
func (r *ResourceBrowser) SetSort(column int, ascending bool) {
	r.sortColumn = column
	r.sortAscending = ascending
}

// ClearSort resets sorting to the order resources were listed in
func (r *ResourceBrowser) ClearSort() {
	r.sortColumn = -1
	r.sortAscending = true
}

// FindColumnByName returns the index of the column with the given name
// (case-insensitive), or -1 if not found
func (r *ResourceBrowser) FindColumnByName(name string) int {
	if r.renderer == nil {
		return -1
	}
	for i, col := range r.renderer.Columns() {
		if strings.EqualFold(col.Name, name) {
			return i
		}
	}
	return -1
}

func (r *ResourceBrowser) getSortIndicator(column int) string {
	if column != r.sortColumn {
		return ""
	}
	if r.sortAscending {
		return " ↑"
	}
	return " ↓"
}
