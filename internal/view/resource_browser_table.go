package view

import (
	"charm.land/lipgloss/v2/table"

	"github.com/loupecli/loupe/internal/render"
)

func (r *ResourceBrowser) Cursor() int {
	return r.tc.Cursor()
}

func (r *ResourceBrowser) SetCursor(n int) {
	r.tc.SetCursor(n, len(r.filtered))
}

func (r *ResourceBrowser) buildTable() {
	if r.renderer == nil {
		r.tableContent = ""
		return
	}

	r.tc.SetCursor(r.tc.Cursor(), len(r.filtered))

	cols := r.renderer.Columns()
	if len(cols) == 0 {
		r.tableContent = ""
		return
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Name + r.getSortIndicator(i)
	}

	var summaryFields []render.SummaryField
	cursor := r.tc.Cursor()
	if len(r.filtered) > 0 && cursor >= 0 && cursor < len(r.filtered) {
		summaryFields = r.renderer.RenderSummary(r.filtered[cursor])
	}
	headerStr := r.headerPanel.Render(r.service, r.resourceType, summaryFields)
	headerHeight := r.headerPanel.Height(headerStr)

	tableHeight := r.height - headerHeight - 1
	if tableHeight < 1 {
		tableHeight = 1
	}
	r.tc.SetTableHeight(tableHeight)

	widths := r.calculateColumnWidths(cols)

	t := table.New().
		Headers(headers...).
		Width(r.width).
		Height(tableHeight).
		Wrap(false).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(TableBorderStyle()).
		StyleFunc(NewTableStyleFunc(widths, cursor))

	for _, res := range r.filtered {
		row := r.renderer.RenderRow(res, cols)
		t = t.Row(row...)
	}

	if r.tc.ScrollOffset() > 0 {
		t = t.YOffset(r.tc.ScrollOffset())
	}

	r.tableContent = t.String()
}

func (r *ResourceBrowser) calculateColumnWidths(cols []render.Column) []int {
	totalColWidth := 0
	for _, col := range cols {
		totalColWidth += col.Width
	}

	extraWidth := r.width - totalColWidth
	if extraWidth < 0 {
		extraWidth = 0
	}

	// Last column absorbs the leftover width
	widths := make([]int, len(cols))
	for i, col := range cols {
		w := col.Width
		if i == len(cols)-1 {
			w += extraWidth
		}
		widths[i] = w
	}

	return widths
}
