package view

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/loupecli/loupe/internal/action"
	"github.com/loupecli/loupe/internal/clipboard"
)

func (r *ResourceBrowser) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if r.filterActive {
		return r.handleFilterInput(msg)
	}

	if len(r.filtered) > 0 && r.tc.Cursor() < len(r.filtered) {
		if nav, cmd := r.handleNavigation(msg.String()); cmd != nil {
			return nav, cmd
		}
	}

	switch msg.String() {
	case "/":
		r.filterActive = true
		r.filterInput.Focus()
		return r, textinput.Blink
	case "ctrl+r":
		return r.handleRefresh()
	case "c":
		return r.handleClearFilter()
	case "d", "enter":
		return r.handleEnter()
	case "a":
		return r.handleAction()
	case "tab":
		r.cycleResourceType(1)
		return r, tea.Batch(r.loadResources, r.spinner.Tick)
	case "shift+tab":
		r.cycleResourceType(-1)
		return r, tea.Batch(r.loadResources, r.spinner.Tick)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return r.handleNumberKey(msg.String())
	case "y":
		return r.handleCopyID()
	case "Y":
		return r.handleCopyARN()
	case "j", "down":
		r.tc.SetCursor(r.tc.Cursor()+1, len(r.filtered))
		r.tc.UpdateScrollOffset(len(r.filtered))
		r.buildTable()
		return r, nil
	case "k", "up":
		r.tc.SetCursor(r.tc.Cursor()-1, len(r.filtered))
		r.tc.UpdateScrollOffset(len(r.filtered))
		r.buildTable()
		return r, nil
	case "ctrl+d", "pgdown":
		r.tc.SetCursor(r.tc.Cursor()+r.tc.TableHeight()/2, len(r.filtered))
		r.tc.UpdateScrollOffset(len(r.filtered))
		r.buildTable()
		return r, nil
	case "ctrl+u", "pgup":
		r.tc.SetCursor(r.tc.Cursor()-r.tc.TableHeight()/2, len(r.filtered))
		r.tc.UpdateScrollOffset(len(r.filtered))
		r.buildTable()
		return r, nil
	case "g", "home":
		r.tc.SetCursor(0, len(r.filtered))
		r.tc.UpdateScrollOffset(len(r.filtered))
		r.buildTable()
		return r, nil
	case "G", "end":
		r.tc.SetCursor(len(r.filtered)-1, len(r.filtered))
		r.tc.UpdateScrollOffset(len(r.filtered))
		r.buildTable()
		return r, nil
	}

	return nil, nil
}

func (r *ResourceBrowser) handleFilterInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if IsEscKey(msg) {
		r.filterActive = false
		r.filterInput.Blur()
		return r, nil
	}
	switch msg.String() {
	case "enter":
		r.filterActive = false
		r.filterInput.Blur()
		r.filterText = r.filterInput.Value()
		r.applyFilter()
		r.buildTable()
		return r, nil
	default:
		var cmd tea.Cmd
		r.filterInput, cmd = r.filterInput.Update(msg)
		r.filterText = r.filterInput.Value()
		r.applyFilter()
		r.buildTable()
		return r, cmd
	}
}

func (r *ResourceBrowser) handleRefresh() (tea.Model, tea.Cmd) {
	r.loading = true
	r.err = nil
	return r, tea.Batch(r.loadResources, r.spinner.Tick)
}

func (r *ResourceBrowser) handleClearFilter() (tea.Model, tea.Cmd) {
	r.filterText = ""
	r.filterInput.SetValue("")
	r.fieldFilter = ""
	r.fieldFilterValue = ""
	r.applyFilter()
	r.buildTable()
	return r, nil
}

func (r *ResourceBrowser) handleEnter() (tea.Model, tea.Cmd) {
	cursor := r.tc.Cursor()
	if len(r.filtered) > 0 && cursor >= 0 && cursor < len(r.filtered) {
		resource := r.filtered[cursor]
		detailView := NewDetailView(r.ctx, resource, r.renderer, r.service, r.resourceType, r.registry, r.dao)
		return r, func() tea.Msg {
			return NavigateMsg{View: detailView}
		}
	}
	return r, nil
}

func (r *ResourceBrowser) handleAction() (tea.Model, tea.Cmd) {
	cursor := r.tc.Cursor()
	if len(r.filtered) > 0 && cursor >= 0 && cursor < len(r.filtered) {
		if actions := action.Global.Get(r.service, r.resourceType); len(actions) > 0 {
			actionMenu := NewActionMenu(r.ctx, r.filtered[cursor], r.service, r.resourceType)
			return r, func() tea.Msg {
				return ShowModalMsg{Modal: &Modal{Content: actionMenu, Width: ModalWidthActionMenu}}
			}
		}
	}
	return r, nil
}

func (r *ResourceBrowser) handleNumberKey(key string) (tea.Model, tea.Cmd) {
	idx := int(key[0] - '1')
	if idx < len(r.resourceTypes) {
		r.resourceType = r.resourceTypes[idx]
		r.loading = true
		r.filterText = ""
		r.filterInput.SetValue("")
		r.statusNote = ""
		return r, tea.Batch(r.loadResources, r.spinner.Tick)
	}
	return r, nil
}

func (r *ResourceBrowser) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	delta := 0
	switch msg.Button {
	case tea.MouseWheelUp:
		delta = -3
	case tea.MouseWheelDown:
		delta = 3
	}
	r.tc.AdjustScrollOffset(delta, len(r.filtered))
	r.buildTable()
	return r, nil
}

func (r *ResourceBrowser) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if idx := r.getRowAtPosition(msg.Y); idx >= 0 && idx != r.tc.Cursor() {
		r.tc.SetCursor(idx, len(r.filtered))
		r.buildTable()
	}
	return r, nil
}

func (r *ResourceBrowser) handleMouseClickMsg(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseLeft {
		if idx := r.getTabAtPosition(msg.X, msg.Y); idx >= 0 {
			return r.switchToTab(idx)
		}
		if len(r.filtered) > 0 {
			return r.handleMouseClick(msg.X, msg.Y)
		}
	}
	return r, nil
}

func (r *ResourceBrowser) getHeaderPanelHeight() int {
	headerStr := r.headerPanel.Render(r.service, r.resourceType, nil)
	return r.headerPanel.Height(headerStr)
}

func (r *ResourceBrowser) getRowAtPosition(y int) int {
	headerHeight := r.getHeaderPanelHeight() + 1 + 1
	if r.filterActive || r.filterText != "" {
		headerHeight++
	}
	tableHeaderRows := 1
	visualRow := y - headerHeight - tableHeaderRows
	dataIdx := visualRow + r.tc.ScrollOffset()
	if visualRow >= 0 && dataIdx >= 0 && dataIdx < len(r.filtered) {
		return dataIdx
	}
	return -1
}

func (r *ResourceBrowser) handleMouseClick(x, y int) (tea.Model, tea.Cmd) {
	if row := r.getRowAtPosition(y); row >= 0 {
		r.tc.SetCursor(row, len(r.filtered))
		r.buildTable()
		return r.openDetailView()
	}
	return r, nil
}

func (r *ResourceBrowser) getTabAtPosition(x, y int) int {
	if len(r.tabPositions) == 0 {
		return -1
	}
	tabsY := r.getHeaderPanelHeight()
	if y != tabsY {
		return -1
	}
	for _, tp := range r.tabPositions {
		if x >= tp.startX && x < tp.endX {
			return tp.tabIdx
		}
	}
	return -1
}

func (r *ResourceBrowser) switchToTab(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(r.resourceTypes) {
		return r, nil
	}
	r.resourceType = r.resourceTypes[idx]
	r.statusNote = ""
	return r, r.loadResources
}

func (r *ResourceBrowser) openDetailView() (tea.Model, tea.Cmd) {
	cursor := r.tc.Cursor()
	if len(r.filtered) == 0 || cursor < 0 || cursor >= len(r.filtered) {
		return r, nil
	}
	resource := r.filtered[cursor]
	detailView := NewDetailView(r.ctx, resource, r.renderer, r.service, r.resourceType, r.registry, r.dao)
	return r, func() tea.Msg {
		return NavigateMsg{View: detailView}
	}
}

func (r *ResourceBrowser) handleCopyID() (tea.Model, tea.Cmd) {
	cursor := r.tc.Cursor()
	if len(r.filtered) > 0 && cursor >= 0 && cursor < len(r.filtered) {
		return r, clipboard.CopyID(r.filtered[cursor].GetID())
	}
	return r, nil
}

func (r *ResourceBrowser) handleCopyARN() (tea.Model, tea.Cmd) {
	cursor := r.tc.Cursor()
	if len(r.filtered) > 0 && cursor >= 0 && cursor < len(r.filtered) {
		if arn := r.filtered[cursor].GetARN(); arn != "" {
			return r, clipboard.CopyARN(arn)
		}
		return r, clipboard.NoARN()
	}
	return r, nil
}
