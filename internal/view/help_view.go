package view

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/loupecli/loupe/internal/ui"
)

// HelpView shows keybindings and help information
// helpViewStyles holds cached lipgloss styles for performance
type helpViewStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

func newHelpViewStyles() helpViewStyles {
	return helpViewStyles{
		title:   ui.TitleStyle(),
		section: ui.SectionStyle().MarginTop(1),
		key:     ui.SuccessStyle().Width(15),
		desc:    ui.TextStyle(),
	}
}

type HelpView struct {
	styles helpViewStyles
	vp     ViewportState
}

// NewHelpView creates a new HelpView
func NewHelpView() *HelpView {
	return &HelpView{
		styles: newHelpViewStyles(),
	}
}

// Init implements tea.Model
func (h *HelpView) Init() tea.Cmd {
	return nil
}

func (h *HelpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	h.vp.Model, cmd = h.vp.Model.Update(msg)
	return h, cmd
}

// renderContent returns the help content for the viewport
func (h *HelpView) renderContent() string {
	s := h.styles

	var out string
	out += s.title.Render("loupe - ECS status browser") + "\n\n"

	// Navigation
	out += s.section.Render("Navigation") + "\n"
	out += s.key.Render("↑/k, ↓/j") + s.desc.Render("Move cursor up/down") + "\n"
	out += s.key.Render("Ctrl+d/u") + s.desc.Render("Half page down/up") + "\n"
	out += s.key.Render("g / G") + s.desc.Render("Jump to top / bottom") + "\n"
	out += s.key.Render("Enter/d") + s.desc.Render("View details / select") + "\n"
	out += s.key.Render("Esc") + s.desc.Render("Go back / cancel") + "\n"
	out += s.key.Render("q") + s.desc.Render("Quit") + "\n"

	// Resource Browser
	out += "\n" + s.section.Render("Resource Browser") + "\n"
	out += s.key.Render("Tab") + s.desc.Render("Next resource type") + "\n"
	out += s.key.Render("Shift+Tab") + s.desc.Render("Previous resource type") + "\n"
	out += s.key.Render("1-9") + s.desc.Render("Switch to resource type") + "\n"
	out += s.key.Render("/") + s.desc.Render("Filter resources") + "\n"
	out += s.key.Render("c") + s.desc.Render("Clear filter") + "\n"
	out += s.key.Render("Ctrl+r") + s.desc.Render("Refresh resources") + "\n"
	out += s.key.Render("a") + s.desc.Render("Show actions menu") + "\n"
	out += s.key.Render("y") + s.desc.Render("Copy resource ID to clipboard") + "\n"
	out += s.key.Render("Y") + s.desc.Render("Copy resource ARN to clipboard") + "\n"

	// Filter Syntax
	out += "\n" + s.section.Render("Filter Syntax") + "\n"
	out += s.key.Render("/text") + s.desc.Render("Case-insensitive match in all columns") + "\n"

	// Actions
	out += "\n" + s.section.Render("Actions (ECS Tasks)") + "\n"
	out += s.key.Render("x") + s.desc.Render("Shell into container (ECS Exec)") + "\n"
	out += s.key.Render("S") + s.desc.Render("Stop task (dangerous)") + "\n"

	// Navigation shortcuts
	out += "\n" + s.section.Render("Resource Navigation") + "\n"
	out += ui.DimStyle().Italic(true).
		Render("  Navigation shortcuts are shown in the status line.\n  They change based on the current resource type.\n") + "\n"
	out += s.key.Render("Cluster") + s.desc.Render("s:Services t:Tasks") + "\n"
	out += s.key.Render("Service") + s.desc.Render("t:Tasks c:Cluster f:TaskDef") + "\n"
	out += s.key.Render("Task") + s.desc.Render("c:Cluster s:Service f:TaskDef") + "\n"

	// Global
	out += "\n" + s.section.Render("Global") + "\n"
	out += s.key.Render("?") + s.desc.Render("Show this help") + "\n"
	out += s.key.Render("q / Ctrl+C") + s.desc.Render("Quit") + "\n"

	return out
}

func (h *HelpView) ViewString() string {
	if !h.vp.Ready {
		return LoadingMessage
	}
	return h.vp.Model.View()
}

// View implements tea.Model
func (h *HelpView) View() tea.View {
	return tea.NewView(h.ViewString())
}

func (h *HelpView) SetSize(width, height int) tea.Cmd {
	h.vp.SetSize(width, height)
	h.vp.Model.SetContent(h.renderContent())
	return nil
}

// StatusLine implements View
func (h *HelpView) StatusLine() string {
	return "Help • Press Esc to go back"
}
