package app

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/loupecli/loupe/internal/aws"
	"github.com/loupecli/loupe/internal/config"
	"github.com/loupecli/loupe/internal/log"
	"github.com/loupecli/loupe/internal/registry"
	"github.com/loupecli/loupe/internal/ui"
	"github.com/loupecli/loupe/internal/view"
)

// clearErrorMsg is sent to clear transient errors after a timeout
type clearErrorMsg struct{}

// awsContextReadyMsg is sent when AWS context initialization completes
type awsContextReadyMsg struct {
	err error
}

// App is the main application model
// appStyles holds cached lipgloss styles for performance
type appStyles struct {
	status       lipgloss.Style
	readOnly     lipgloss.Style
	warningTitle lipgloss.Style
	warningItem  lipgloss.Style
	warningDim   lipgloss.Style
	warningBox   lipgloss.Style
}

func newAppStyles(width int) appStyles {
	t := ui.Current()
	return appStyles{
		status:       lipgloss.NewStyle().Background(t.TableHeader).Foreground(t.TableHeaderText).Padding(0, 1).Width(width),
		readOnly:     lipgloss.NewStyle().Background(t.Warning).Foreground(lipgloss.Color("#000000")).Bold(true).Padding(0, 1),
		warningTitle: lipgloss.NewStyle().Bold(true).Foreground(t.Pending).MarginBottom(1),
		warningItem:  lipgloss.NewStyle().Foreground(t.Warning),
		warningDim:   lipgloss.NewStyle().Foreground(t.TextDim).MarginTop(1),
		warningBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Pending).Padding(1, 2),
	}
}

type App struct {
	ctx      context.Context
	registry *registry.Registry
	width    int
	height   int

	// Initial view target, e.g. "ecs" or "ecs/tasks"
	startService  string
	startResource string
	startFilter   string

	currentView view.View
	viewStack   []view.View

	help help.Model
	keys keyMap

	err error

	showWarnings  bool
	warningsReady bool

	awsInitializing bool

	modal         *view.Modal
	modalRenderer *view.ModalRenderer

	styles appStyles
}

func New(ctx context.Context, reg *registry.Registry) *App {
	return &App{
		ctx:           ctx,
		registry:      reg,
		startService:  "ecs",
		help:          help.New(),
		keys:          defaultKeyMap(),
		modalRenderer: view.NewModalRenderer(),
		styles:        newAppStyles(0),
	}
}

// SetStartView sets the service (and optionally resource type) shown on startup
func (a *App) SetStartView(service, resource string) {
	a.startService = service
	a.startResource = resource
}

// SetStartFilter pre-fills the browser's text filter, narrowing the initial
// listing to a specific resource (the -i flag).
func (a *App) SetStartFilter(filter string) {
	a.startFilter = filter
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	// Show the resource browser immediately (no blocking on AWS calls)
	var browser *view.ResourceBrowser
	if a.startResource != "" {
		browser = view.NewResourceBrowserWithType(a.ctx, a.registry, a.startService, a.startResource)
	} else {
		browser = view.NewResourceBrowser(a.ctx, a.registry, a.startService)
	}
	if a.startFilter != "" {
		browser.SetTextFilter(a.startFilter)
	}
	a.currentView = browser
	a.awsInitializing = true

	// Initialize AWS context in background (region detection, account ID fetch)
	// Use timeout to avoid indefinite hang on network issues
	initAWSCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(a.ctx, config.File().AWSInitTimeout())
		defer cancel()
		err := aws.InitContext(ctx)
		return awsContextReadyMsg{err: err}
	}

	return tea.Batch(a.currentView.Init(), initAWSCmd)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.showWarnings && a.warningsReady {
		if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
			if keyMsg.Code == tea.KeyEnter || keyMsg.String() == "space" || keyMsg.String() == "q" {
				a.showWarnings = false
				return a, nil
			}
			return a, nil
		}
	}

	if a.modal != nil {
		return a.handleModalUpdate(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.SetWidth(msg.Width)
		// Update cached styles with new width
		a.styles = newAppStyles(msg.Width)
		// Mark warnings ready after first WindowSizeMsg (terminal initialized).
		// Safe to set unconditionally - only affects dismissal when showWarnings is true.
		a.warningsReady = true
		if a.currentView != nil {
			return a, a.currentView.SetSize(msg.Width, msg.Height-2)
		}
		return a, nil

	case tea.MouseClickMsg:
		// Mouse back button navigates back (same as esc/backspace)
		if msg.Button == tea.MouseBackward && len(a.viewStack) > 0 {
			a.currentView = a.viewStack[len(a.viewStack)-1]
			a.viewStack = a.viewStack[:len(a.viewStack)-1]
			return a, a.currentView.SetSize(a.width, a.height-2)
		}

	case tea.KeyPressMsg:
		// Handle back navigation (esc or backspace)
		isBack := view.IsEscKey(msg) || msg.Code == tea.KeyBackspace

		if isBack {
			// If current view has active input, let it handle esc first
			if ic, ok := a.currentView.(view.InputCapture); ok && ic.HasActiveInput() {
				model, cmd := a.currentView.Update(msg)
				if v, ok := model.(view.View); ok {
					a.currentView = v
				}
				return a, cmd
			}
			// Otherwise, go back
			if len(a.viewStack) > 0 {
				a.currentView = a.viewStack[len(a.viewStack)-1]
				a.viewStack = a.viewStack[:len(a.viewStack)-1]
				return a, a.currentView.SetSize(a.width, a.height-2)
			}
			return a, nil
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			if _, ok := a.currentView.(*view.DetailView); ok && len(a.viewStack) > 0 {
				a.currentView = a.viewStack[len(a.viewStack)-1]
				a.viewStack = a.viewStack[:len(a.viewStack)-1]
				return a, a.currentView.SetSize(a.width, a.height-2)
			}
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			// Show full help view
			helpView := view.NewHelpView()
			if a.currentView != nil {
				a.viewStack = append(a.viewStack, a.currentView)
			}
			a.currentView = helpView
			return a, a.currentView.SetSize(a.width, a.height-2)
		}

	case view.ShowModalMsg:
		a.modal = msg.Modal
		return a, a.modal.SetSize(a.width, a.height)

	case view.NavigateMsg:
		log.Debug("navigating", "clearStack", msg.ClearStack, "stackDepth", len(a.viewStack))
		if msg.ClearStack {
			a.viewStack = nil
		} else if a.currentView != nil {
			a.viewStack = append(a.viewStack, a.currentView)
		}
		a.currentView = msg.View
		cmds := []tea.Cmd{
			a.currentView.Init(),
			a.currentView.SetSize(a.width, a.height-2),
		}
		return a, tea.Batch(cmds...)

	case view.ErrorMsg:
		log.Error("application error", "error", msg.Err)
		a.err = msg.Err
		// Auto-clear transient errors after 3 seconds
		return a, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearErrorMsg{}
		})

	case clearErrorMsg:
		a.err = nil
		return a, nil

	case awsContextReadyMsg:
		a.awsInitializing = false
		if msg.err != nil {
			errStr := msg.err.Error()
			// IMDS errors are expected on non-EC2 environments - log only, no warning
			if strings.Contains(errStr, "ec2imds") {
				log.Debug("IMDS region detection failed (expected on non-EC2)", "error", msg.err)
			} else {
				log.Debug("AWS context initialization failed", "error", msg.err)
				config.Global().AddWarning("AWS init failed: " + errStr)
				a.showWarnings = true
			}
		}
		return a, nil

	case view.SortMsg:
		// Delegate sort command to current view
		if a.currentView != nil {
			model, cmd := a.currentView.Update(msg)
			if v, ok := model.(view.View); ok {
				a.currentView = v
			}
			return a, cmd
		}
		return a, nil
	}

	// Delegate to current view
	if a.currentView != nil {
		model, cmd := a.currentView.Update(msg)
		if v, ok := model.(view.View); ok {
			a.currentView = v
		}
		return a, cmd
	}

	return a, nil
}

// newAltScreenView creates a View with AltScreen and mouse support enabled
func newAltScreenView(content string) tea.View {
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion // AllMotion for hover tracking
	return v
}

func (a *App) View() tea.View {
	if a.showWarnings {
		return newAltScreenView(a.renderWarnings())
	}

	var content string
	if a.currentView != nil {
		content = a.currentView.ViewString()
	}

	var statusContent string
	if a.err != nil {
		statusContent = ui.DangerStyle().Render("Error: " + a.err.Error())
	} else if a.currentView != nil {
		statusContent = a.currentView.StatusLine()
	}

	if config.Global().ReadOnly() {
		roIndicator := a.styles.readOnly.Render("READ-ONLY")
		statusContent = roIndicator + " " + statusContent
	}

	if a.awsInitializing {
		statusContent = ui.DimStyle().Render("AWS initializing...") + " • " + statusContent
	}

	status := a.styles.status.Render(statusContent)
	mainView := content + "\n" + status

	if a.modal != nil {
		return newAltScreenView(a.modalRenderer.Render(a.modal, mainView, a.width, a.height))
	}

	return newAltScreenView(mainView)
}

// renderWarnings renders the startup warnings modal
func (a *App) renderWarnings() string {
	warnings := config.Global().Warnings()
	s := a.styles

	var content string
	content += s.warningTitle.Render("⚠ Startup Warnings") + "\n\n"

	for _, w := range warnings {
		content += s.warningItem.Render("• "+w) + "\n"
	}

	content += "\n" + s.warningDim.Render("Press Enter, Space, or q to continue...")

	boxStyle := s.warningBox.Width(a.width - 10)
	box := boxStyle.Render(content)

	// Center the box
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

func (a *App) handleModalUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case view.HideModalMsg:
		a.modal = nil
		return a, nil

	case view.NavigateMsg:
		a.modal = nil
		log.Debug("modal navigate", "clearStack", msg.ClearStack, "stackDepth", len(a.viewStack))
		if msg.ClearStack {
			a.viewStack = nil
		} else if a.currentView != nil {
			a.viewStack = append(a.viewStack, a.currentView)
		}
		a.currentView = msg.View
		return a, tea.Batch(
			a.currentView.Init(),
			a.currentView.SetSize(a.width, a.height-2),
		)

	case tea.KeyPressMsg:
		if view.IsEscKey(msg) || msg.Code == tea.KeyBackspace || msg.String() == "q" {
			if ic, ok := a.modal.Content.(view.InputCapture); ok && ic.HasActiveInput() {
				break
			}
			a.modal = nil
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.styles = newAppStyles(msg.Width)
		var viewCmd tea.Cmd
		if a.currentView != nil {
			viewCmd = a.currentView.SetSize(msg.Width, msg.Height-2)
		}
		modalCmd := a.modal.SetSize(msg.Width, msg.Height)
		return a, tea.Batch(viewCmd, modalCmd)
	}

	modal, cmd := a.modal.Update(msg)
	a.modal = modal
	return a, cmd
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Filter, k.Help, k.Quit},
	}
}
