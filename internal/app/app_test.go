package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/loupecli/loupe/internal/registry"
	"github.com/loupecli/loupe/internal/view"
)

// MockView is a simple view for testing
type MockView struct {
	name        string
	hasInput    bool
	escReceived bool
}

func (m *MockView) Init() tea.Cmd                     { return nil }
func (m *MockView) View() tea.View                    { return tea.NewView(m.name) }
func (m *MockView) ViewString() string                { return m.name }
func (m *MockView) SetSize(width, height int) tea.Cmd { return nil }
func (m *MockView) StatusLine() string                { return m.name }
func (m *MockView) HasActiveInput() bool              { return m.hasInput }
func (m *MockView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok && keyMsg.String() == "esc" {
		m.escReceived = true
		m.hasInput = false // Close input on esc
	}
	return m, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()
	reg := registry.New()
	app := New(ctx, reg)
	app.width = 100
	app.height = 50
	return app
}

func TestEscInDetailView(t *testing.T) {
	app := newTestApp(t)

	// Set up view stack: ClustersBrowser -> TasksBrowser -> DetailView
	clustersBrowser := &MockView{name: "ClustersBrowser"}
	tasksBrowser := &MockView{name: "TasksBrowser"}
	detailView := &MockView{name: "DetailView"}

	app.viewStack = []view.View{clustersBrowser, tasksBrowser}
	app.currentView = detailView

	escMsg := tea.KeyPressMsg{Code: tea.KeyEscape}
	app.Update(escMsg)

	if app.currentView.StatusLine() != "TasksBrowser" {
		t.Errorf("Expected currentView to be TasksBrowser, got %s", app.currentView.StatusLine())
	}
	if len(app.viewStack) != 1 {
		t.Errorf("Expected viewStack length 1, got %d", len(app.viewStack))
	}

	app.Update(escMsg)

	if app.currentView.StatusLine() != "ClustersBrowser" {
		t.Errorf("Expected currentView to be ClustersBrowser, got %s", app.currentView.StatusLine())
	}
	if len(app.viewStack) != 0 {
		t.Errorf("Expected viewStack length 0, got %d", len(app.viewStack))
	}
}

func TestEscInFilterMode(t *testing.T) {
	app := newTestApp(t)

	tasksBrowser := &MockView{name: "TasksBrowser", hasInput: true}
	clustersBrowser := &MockView{name: "ClustersBrowser"}

	app.viewStack = []view.View{clustersBrowser}
	app.currentView = tasksBrowser

	// Press esc - should close filter, NOT go back
	escMsg := tea.KeyPressMsg{Code: tea.KeyEscape}
	app.Update(escMsg)

	if app.currentView.StatusLine() != "TasksBrowser" {
		t.Errorf("Expected currentView to be TasksBrowser, got %s", app.currentView.StatusLine())
	}
	if !tasksBrowser.escReceived {
		t.Errorf("Expected escReceived to be true")
	}
	if tasksBrowser.hasInput {
		t.Errorf("Expected hasInput to be false after esc")
	}
	if len(app.viewStack) != 1 {
		t.Errorf("Expected viewStack length 1, got %d", len(app.viewStack))
	}
}

func TestNavigationFlow(t *testing.T) {
	app := newTestApp(t)

	clustersBrowser := &MockView{name: "ClustersBrowser"}
	app.currentView = clustersBrowser
	app.viewStack = nil

	// Navigate to tasks, then to a detail view
	tasksBrowser := &MockView{name: "TasksBrowser"}
	app.Update(view.NavigateMsg{View: tasksBrowser})

	if app.currentView.StatusLine() != "TasksBrowser" {
		t.Errorf("Expected currentView to be TasksBrowser, got %s", app.currentView.StatusLine())
	}
	if len(app.viewStack) != 1 {
		t.Errorf("Expected viewStack length 1, got %d", len(app.viewStack))
	}

	detailView := &MockView{name: "DetailView"}
	app.Update(view.NavigateMsg{View: detailView})

	if app.currentView.StatusLine() != "DetailView" {
		t.Errorf("Expected currentView to be DetailView, got %s", app.currentView.StatusLine())
	}
	if len(app.viewStack) != 2 {
		t.Errorf("Expected viewStack length 2, got %d", len(app.viewStack))
	}

	// Esc walks back up
	escMsg := tea.KeyPressMsg{Code: tea.KeyEscape}
	app.Update(escMsg)

	if app.currentView.StatusLine() != "TasksBrowser" {
		t.Errorf("Expected currentView to be TasksBrowser, got %s", app.currentView.StatusLine())
	}

	app.Update(escMsg)

	if app.currentView.StatusLine() != "ClustersBrowser" {
		t.Errorf("Expected currentView to be ClustersBrowser, got %s", app.currentView.StatusLine())
	}
	if len(app.viewStack) != 0 {
		t.Errorf("Expected viewStack length 0, got %d", len(app.viewStack))
	}
}

func TestNavigateMsgClearStack(t *testing.T) {
	app := newTestApp(t)

	app.viewStack = []view.View{&MockView{name: "A"}, &MockView{name: "B"}}
	app.currentView = &MockView{name: "C"}

	app.Update(view.NavigateMsg{View: &MockView{name: "Fresh"}, ClearStack: true})

	if app.currentView.StatusLine() != "Fresh" {
		t.Errorf("Expected currentView to be Fresh, got %s", app.currentView.StatusLine())
	}
	if len(app.viewStack) != 0 {
		t.Errorf("Expected viewStack cleared, got %d", len(app.viewStack))
	}
}

func TestAWSContextReadyMsg_Success(t *testing.T) {
	app := newTestApp(t)
	app.awsInitializing = true

	app.Update(awsContextReadyMsg{err: nil})

	if app.awsInitializing {
		t.Error("Expected awsInitializing to be false after success")
	}
	if app.showWarnings {
		t.Error("Expected showWarnings to be false after success")
	}
}

func TestAWSContextReadyMsg_Failure(t *testing.T) {
	app := newTestApp(t)
	app.awsInitializing = true

	app.Update(awsContextReadyMsg{err: errors.New("no credentials")})

	if app.awsInitializing {
		t.Error("Expected awsInitializing to be false after failure")
	}
	if !app.showWarnings {
		t.Error("Expected showWarnings to be true after failure")
	}
}

func TestAWSContextReadyMsg_IMDSError(t *testing.T) {
	app := newTestApp(t)
	app.awsInitializing = true

	msg := awsContextReadyMsg{err: fmt.Errorf("operation error ec2imds: GetRegion, exceeded maximum number of attempts")}
	app.Update(msg)

	if app.awsInitializing {
		t.Error("Expected awsInitializing to be false after IMDS error")
	}
	if app.showWarnings {
		t.Error("Expected showWarnings to be false for IMDS errors (suppressed)")
	}
}

func TestErrorMsgSetAndCleared(t *testing.T) {
	app := newTestApp(t)
	app.currentView = &MockView{name: "TasksBrowser"}

	_, cmd := app.Update(view.ErrorMsg{Err: errors.New("describe failed")})

	if app.err == nil {
		t.Fatal("Expected err to be set after ErrorMsg")
	}
	if cmd == nil {
		t.Fatal("Expected a clear-error tick command")
	}

	app.Update(clearErrorMsg{})

	if app.err != nil {
		t.Error("Expected err to be cleared after clearErrorMsg")
	}
}

func TestModalShowAndHide(t *testing.T) {
	app := newTestApp(t)

	clustersBrowser := &MockView{name: "ClustersBrowser"}
	app.currentView = clustersBrowser
	app.viewStack = nil

	modalContent := &MockView{name: "ActionMenu"}
	app.Update(view.ShowModalMsg{Modal: &view.Modal{Content: modalContent}})

	if app.modal == nil {
		t.Fatal("Expected modal to be set after ShowModalMsg")
	}
	if app.modal.Content.StatusLine() != "ActionMenu" {
		t.Errorf("Expected modal content to be ActionMenu, got %s", app.modal.Content.StatusLine())
	}

	app.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if app.modal != nil {
		t.Error("Expected modal to be nil after esc")
	}
	if app.currentView.StatusLine() != "ClustersBrowser" {
		t.Errorf("Expected currentView to remain ClustersBrowser, got %s", app.currentView.StatusLine())
	}
}

func TestModalClosesWithKey(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
	}{
		{"q key", tea.KeyPressMsg{Code: 0, Text: "q"}},
		{"esc key", tea.KeyPressMsg{Code: tea.KeyEscape}},
		{"backspace", tea.KeyPressMsg{Code: tea.KeyBackspace}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.currentView = &MockView{name: "ClustersBrowser"}
			app.modal = &view.Modal{Content: &MockView{name: "TestModal"}}

			app.Update(tt.key)

			if app.modal != nil {
				t.Errorf("Expected modal nil after %s", tt.name)
			}
			if app.currentView.StatusLine() != "ClustersBrowser" {
				t.Errorf("Expected currentView ClustersBrowser, got %s", app.currentView.StatusLine())
			}
		})
	}
}

func TestModalNavigateClosesModal(t *testing.T) {
	app := newTestApp(t)

	clustersBrowser := &MockView{name: "ClustersBrowser"}
	app.currentView = clustersBrowser
	app.viewStack = nil

	modalContent := &MockView{name: "ActionMenu"}
	app.modal = &view.Modal{Content: modalContent}

	detailView := &MockView{name: "DetailView"}
	app.Update(view.NavigateMsg{View: detailView})

	if app.modal != nil {
		t.Error("Expected modal to be closed after NavigateMsg")
	}
	if app.currentView.StatusLine() != "DetailView" {
		t.Errorf("Expected currentView to be DetailView, got %s", app.currentView.StatusLine())
	}
	if len(app.viewStack) != 1 {
		t.Errorf("Expected viewStack length 1, got %d", len(app.viewStack))
	}
}

func TestHelpKeyPushesHelpView(t *testing.T) {
	app := newTestApp(t)
	app.currentView = &MockView{name: "ClustersBrowser"}
	app.viewStack = nil

	app.Update(tea.KeyPressMsg{Code: 0, Text: "?"})

	if _, ok := app.currentView.(*view.HelpView); !ok {
		t.Errorf("Expected currentView to be *view.HelpView, got %T", app.currentView)
	}
	if len(app.viewStack) != 1 {
		t.Errorf("Expected viewStack length 1, got %d", len(app.viewStack))
	}
}

func TestQuitKey(t *testing.T) {
	app := newTestApp(t)
	app.currentView = &MockView{name: "ClustersBrowser"}

	_, cmd := app.Update(tea.KeyPressMsg{Code: 0, Text: "q"})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Expected tea.QuitMsg, got %T", cmd())
	}
}

func TestWarningScreenDismissal(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
	}{
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter}},
		{"space", tea.KeyPressMsg{Code: tea.KeySpace}},
		{"q", tea.KeyPressMsg{Code: 0, Text: "q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.showWarnings = true
			app.warningsReady = true

			app.Update(tt.key)

			if app.showWarnings {
				t.Errorf("Expected showWarnings=false after %s key", tt.name)
			}
		})
	}
}

func TestWindowSizeMsgResizesViews(t *testing.T) {
	app := newTestApp(t)
	app.currentView = &MockView{name: "ClustersBrowser"}

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if app.width != 120 || app.height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", app.width, app.height)
	}
	if !app.warningsReady {
		t.Error("Expected warningsReady after first WindowSizeMsg")
	}
}
