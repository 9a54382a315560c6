package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3svc "github.com/loupecli/loupe/custom/s3"
	appaws "github.com/loupecli/loupe/internal/aws"
	"github.com/loupecli/loupe/internal/config"
	apperrors "github.com/loupecli/loupe/internal/errors"
	"github.com/loupecli/loupe/internal/presign"
	"github.com/loupecli/loupe/internal/ui"
)

const maxBucketSuggestions = 8

type promptStep int

const (
	stepBucket promptStep = iota
	stepKey
	stepFile
	stepDone
)

// promptAnswers holds the values collected from the interactive prompts.
type promptAnswers struct {
	bucket  string
	key     string
	file    string
	aborted bool
}

// bucketsLoadedMsg is sent when the bucket listing completes
type bucketsLoadedMsg struct {
	names []string
	err   error
}

type promptModel struct {
	ctx  context.Context
	step promptStep

	input textinput.Model
	spin  spinner.Model

	bucket string
	key    string
	file   string

	buckets        []string
	bucketsLoading bool
	bucketsErr     error
	cursor         int // highlighted bucket suggestion

	errNote string
	aborted bool
}

// runPrompts collects whichever of bucket/key/file are still empty. Values
// already supplied via flags keep their prompt skipped.
func runPrompts(ctx context.Context, bucket, key, file string) (promptAnswers, error) {
	m := newPromptModel(ctx, bucket, key, file)

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return promptAnswers{}, err
	}

	fm, ok := final.(*promptModel)
	if !ok {
		return promptAnswers{}, fmt.Errorf("unexpected model type %T", final)
	}
	return promptAnswers{bucket: fm.bucket, key: fm.key, file: fm.file, aborted: fm.aborted}, nil
}

func newPromptModel(ctx context.Context, bucket, key, file string) *promptModel {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Focus()

	m := &promptModel{
		ctx:    ctx,
		input:  ti,
		spin:   ui.NewSpinner(),
		bucket: bucket,
		key:    key,
		file:   file,
	}
	m.step = m.nextStep()
	m.configureInput()
	return m
}

// nextStep returns the first step whose value is still missing
func (m *promptModel) nextStep() promptStep {
	switch {
	case m.bucket == "":
		return stepBucket
	case m.key == "":
		return stepKey
	case m.file == "":
		return stepFile
	default:
		return stepDone
	}
}

func (m *promptModel) configureInput() {
	m.input.SetValue("")
	switch m.step {
	case stepBucket:
		m.input.Prompt = "Bucket: "
		m.input.Placeholder = "bucket name"
	case stepKey:
		m.input.Prompt = "Object key: "
		m.input.Placeholder = "path/to/object"
		m.input.SetValue(presign.DateKeyPrefix(time.Now()))
	case stepFile:
		m.input.Prompt = "File to upload: "
		m.input.Placeholder = "./path/to/file"
	}
}

func (m *promptModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.step == stepBucket {
		m.bucketsLoading = true
		cmds = append(cmds, m.loadBuckets, m.spin.Tick)
	}
	return tea.Batch(cmds...)
}

// loadBuckets lists bucket names for the suggestion list. Failures degrade
// to a plain text prompt.
func (m *promptModel) loadBuckets() tea.Msg {
	ctx, cancel := context.WithTimeout(m.ctx, config.File().FetchTimeout())
	defer cancel()

	client, err := s3svc.GetClient(ctx)
	if err != nil {
		return bucketsLoadedMsg{err: err}
	}

	names, err := appaws.Paginate(ctx, func(token *string) ([]string, *string, error) {
		output, err := client.ListBuckets(ctx, &s3.ListBucketsInput{
			ContinuationToken: token,
			MaxBuckets:        appaws.Int32Ptr(1000),
		})
		if err != nil {
			return nil, nil, apperrors.Wrap(err, "list buckets")
		}
		names := make([]string, 0, len(output.Buckets))
		for _, b := range output.Buckets {
			names = append(names, appaws.Str(b.Name))
		}
		return names, output.ContinuationToken, nil
	})
	if err != nil {
		return bucketsLoadedMsg{err: err}
	}
	return bucketsLoadedMsg{names: names}
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bucketsLoadedMsg:
		m.bucketsLoading = false
		if msg.err != nil {
			m.bucketsErr = msg.err
		} else {
			m.buckets = msg.names
		}
		return m, nil

	case spinner.TickMsg:
		if m.bucketsLoading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *promptModel) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit

	case "up":
		if m.step == stepBucket && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.step == stepBucket && m.cursor < len(m.suggestions())-1 {
			m.cursor++
		}
		return m, nil

	case "tab":
		if m.step == stepBucket {
			if s := m.suggestions(); m.cursor < len(s) {
				m.input.SetValue(s[m.cursor])
				m.cursor = 0
			}
		}
		return m, nil

	case "enter":
		return m.accept()

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.cursor = 0
		m.errNote = ""
		return m, cmd
	}
}

// accept validates the current value and moves to the next prompt
func (m *promptModel) accept() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	if value == "" && m.step == stepBucket {
		if s := m.suggestions(); m.cursor < len(s) {
			value = s[m.cursor]
		}
	}
	if value == "" {
		m.errNote = "a value is required"
		return m, nil
	}

	if m.step == stepFile {
		if info, err := os.Stat(value); err != nil {
			m.errNote = fmt.Sprintf("cannot read %s: %v", value, err)
			return m, nil
		} else if info.IsDir() {
			m.errNote = fmt.Sprintf("%s is a directory", value)
			return m, nil
		}
	}

	switch m.step {
	case stepBucket:
		m.bucket = value
	case stepKey:
		m.key = value
	case stepFile:
		m.file = value
	}

	m.errNote = ""
	m.cursor = 0
	m.step = m.nextStep()
	if m.step == stepDone {
		return m, tea.Quit
	}
	m.configureInput()
	return m, nil
}

// suggestions returns the bucket names matching the typed text
func (m *promptModel) suggestions() []string {
	return filterBuckets(m.buckets, strings.TrimSpace(m.input.Value()))
}

// filterBuckets matches bucket names case-insensitively by substring
func filterBuckets(names []string, needle string) []string {
	if needle == "" {
		return names
	}
	needle = strings.ToLower(needle)
	var matched []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			matched = append(matched, name)
		}
	}
	return matched
}

func (m *promptModel) View() tea.View {
	var b strings.Builder

	b.WriteString(ui.TitleStyle().Render("Presign upload") + "\n\n")

	if m.bucket != "" {
		b.WriteString(ui.DimStyle().Render("Bucket: "+m.bucket) + "\n")
	}
	if m.key != "" {
		b.WriteString(ui.DimStyle().Render("Object key: "+m.key) + "\n")
	}
	if m.file != "" {
		b.WriteString(ui.DimStyle().Render("File: "+m.file) + "\n")
	}

	if m.step == stepBucket {
		b.WriteString(m.renderBucketList())
	}

	b.WriteString(m.input.View() + "\n")

	if m.errNote != "" {
		b.WriteString(ui.DangerStyle().Render(m.errNote) + "\n")
	}

	help := "enter accept • esc cancel"
	if m.step == stepBucket && len(m.buckets) > 0 {
		help = "↑/↓ select • tab complete • " + help
	}
	b.WriteString(ui.DimStyle().Render(help))

	return tea.NewView(b.String())
}

func (m *promptModel) renderBucketList() string {
	if m.bucketsLoading {
		return m.spin.View() + " loading buckets...\n"
	}
	if m.bucketsErr != nil {
		return ui.DimStyle().Render("could not list buckets, type a name: "+m.bucketsErr.Error()) + "\n"
	}

	var b strings.Builder
	for i, name := range m.suggestions() {
		if i >= maxBucketSuggestions {
			b.WriteString(ui.DimStyle().Render("  ...") + "\n")
			break
		}
		if i == m.cursor {
			b.WriteString(ui.SelectedStyle().Render("> "+name) + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}
	return b.String()
}
