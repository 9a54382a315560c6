// Package clipboard copies resource identifiers to the system clipboard
// and reports the outcome as bubbletea messages.
package clipboard

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Label string // what was copied, e.g. "ID" or "ARN"
	Value string
	Err   error
}

// Copy writes value to the system clipboard and returns a CopiedMsg.
func Copy(label, value string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(value)
		return CopiedMsg{Label: label, Value: value, Err: err}
	}
}

// CopyID copies a resource ID.
func CopyID(id string) tea.Cmd {
	return Copy("ID", id)
}

// CopyARN copies a resource ARN.
func CopyARN(arn string) tea.Cmd {
	return Copy("ARN", arn)
}

// NoARN reports that the selected resource has no ARN to copy.
func NoARN() tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Label: "ARN", Err: fmt.Errorf("resource has no ARN")}
	}
}
