package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/placetree/pkg/export"
)

// WriteOperation represents the kind of write performed on the selection
type WriteOperation int

const (
	WriteOpCopy WriteOperation = iota
	WriteOpExport
)

func (op WriteOperation) String() string {
	switch op {
	case WriteOpCopy:
		return "copy"
	case WriteOpExport:
		return "export"
	default:
		return "unknown"
	}
}

// WriteResultMsg is returned after a selection write completes
type WriteResultMsg struct {
	Operation WriteOperation
	Target    string // export file, empty for clipboard
	Count     int    // selected places written
	Success   bool
	Error     error
}

// SelectionWriter copies or exports the checked places off the UI goroutine
type SelectionWriter struct {
	copyFn    func(string) error
	available bool
}

// NewSelectionWriter creates a SelectionWriter, detecting clipboard support
func NewSelectionWriter() *SelectionWriter {
	return &SelectionWriter{copyFn: clipboard.WriteAll, available: !clipboard.Unsupported}
}

// IsAvailable returns whether a system clipboard was found
func (w *SelectionWriter) IsAvailable() bool {
	return w.available
}

// CopySelection writes the selected labels, indented by depth, to the clipboard
func (w *SelectionWriter) CopySelection(rows []export.Row) tea.Cmd {
	count := countSelected(rows)
	if !w.available {
		return w.failCmd(WriteOpCopy, "", fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)"))
	}
	if count == 0 {
		return w.failCmd(WriteOpCopy, "", fmt.Errorf("nothing selected"))
	}
	text := export.SelectedLabels(rows)
	copyFn := w.copyFn
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return WriteResultMsg{Operation: WriteOpCopy, Count: count, Error: fmt.Errorf("copy selection: %w", err)}
		}
		return WriteResultMsg{Operation: WriteOpCopy, Count: count, Success: true}
	}
}

// ExportMarkdown writes the selection report to filename
func (w *SelectionWriter) ExportMarkdown(rows []export.Row, title, filename string) tea.Cmd {
	count := countSelected(rows)
	return func() tea.Msg {
		if err := export.SaveMarkdownToFile(rows, title, filename); err != nil {
			return WriteResultMsg{Operation: WriteOpExport, Target: filename, Count: count, Error: err}
		}
		return WriteResultMsg{Operation: WriteOpExport, Target: filename, Count: count, Success: true}
	}
}

// failCmd returns a command that immediately reports err
func (w *SelectionWriter) failCmd(op WriteOperation, target string, err error) tea.Cmd {
	return func() tea.Msg {
		return WriteResultMsg{Operation: op, Target: target, Error: err}
	}
}

// Status renders the result as a one-line status message
func (r WriteResultMsg) Status() string {
	if !r.Success {
		return fmt.Sprintf("%s failed: %v", r.Operation, r.Error)
	}
	noun := "places"
	if r.Count == 1 {
		noun = "place"
	}
	switch r.Operation {
	case WriteOpExport:
		return fmt.Sprintf("Exported %d %s to %s", r.Count, noun, r.Target)
	default:
		return fmt.Sprintf("Copied %d %s to clipboard", r.Count, noun)
	}
}

func countSelected(rows []export.Row) int {
	n := 0
	for _, r := range rows {
		if r.Selected {
			n++
		}
	}
	return n
}
