package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Mark is the checkbox state of a row.
type Mark int

const (
	Unchecked Mark = iota
	Partial        // some descendants checked
	Checked        // the row, or all of its descendants, checked
)

func (m Mark) String() string {
	switch m {
	case Checked:
		return "checked"
	case Partial:
		return "partial"
	default:
		return "unchecked"
	}
}

// MarshalText encodes the mark by name.
func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Box returns the checkbox glyph for the mark.
func (m Mark) Box() string {
	switch m {
	case Checked:
		return "[x]"
	case Partial:
		return "[-]"
	default:
		return "[ ]"
	}
}

// Row is one flattened place as seen by exporters.
type Row struct {
	Label      string `json:"label"`
	Depth      int    `json:"depth"`
	Expandable bool   `json:"expandable"`
	Selected   bool   `json:"selected"`
	Mark       Mark   `json:"mark"`
	Branch     bool   `json:"-"` // has at least one descendant row
}

// placeholder is shown for rows whose label has not been entered yet.
const placeholder = "(new place)"

// GenerateMarkdown creates a selection report for rows.
func GenerateMarkdown(rows []Row, title string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC1123)))

	selected := 0
	branches := 0
	for _, r := range rows {
		if r.Selected {
			selected++
		}
		if r.Branch && r.Mark == Checked {
			branches++
		}
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Places**: %d\n", len(rows)))
	sb.WriteString(fmt.Sprintf("- **Selected**: %d\n", selected))
	sb.WriteString(fmt.Sprintf("- **Fully selected branches**: %d\n\n", branches))

	sb.WriteString("## Selection\n\n")
	wrote := false
	for _, r := range rows {
		if r.Mark == Unchecked {
			continue
		}
		label := r.Label
		if label == "" {
			label = placeholder
		}
		sb.WriteString(strings.Repeat("  ", r.Depth))
		sb.WriteString(fmt.Sprintf("- %s %s\n", r.Mark.Box(), escapeMarkdown(label)))
		wrote = true
	}
	if !wrote {
		sb.WriteString("_Nothing selected._\n")
	}

	return sb.String()
}

// SaveMarkdownToFile writes the generated report to filename.
func SaveMarkdownToFile(rows []Row, title, filename string) error {
	content := GenerateMarkdown(rows, title, time.Now())
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// SelectedLabels returns the labels of selected rows, one per line, indented
// by depth. Used for clipboard copies.
func SelectedLabels(rows []Row) string {
	var lines []string
	for _, r := range rows {
		if r.Selected {
			lines = append(lines, strings.Repeat("  ", r.Depth)+strings.TrimSpace(r.Label))
		}
	}
	return strings.Join(lines, "\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
