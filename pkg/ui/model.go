package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/placetree/pkg/config"
	"github.com/vanderheijden86/placetree/pkg/export"
)

const (
	// SplitViewThreshold is the minimum width for tree and details side by side.
	SplitViewThreshold = 100

	// ReportTitle heads the markdown selection report.
	ReportTitle = "Selected places"

	reportFileName = config.ReportFile
)

// ConfigReloadedMsg is sent by the config watcher after the file changed.
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

// Model is the top-level bubbletea model.
type Model struct {
	checklist *ChecklistTree
	tree      TreeModel
	keys      keyMap
	help      help.Model
	detail    viewport.Model
	md        *MarkdownRenderer
	editor    *PlaceEditor
	writer    *SelectionWriter
	renderer  *lipgloss.Renderer
	theme     Theme

	// detectedDark is the terminal's own background, restored for "auto".
	detectedDark bool

	cfg       config.Config
	stateDir  string

	// State
	showDetails bool
	showHelp    bool
	ready       bool
	width       int
	height      int

	status        string
	statusIsError bool
}

// ChecklistOptionsFromConfig maps the config onto adapter options.
func ChecklistOptionsFromConfig(cfg config.Config) ChecklistOptions {
	return ChecklistOptions{
		ExpandNewParents: cfg.ExpandNewParents,
		ExpandDepth:      cfg.ExpandDepth,
	}
}

// NewModel creates the app over c, which should have been built with
// ChecklistOptionsFromConfig(cfg). stateDir holds tree-state.json and the
// exported report; empty disables persistence.
func NewModel(c *ChecklistTree, cfg config.Config, stateDir string) Model {
	r := lipgloss.DefaultRenderer()
	detectedDark := r.HasDarkBackground()
	theme := ThemeForMode(r, cfg.Theme, detectedDark)

	tree := NewTreeModel(c, theme)
	tree.SetStateDir(stateDir)
	tree.LoadState()

	h := help.New()
	h.ShortSeparator = " • "

	m := Model{
		checklist:    c,
		tree:         tree,
		keys:         defaultKeyMap(),
		help:         h,
		detail:       viewport.New(0, 0),
		md:           NewMarkdownRendererWithTheme(80, theme),
		renderer:     r,
		theme:        theme,
		detectedDark: detectedDark,
		cfg:          cfg,
		stateDir:     stateDir,
		showDetails:  cfg.ShowDetails,
	}
	m.setWriter(NewSelectionWriter())
	m.updateDetailContent()
	return m
}

// setWriter installs w and hides the copy key when no clipboard was found.
func (m *Model) setWriter(w *SelectionWriter) {
	m.writer = w
	m.keys.Copy.SetEnabled(w.IsAvailable())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Checklist returns the adapter the model renders.
func (m Model) Checklist() *ChecklistTree {
	return m.checklist
}

// Tree returns the tree view for inspection.
func (m Model) Tree() *TreeModel {
	return &m.tree
}

// Editing reports whether the label editor is open.
func (m Model) Editing() bool {
	return m.editor != nil
}

// Status returns the last status message and whether it is an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusIsError
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case ConfigReloadedMsg:
		if msg.Err != nil {
			log.Printf("warning: config reload failed: %v", msg.Err)
			m.setError(fmt.Sprintf("config: %v", msg.Err))
			return m, nil
		}
		m.applyConfig(msg.Config)
		m.setStatus("Config reloaded")
		return m, nil

	case WriteResultMsg:
		if msg.Success {
			m.setStatus(msg.Status())
		} else {
			m.setError(msg.Status())
		}
		return m, nil
	}

	if m.editor != nil {
		cmd := m.editor.Update(msg)
		if m.editor.Result() != EditorActive {
			m.closeEditor()
		}
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
			m.showHelp = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}

	if m.showDetails && !m.isSplitView() {
		// Details replace the tree on narrow screens.
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit, m.keys.Details), msg.Type == tea.KeyEsc:
			m.showDetails = false
			m.layout()
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.tree.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.tree.MoveDown()
	case key.Matches(msg, m.keys.Right):
		m.tree.ExpandOrMoveToChild()
	case key.Matches(msg, m.keys.Left):
		m.tree.CollapseOrJumpToParent()
	case key.Matches(msg, m.keys.Top):
		m.tree.JumpToTop()
	case key.Matches(msg, m.keys.Bottom):
		m.tree.JumpToBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.tree.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.tree.PageUp()
	case key.Matches(msg, m.keys.Toggle):
		m.tree.ToggleSelection()
		m.updateDetailContent()
	case key.Matches(msg, m.keys.ClearChecks):
		m.checklist.ClearSelection()
		m.updateDetailContent()
		m.setStatus("Selection cleared")
	case key.Matches(msg, m.keys.Expand):
		m.tree.ToggleExpand()
	case key.Matches(msg, m.keys.ExpandAll):
		m.tree.ExpandAll()
	case key.Matches(msg, m.keys.CollapseAll):
		m.tree.CollapseAll()
	case key.Matches(msg, m.keys.Add):
		return m, m.addPlace()
	case key.Matches(msg, m.keys.Rename):
		return m, m.renamePlace()
	case key.Matches(msg, m.keys.Copy):
		return m, m.writer.CopySelection(m.checklist.ExportRows())
	case key.Matches(msg, m.keys.Export):
		return m, m.writer.ExportMarkdown(m.checklist.ExportRows(), ReportTitle, m.reportPath())
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
		m.layout()
	}
	return m, nil
}

// addPlace inserts an empty child under the cursor row and opens the editor
// on it.
func (m *Model) addPlace() tea.Cmd {
	node := m.tree.SelectedNode()
	if node == nil {
		return nil
	}
	child, err := m.checklist.AddNewPlace(node)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	m.tree.Refresh()
	m.updateDetailContent()
	if child == nil {
		return nil
	}
	m.tree.SelectRow(child)
	m.editor = NewPlaceEditor(child, true, m.theme)
	return m.editor.Init()
}

func (m *Model) renamePlace() tea.Cmd {
	node := m.tree.SelectedNode()
	if node == nil {
		return nil
	}
	m.editor = NewPlaceEditor(node, false, m.theme)
	return m.editor.Init()
}

// closeEditor applies a saved edit and drops the editor. A cancelled new
// place keeps its empty row.
func (m *Model) closeEditor() {
	e := m.editor
	m.editor = nil
	if e.Result() != EditorSaved {
		return
	}
	if err := m.checklist.SaveNode(e.Target(), e.Value()); err != nil {
		m.setError(err.Error())
		return
	}
	m.tree.Refresh()
	m.tree.SelectRow(e.Target())
	m.updateDetailContent()
}

func (m *Model) applyConfig(cfg config.Config) {
	m.cfg = cfg
	m.theme = ThemeForMode(m.renderer, cfg.Theme, m.detectedDark)
	m.tree.SetTheme(m.theme)
	m.checklist.SetOptions(ChecklistOptionsFromConfig(cfg))
	m.showDetails = cfg.ShowDetails
	m.md.SetWidthWithTheme(m.detail.Width, m.theme)
	m.layout()
}

// helpContext picks the quick reference for the current screen.
func (m *Model) helpContext() Context {
	switch {
	case m.showDetails && m.isSplitView():
		return ContextSplit
	case m.showDetails:
		return ContextDetails
	default:
		return ContextTree
	}
}

func (m *Model) isSplitView() bool {
	return m.width > SplitViewThreshold
}

// layout distributes the terminal between tree, details, status and help.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	bodyHeight := m.height - 1 - lipgloss.Height(m.help.View(m.keys))
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.help.Width = m.width

	treeWidth := m.width
	detailWidth := m.width
	if m.showDetails && m.isSplitView() {
		treeWidth = m.width * 45 / 100
		detailWidth = m.width - treeWidth - 2 // border
	}
	m.tree.SetSize(treeWidth, bodyHeight)

	m.detail.Width = detailWidth
	m.detail.Height = bodyHeight
	if m.showDetails && m.isSplitView() {
		m.detail.Height = bodyHeight - 2
	}
	m.md.SetWidth(detailWidth)
	m.updateDetailContent()
}

func (m *Model) updateDetailContent() {
	report := export.GenerateMarkdown(m.checklist.ExportRows(), ReportTitle, time.Now())
	rendered, err := m.md.Render(report)
	if err != nil {
		rendered = report
	}
	m.detail.SetContent(rendered)
}

func (m *Model) reportPath() string {
	if m.stateDir == "" {
		return reportFileName
	}
	return filepath.Join(m.stateDir, reportFileName)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusIsError = true
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	bodyHeight := m.height - 1 - lipgloss.Height(m.help.View(m.keys))
	var body string
	switch {
	case m.editor != nil:
		body = m.editor.View(m.width, bodyHeight)
	case m.showHelp:
		body = RenderContextHelp(m.helpContext(), m.theme, m.width, bodyHeight)
	case m.showDetails && m.isSplitView():
		treeView := m.renderer.NewStyle().
			Width(m.tree.width).
			Height(bodyHeight).
			Render(m.tree.View())
		detailView := m.theme.Border.
			Width(m.detail.Width).
			Height(bodyHeight - 2).
			Render(m.detail.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, treeView, detailView)
	case m.showDetails:
		body = m.detail.View()
	default:
		body = m.renderer.NewStyle().Height(bodyHeight).Render(m.tree.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter(), m.help.View(m.keys))
}

func (m Model) renderFooter() string {
	r := m.renderer
	count := r.NewStyle().
		Foreground(m.theme.Primary).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("%d/%d selected", m.checklist.SelectedCount(), m.checklist.Len()))

	msgColor := m.theme.Muted
	if m.statusIsError {
		msgColor = m.theme.Error
	}
	status := r.NewStyle().Foreground(msgColor).Render(m.status)

	return lipgloss.JoinHorizontal(lipgloss.Top, count, status)
}
