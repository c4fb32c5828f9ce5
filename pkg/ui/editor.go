package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// EditorResult says how an edit session ended.
type EditorResult int

const (
	EditorActive EditorResult = iota
	EditorSaved
	EditorCancelled
)

// PlaceEditor is the modal label editor shown for rename and new places.
type PlaceEditor struct {
	form   *huh.Form
	value  *string // bound to the input; heap-allocated so the form can write it
	target *FlatNode
	isNew  bool
	result EditorResult
	theme  Theme
}

// NewPlaceEditor creates an editor for target, pre-filled with its label.
func NewPlaceEditor(target *FlatNode, isNew bool, theme Theme) *PlaceEditor {
	value := target.Label
	e := &PlaceEditor{
		value:  &value,
		target: target,
		isNew:  isNew,
		theme:  theme,
	}

	title := "Rename place"
	if isNew {
		title = "New place"
	}
	input := huh.NewInput().
		Key("label").
		Title(title).
		Placeholder("Place name").
		CharLimit(80).
		Value(e.value)

	e.form = huh.NewForm(huh.NewGroup(input)).
		WithShowHelp(false).
		WithWidth(40)
	return e
}

// Init focuses the input.
func (e *PlaceEditor) Init() tea.Cmd {
	return e.form.Init()
}

// Update forwards msg to the form. Esc cancels.
func (e *PlaceEditor) Update(msg tea.Msg) tea.Cmd {
	if e.result != EditorActive {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		e.result = EditorCancelled
		return nil
	}

	m, cmd := e.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		e.form = f
	}
	switch e.form.State {
	case huh.StateCompleted:
		e.result = EditorSaved
	case huh.StateAborted:
		e.result = EditorCancelled
	}
	return cmd
}

// Result reports whether the editor is still open, saved or cancelled.
func (e *PlaceEditor) Result() EditorResult {
	return e.result
}

// Value returns the current label.
func (e *PlaceEditor) Value() string {
	return *e.value
}

// Target returns the row being edited.
func (e *PlaceEditor) Target() *FlatNode {
	return e.target
}

// IsNew reports whether the row was just created by "add place".
func (e *PlaceEditor) IsNew() bool {
	return e.isNew
}

// View renders the editor box centered in width × height.
func (e *PlaceEditor) View(width, height int) string {
	t := e.theme
	hint := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true).
		Render("enter: save | esc: cancel")

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, e.form.View(), "", hint))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
