package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Context identifies which screen the user is on when asking for help.
type Context int

const (
	ContextTree Context = iota
	ContextDetails
	ContextSplit
)

// ContextHelpContent contains compact help content for each context.
// Content should fit on one screen (~20 lines) without scrolling.
var ContextHelpContent = map[Context]string{
	ContextTree:    contextHelpTree,
	ContextDetails: contextHelpDetails,
	ContextSplit:   contextHelpSplit,
}

// GetContextHelp returns the help content for a given context.
// Falls back to generic help if the context has no specific content.
func GetContextHelp(ctx Context) string {
	if content, ok := ContextHelpContent[ctx]; ok {
		return content
	}
	return contextHelpGeneric
}

// RenderContextHelp renders the context-specific help modal, centered in
// width × height.
func RenderContextHelp(ctx Context, theme Theme, width, height int) string {
	content := GetContextHelp(ctx)

	r := theme.Renderer

	// Modal dimensions - compact
	modalWidth := 52
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Muted).Render(strings.Repeat("─", modalWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(theme.Base.Render(content))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("? or Esc to close"))

	modal := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

const contextHelpTree = `Places

  j/k       Move up/down
  l/→       Expand, then step into
  h/←       Collapse, then jump to parent
  g/G       Jump to top/bottom
  Ctrl+D/U  Half page down/up
  E/C       Expand/collapse all

Checklist

  Space     Check row and everything under it
  X         Uncheck everything
  [-]       Some places below are checked

Editing

  a         Add a place under the row
  e         Rename the row

Selection

  y         Copy checked places
  w         Write the markdown report
  Tab       Show the report`

const contextHelpDetails = `Selection report

  j/k       Scroll
  Ctrl+D/U  Half page down/up
  Tab/Esc   Back to the tree
  q         Back to the tree
  Ctrl+C    Quit`

const contextHelpSplit = `Tree and report

The report on the right follows every
check you make in the tree.

  Tab       Hide the report
  Space     Check row and everything under it
  y         Copy checked places
  w         Write the markdown report`

const contextHelpGeneric = `Quick Reference

  ?         This help
  Esc       Close/back
  q         Quit`
