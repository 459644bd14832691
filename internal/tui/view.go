package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/paneweave/paneweave/internal/layout"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Align(lipgloss.Center, lipgloss.Center)
	activePaneStyle = paneStyle.
			BorderForeground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func (m *Model) View() string {
	l := m.layout()
	if l == nil || m.width <= 0 || m.height <= 0 {
		return ""
	}

	helpView := m.help.View(m.keys)
	footer := helpView
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "\n" + helpView
	}
	footerHeight := lipgloss.Height(footer)

	canvasHeight := m.height - footerHeight
	if canvasHeight < 3 {
		return footer
	}
	canvas := m.renderNode(l, l.Root, m.width, canvasHeight)
	return canvas + "\n" + footer
}

func (m *Model) renderNode(l *layout.Layout, node *layout.Node, width, height int) string {
	if node.IsLeaf() {
		return m.renderPane(l, node, width, height)
	}

	parts := make([]string, 0, len(node.Children))
	if node.Direction == layout.DirectionHorizontal {
		widths := cellExtents(node.Children, width)
		for i, child := range node.Children {
			parts = append(parts, m.renderNode(l, child, widths[i], height))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	heights := cellExtents(node.Children, height)
	for i, child := range node.Children {
		parts = append(parts, m.renderNode(l, child, width, heights[i]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderPane(l *layout.Layout, node *layout.Node, width, height int) string {
	style := paneStyle
	if node.ID == l.ActivePaneID {
		style = activePaneStyle
	}

	label := shortID(node.ID)
	if node.SessionID != "" {
		label += "\n" + shortID(node.SessionID)
	}
	label += fmt.Sprintf("\n%.0f%%", node.Size)

	innerW, innerH := width-2, height-2
	if innerW < 1 || innerH < 1 {
		return strings.TrimRight(strings.Repeat(strings.Repeat(" ", max(width, 0))+"\n", max(height, 0)), "\n")
	}
	return style.Width(innerW).Height(innerH).Render(label)
}

func cellExtents(children []*layout.Node, total int) []int {
	sizes := make([]int, len(children))
	used := 0
	for i, child := range children {
		if i == len(children)-1 {
			sizes[i] = total - used
			break
		}
		sizes[i] = int(float64(total) * child.Size / layout.FullSize)
		used += sizes[i]
	}
	return sizes
}

func shortID(id string) string {
	const keep = 13 // "pane-" plus the first uuid group
	if len(id) <= keep {
		return id
	}
	return id[:keep]
}

func (m *Model) canvasHeight() int {
	footer := lipgloss.Height(m.help.View(m.keys))
	if m.status != "" {
		footer++
	}
	return m.height - footer
}
