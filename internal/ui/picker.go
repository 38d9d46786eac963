package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/branchpick/branchpick/internal/models"
)

// DefaultMaxHeight caps the rendered list box at 20 terminal rows
const DefaultMaxHeight = 20

type Model struct {
	branches  []models.Branch
	keys      KeyMap
	cursor    int // -1 only while the listing is empty
	offset    int
	pageSize  int
	width     int
	height    int
	maxHeight int
	quitting  bool
	confirmed string
}

func NewModel(branches []models.Branch, maxHeight int) Model {
	if maxHeight < 3 {
		maxHeight = 3
	}

	m := Model{
		branches:  branches,
		keys:      DefaultKeyMap,
		cursor:    -1,
		width:     80,
		maxHeight: maxHeight,
	}

	if len(branches) > 0 {
		m.cursor = 0
		for i, branch := range branches {
			if branch.IsCurrent {
				m.cursor = i
				break
			}
		}
	}

	m.pageSize = m.viewportHeight() - 2
	if m.pageSize < 1 {
		m.pageSize = 1
	}
	m.ensureVisible()

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Confirm):
			if m.cursor >= 0 && m.cursor < len(m.branches) {
				m.confirmed = m.branches[m.cursor].Name
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, m.keys.PageDown):
			m.jumpCursor(m.pageSize)

		case key.Matches(msg, m.keys.PageUp):
			m.jumpCursor(-m.pageSize)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pageSize = m.viewportHeight() - 2
		if m.pageSize < 1 {
			m.pageSize = 1
		}
		m.ensureVisible()
	}

	return m, nil
}

// moveCursor steps the cursor by delta, wrapping cyclically at both ends
func (m *Model) moveCursor(delta int) {
	if len(m.branches) == 0 {
		return
	}

	if m.cursor < 0 {
		m.cursor = 0
	} else {
		n := len(m.branches)
		m.cursor = ((m.cursor+delta)%n + n) % n
	}
	m.ensureVisible()
}

// jumpCursor moves the cursor by delta, clamping at the list edges
func (m *Model) jumpCursor(delta int) {
	if len(m.branches) == 0 {
		return
	}

	if m.cursor < 0 {
		m.cursor = 0
	} else {
		cursor := m.cursor + delta
		if cursor > len(m.branches)-1 {
			cursor = len(m.branches) - 1
		}
		if cursor < 0 {
			cursor = 0
		}
		m.cursor = cursor
	}
	m.ensureVisible()
}

// ensureVisible scrolls the window so the cursor stays inside it
func (m *Model) ensureVisible() {
	visible := m.viewportHeight() - 2
	if visible < 1 {
		visible = 1
	}

	if m.cursor < 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset > len(m.branches)-visible {
		m.offset = len(m.branches) - visible
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// viewportHeight is the rendered height of the list box including its
// borders: tall enough for every branch, capped by the configured
// maximum and by the terminal
func (m Model) viewportHeight() int {
	if len(m.branches) == 0 {
		return 3
	}

	height := len(m.branches) + 2
	if height > m.maxHeight {
		height = m.maxHeight
	}
	// Leave room for the header and help lines on short terminals
	if m.height > 0 && height > m.height-2 {
		height = m.height - 2
	}
	if height < 3 {
		height = 3
	}
	return height
}

// Confirmed returns the branch name accepted with enter, or the empty
// string when the picker was dismissed without a selection
func (m Model) Confirmed() string {
	return m.confirmed
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.branches) == 0 {
		return m.renderNotice()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderList(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("cyan")).
		Bold(true)

	return headerStyle.Render(fmt.Sprintf("Branches (%d)", len(m.branches)))
}

func (m Model) renderList() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1).
		Width(m.width - 2)

	visible := m.viewportHeight() - 2
	if visible < 1 {
		visible = 1
	}

	start := m.offset
	end := start + visible
	if end > len(m.branches) {
		end = len(m.branches)
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(m.branches[i], i == m.cursor))
	}

	return boxStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderRow(branch models.Branch, selected bool) string {
	// Branches with no upstream, or whose upstream is gone, fade out;
	// tracked branches get a bold name
	faded := !branch.HasUpstream || strings.Contains(branch.Tracking, "gone")

	base := lipgloss.NewStyle().Faint(faded)
	nameStyle := base.Bold(!faded)
	currentStyle := base.Foreground(lipgloss.Color("green"))
	prStyle := base.Foreground(lipgloss.Color("magenta"))
	dateStyle := base.Foreground(lipgloss.Color("yellow"))
	trackingStyle := base.Foreground(lipgloss.Color("cyan"))
	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("green")).
		Bold(true)

	prefix := "  "
	if branch.IsCurrent {
		prefix = currentStyle.Render("* ")
	}

	line := prefix + nameStyle.Render(branch.Name)
	if branch.PRNumber > 0 {
		line += prStyle.Render(fmt.Sprintf(" #%d", branch.PRNumber))
	}
	line += " " + dateStyle.Render("("+branch.LastCommit+")")
	if branch.Tracking != "" {
		line += " " + trackingStyle.Render(branch.Tracking)
	}

	if selected {
		line = cursorStyle.Render("▸ ") + line
	} else {
		line = "  " + line
	}

	maxWidth := m.width - 4 // borders plus padding
	if maxWidth > 0 {
		line = lipgloss.NewStyle().MaxWidth(maxWidth).Render(line)
	}

	return line
}

func (m Model) renderFooter() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	bindings := []key.Binding{m.keys.Down, m.keys.Up, m.keys.Confirm, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+": "+help.Desc)
	}

	return helpStyle.Render(strings.Join(parts, " • "))
}

func (m Model) renderNotice() string {
	noticeStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("red")).
		Padding(0, 1)

	return noticeStyle.Render("No git branches found in this directory.")
}
