// Package tui implements the Bubble Tea review browser.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gersh-io/gersh/internal/gerrit"
)

// Model is the top-level Bubble Tea model for the review browser.
type Model struct {
	reviews []*gerrit.Review

	// UI state
	width  int
	height int

	// Review list
	index int // currently selected review

	// Detail viewport
	scrollOffset int

	// Rendered detail lines for the selected review
	lines []string

	// Help
	showHelp bool
}

// New creates a browser model over the given reviews.
func New(reviews []*gerrit.Review) Model {
	m := Model{reviews: reviews}
	m.updateLines()
	return m
}

// Run opens the browser and blocks until the user quits.
func Run(reviews []*gerrit.Review) error {
	p := tea.NewProgram(New(reviews), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) updateLines() {
	if len(m.reviews) == 0 {
		m.lines = nil
		return
	}
	m.lines = renderDetail(m.reviews[m.index])
	m.scrollOffset = 0
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if m.index < len(m.reviews)-1 {
				m.index++
				m.updateLines()
			}

		case key.Matches(msg, keys.Up):
			if m.index > 0 {
				m.index--
				m.updateLines()
			}

		case key.Matches(msg, keys.Top):
			m.index = 0
			m.updateLines()

		case key.Matches(msg, keys.Bottom):
			m.index = len(m.reviews) - 1
			m.updateLines()

		case key.Matches(msg, keys.Scroll):
			if m.scrollOffset < len(m.lines)-1 {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	listWidth := m.listWidth()
	detailWidth := m.width - listWidth - 1

	list := m.renderList(listWidth, m.height-2)
	detail := m.renderDetailView(detailWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) listWidth() int {
	w := m.width / 3
	if w < 30 {
		w = 30
	}
	if w > 60 {
		w = 60
	}
	return w
}

func (m Model) renderList(width, height int) string {
	inner := width - 4 // border + padding
	var b strings.Builder

	visible := height - 2
	start := 0
	if m.index >= visible {
		start = m.index - visible + 1
	}

	for i := start; i < len(m.reviews) && i-start < visible; i++ {
		r := m.reviews[i]
		label := truncate(fmt.Sprintf("%d %s", r.Number, r.Subject), inner)

		style := listItemStyle
		if i == m.index {
			style = listItemSelectedStyle
		}
		b.WriteString(style.Width(inner).Render(label))
		b.WriteString("\n")
	}

	return listStyle.Width(width - 2).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderDetailView(width, height int) string {
	var b strings.Builder

	end := m.scrollOffset + height - 2
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for _, line := range m.lines[m.scrollOffset:end] {
		b.WriteString(truncate(line, width-4))
		b.WriteString("\n")
	}

	return detailStyle.Width(width - 2).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

// renderDetail builds the styled detail lines for one review.
func renderDetail(r *gerrit.Review) []string {
	var lines []string

	lines = append(lines, detailHeaderStyle.Render(fmt.Sprintf("%s #%d", r.Project, r.Number)))
	lines = append(lines, "")
	lines = append(lines, detailLabelStyle.Render("Subject  ")+r.Subject)
	lines = append(lines, detailLabelStyle.Render("Branch   ")+r.Branch)
	lines = append(lines, detailLabelStyle.Render("Author   ")+r.Author())
	lines = append(lines, detailLabelStyle.Render("Status   ")+statusStyle(r.Status).Render(r.Status))
	if r.URL != "" {
		lines = append(lines, detailLabelStyle.Render("URL      ")+r.URL)
	}
	lines = append(lines, detailLabelStyle.Render("Updated  ")+r.LastUpdated.Format("2006-01-02 15:04"))

	if len(r.Patchsets()) > 0 {
		lines = append(lines, "")
		lines = append(lines, detailHeaderStyle.Render("Patchsets"))

		nums := make([]int, 0, len(r.Patchsets()))
		for n := range r.Patchsets() {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		for _, n := range nums {
			ps := r.Patchsets()[n]
			lines = append(lines, patchsetStyle.Render(
				fmt.Sprintf("  %d  %.12s  %s", ps.Number, ps.Revision, ps.Author())))
		}
	}

	if r.CommitMessage != "" {
		lines = append(lines, "")
		lines = append(lines, detailHeaderStyle.Render("Commit message"))
		for _, l := range strings.Split(strings.TrimRight(r.CommitMessage, "\n"), "\n") {
			lines = append(lines, commitMessageStyle.Render("  "+l))
		}
	}

	return lines
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "MERGED":
		return statusMergedStyle
	case "ABANDONED":
		return statusAbandonedStyle
	default:
		return statusOpenStyle
	}
}

func (m Model) renderStatusBar() string {
	left := statusBarStyle.Render(fmt.Sprintf(" %d/%d reviews ", m.index+1, len(m.reviews)))
	help := helpBarStyle.Render(" " +
		helpKeyStyle.Render("j/k") + " move  " +
		helpKeyStyle.Render("space") + " scroll  " +
		helpKeyStyle.Render("?") + " help  " +
		helpKeyStyle.Render("q") + " quit")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, help)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(detailHeaderStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range [][2]string{
		{"↑/k, ↓/j", "select review"},
		{"g / G", "first / last review"},
		{"space", "scroll detail pane"},
		{"?", "toggle this help"},
		{"q", "quit"},
	} {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Render(fmt.Sprintf("%-10s", row[0])),
			row[1]))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
