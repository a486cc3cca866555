package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"samplehost/internal/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// model is the bubbletea state of one selection cycle. Selected paths keep
// the order in which they were picked.
type model struct {
	title     string
	directory string
	filters   []domain.FileFilter
	filterIdx int
	files     []string
	visible   []string
	cursor    int
	selected  []string
	outcome   domain.SelectionOutcome
	err       error
}

func newModel(opts domain.SelectionOptions, files []string, err error) model {
	filters := opts.Filters
	if len(filters) == 0 {
		filters = domain.DefaultAudioFilters()
	}
	m := model{
		title:     opts.Title,
		directory: opts.Directory,
		filters:   filters,
		files:     files,
		err:       err,
	}
	m.visible = applyFilter(m.filters[0], files)
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c":
		m.outcome = domain.SelectionClosed
		return m, tea.Quit
	case "esc", "q":
		m.outcome = domain.SelectionCancelled
		return m, tea.Quit
	case "enter":
		if len(m.selected) == 0 && len(m.visible) > 0 {
			m.selected = []string{m.visible[m.cursor]}
		}
		m.outcome = domain.SelectionConfirmed
		return m, tea.Quit
	case " ":
		if len(m.visible) > 0 {
			m.toggle(m.visible[m.cursor])
		}
	case "a":
		for _, path := range m.visible {
			if !m.isSelected(path) {
				m.selected = append(m.selected, path)
			}
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "tab":
		m.filterIdx = (m.filterIdx + 1) % len(m.filters)
		m.visible = applyFilter(m.filters[m.filterIdx], m.files)
		m.cursor = 0
	}
	return m, nil
}

// Selection returns the picked paths for a confirmed cycle.
func (m model) Selection() []string {
	if m.outcome != domain.SelectionConfirmed {
		return nil
	}
	return append([]string(nil), m.selected...)
}

func (m *model) toggle(path string) {
	for i, existing := range m.selected {
		if existing == path {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			return
		}
	}
	m.selected = append(m.selected, path)
}

func (m model) isSelected(path string) bool {
	for _, existing := range m.selected {
		if existing == path {
			return true
		}
	}
	return false
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	filter := m.filters[m.filterIdx]
	b.WriteString(filterStyle.Render(fmt.Sprintf("%s  %s (%s)", m.directory, filter.Name, strings.Join(filter.Patterns, " "))))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("no matching files"))
		b.WriteString("\n")
	}
	for i, path := range m.visible {
		mark := "[ ]"
		line := filepath.Base(path)
		if m.isSelected(path) {
			mark = "[x]"
			line = selectedStyle.Render(line)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + mark + " " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d selected  space toggle  a all  tab filter  enter add  esc cancel", len(m.selected))))
	return lipgloss.JoinVertical(lipgloss.Left, b.String())
}
