package cli

import (
	"fmt"
	"strings"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

func (m trackModel) View() string {
	return m.render(m.scrollY, m.visibleRows())
}

// render draws rows [from, from+count) of the schedule. A negative cursor
// draws no selection and no key help.
func (m trackModel) render(from, count int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s ---", m.name)))
	b.WriteString("\n")
	b.WriteString(Silent(schedule.Summarize(m.entries).String()))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(Silent("no doses scheduled"))
		b.WriteString("\n")
	}

	end := from + count
	if end > len(m.entries) {
		end = len(m.entries)
	}
	today := truncateDay(m.today)
	for i := from; i < end; i++ {
		e := m.entries[i]
		marker := "  "
		if e.Date().Equal(today) {
			marker = "• "
		}
		status := e.EffectiveStatus()
		row := fmt.Sprintf("%s%s %s  %s", marker, schedule.FormatDate(e.Date()), e.Date().Weekday().String()[:3],
			padRight(string(status), 14))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString(StatusColor(status, row))
		}
		b.WriteString("\n")
	}

	if m.cursor < 0 {
		return b.String()
	}

	b.WriteString("\n")
	help := "↑/↓ move · t taken · m missed · s scheduled · w save · q quit"
	if m.dirty {
		help += " · (unsaved)"
	}
	b.WriteString(footerStyle.Render(help))
	if m.footerMsg != "" {
		b.WriteString("\n")
		b.WriteString(Warning(m.footerMsg))
	}
	b.WriteString("\n")
	return b.String()
}
