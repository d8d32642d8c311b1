package presenter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mini-time-tracker/internal/domain"
)

// Styles used when rendering the history. Colors degrade to plain text when
// the output is not a terminal.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b4befe"))
	DayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")).MarginTop(1)
	TotalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	projectStyle = lipgloss.NewStyle().Width(14)
	hoursStyle   = lipgloss.NewStyle().Width(7).Align(lipgloss.Right).MarginRight(2)
)

// FormatHours prints hours without trailing zeros: 3, 2.5, 0.25.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// History renders entries grouped by date, newest first, with a total per
// day and a grand total.
func History(entries []domain.TimeEntry) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Entry History"))
	b.WriteString("  ")
	b.WriteString(TotalStyle.Render("Grand total: " + FormatHours(domain.SumHours(entries))))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(MutedStyle.Render("No entries yet."))
		b.WriteString("\n")
		return b.String()
	}

	groups := domain.GroupByDate(entries)
	for _, date := range domain.SortedDates(groups) {
		day := groups[date]
		b.WriteString(DayStyle.Render(fmt.Sprintf("%s  total: %s", date, FormatHours(domain.SumHours(day)))))
		b.WriteString("\n")
		for _, e := range day {
			b.WriteString("  ")
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
				projectStyle.Render(e.Project),
				hoursStyle.Render(FormatHours(e.Hours)),
				e.Description,
			))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Render writes History(entries) to w.
func Render(w io.Writer, entries []domain.TimeEntry) error {
	_, err := io.WriteString(w, History(entries))
	return err
}
