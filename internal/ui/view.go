package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rcc/internal/buildpipeline"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyles = map[buildpipeline.Status]lipgloss.Style{
		buildpipeline.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		buildpipeline.StatusCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		buildpipeline.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		buildpipeline.StatusWorking: accentStyle,
		buildpipeline.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

const (
	labelWidth   = 10
	elapsedWidth = 9
)

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.header()))
	b.WriteString("\n\n")

	pathWidth := max(m.width-labelWidth-elapsedWidth-6, 20)
	for i := range m.items {
		it := &m.items[i]
		label := fmt.Sprintf("%*s", labelWidth, it.label())
		fmt.Fprintf(&b, "  %s %-*s %s\n",
			statusStyles[it.status].Render(label),
			pathWidth, truncate(it.path, pathWidth),
			dimStyle.Render(formatElapsed(it.elapsed)))
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *progressModel) header() string {
	if !m.done {
		return m.spin.View() + " " + m.title
	}
	h := "done: " + m.title
	if m.failed > 0 {
		h += fmt.Sprintf(" (%d failed)", m.failed)
	}
	return h
}

// label is the stage a file is in, or its status once nothing is running.
func (it *fileItem) label() string {
	switch {
	case it.status == buildpipeline.StatusDone && it.stage == buildpipeline.StageEmit:
		return "done"
	case it.status == buildpipeline.StatusWorking, it.status == buildpipeline.StatusDone:
		return string(it.stage)
	}
	return string(it.status)
}

func formatElapsed(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return fmt.Sprintf("%*s", elapsedWidth, d.Round(time.Microsecond*100))
}

// truncate shortens value to at most width display cells, marking the cut
// with "..." when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
