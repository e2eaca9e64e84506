package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"rcc/internal/buildpipeline"
)

// Run shows the progress view on out until events is closed.
func Run(title string, files []string, events <-chan buildpipeline.Event, out io.Writer) error {
	model := NewProgressModel(title, files, events)
	_, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	return err
}
