// Package ui renders build progress in the terminal.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"rcc/internal/buildpipeline"
)

// progressModel tracks one row per file plus an overall bar.
type progressModel struct {
	title  string
	events <-chan buildpipeline.Event

	spin spinner.Model
	bar  progress.Model

	items  []fileItem
	byPath map[string]*fileItem

	width  int
	failed int
	done   bool
}

type fileItem struct {
	path    string
	stage   buildpipeline.Stage
	status  buildpipeline.Status
	elapsed time.Duration
}

type (
	eventMsg buildpipeline.Event
	doneMsg  struct{}
)

const defaultWidth = 80

// NewProgressModel returns a Bubble Tea model that follows events until the
// channel is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	m := &progressModel{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultWidth-4)),
		items:  make([]fileItem, len(files)),
		byPath: make(map[string]*fileItem, len(files)),
		width:  defaultWidth,
	}
	for i, path := range files {
		m.items[i] = fileItem{path: path, status: buildpipeline.StatusQueued}
		m.byPath[path] = &m.items[i]
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next waits for the following event; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.apply(buildpipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

// apply records ev against its file. An errored file keeps its error row
// even if later events for it arrive.
func (m *progressModel) apply(ev buildpipeline.Event) tea.Cmd {
	item := m.byPath[ev.File]
	if item == nil || item.status == buildpipeline.StatusError {
		return nil
	}
	item.stage, item.status = ev.Stage, ev.Status
	item.elapsed += ev.Elapsed
	if ev.Status == buildpipeline.StatusError {
		m.failed++
	}
	return m.bar.SetPercent(m.percent())
}

// percent averages per-file completion, where a file in stage i of n counts
// i/n, or (i+1)/n once that stage is done.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 1
	}
	var sum float64
	for i := range m.items {
		sum += m.items[i].fraction()
	}
	return sum / float64(len(m.items))
}

func (it *fileItem) fraction() float64 {
	switch it.status {
	case buildpipeline.StatusQueued:
		return 0
	case buildpipeline.StatusCached, buildpipeline.StatusError:
		return 1
	}
	n := len(buildpipeline.Stages)
	for i, stage := range buildpipeline.Stages {
		if stage == it.stage {
			if it.status == buildpipeline.StatusDone {
				i++
			}
			return float64(i) / float64(n)
		}
	}
	return 0
}
