package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	padding  = 2
	maxWidth = 80
)

type ProgressOptions struct {
	GradientColors []string
	Width          int
	Padding        int
}

func DefaultProgressOptions() ProgressOptions {
	return ProgressOptions{
		GradientColors: []string{"#5956e0", "#e86ef6"},
		Width:          maxWidth,
		Padding:        padding,
	}
}

// ProgressBar shows how many of a known number of steps are done. It runs
// its own bubbletea program until Finish or Close.
type ProgressBar struct {
	updateCh  chan progressMsg
	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	err       error
}

type progressMsg struct {
	total int64
	count int64
	label string
}

type progressModel struct {
	progress progress.Model
	options  ProgressOptions
	label    string
	total    int64
	count    int64
	updateCh chan progressMsg
	closeCh  chan struct{}
}

func (m *progressModel) next() tea.Msg {
	select {
	case msg := <-m.updateCh:
		return msg
	case <-m.closeCh:
		return tea.Quit()
	}
}

func (m *progressModel) Init() tea.Cmd {
	return m.next
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-m.options.Padding*2-4, m.options.Width)
		return m, nil

	case progressMsg:
		m.total, m.count, m.label = msg.total, msg.count, msg.label
		percent := 0.0
		if msg.total > 0 {
			percent = float64(msg.count) / float64(msg.total)
		}
		return m, tea.Batch(m.progress.SetPercent(percent), m.next)

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd

	default:
		return m, nil
	}
}

func (m *progressModel) View() string {
	pad := strings.Repeat(" ", m.options.Padding)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(pad + m.progress.View() + "\n")
	if m.total > 0 {
		b.WriteString(pad + hintStyle.Render(fmt.Sprintf("%d/%d %s", m.count, m.total, m.label)) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// NewProgressBar starts a progress bar on the terminal.
func NewProgressBar(opts ...ProgressOptions) *ProgressBar {
	options := DefaultProgressOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	bar := &ProgressBar{
		updateCh: make(chan progressMsg),
		closeCh:  make(chan struct{}),
	}

	m := &progressModel{
		progress: progress.New(
			progress.WithGradient(options.GradientColors[0], options.GradientColors[1]),
			progress.WithWidth(options.Width),
		),
		options:  options,
		updateCh: bar.updateCh,
		closeCh:  bar.closeCh,
	}

	bar.wg.Add(1)
	go func() {
		defer bar.wg.Done()
		if _, err := tea.NewProgram(m).Run(); err != nil {
			bar.err = fmt.Errorf("progress bar: %w", err)
			bar.closeOnce.Do(func() { close(bar.closeCh) })
		}
	}()

	return bar
}

// Update reports count of total steps done; label names the current step.
func (b *ProgressBar) Update(total, count int64, label string) {
	select {
	case <-b.closeCh:
	case b.updateCh <- progressMsg{total: total, count: count, label: label}:
	}
}

// Finish shows the bar full and stops it.
func (b *ProgressBar) Finish() error {
	b.Update(1, 1, "done")
	return b.Close()
}

// Close stops the bar and returns the error that ended it early, if any.
func (b *ProgressBar) Close() error {
	b.closeOnce.Do(func() { close(b.closeCh) })
	b.wg.Wait()
	return b.err
}
