package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	constants "github.com/ImGajeed76/pydocstring/internal"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.PrimaryColor)).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.SuccessColor))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.ErrorColor)).
			Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.TertiaryColor)).
			Italic(true)
)

// SaveFunc persists the edited text.
type SaveFunc func(text string) error

// Model is a bubbletea text editor that writes docstrings when a triple
// quote is typed below a def, and on ctrl+d.
type Model struct {
	textarea textarea.Model
	opts     pydocstring.Options
	title    string
	save     SaveFunc
	status   string
	err      error
	dirty    bool
	quitting bool
}

// NewModel returns an editor holding text. save may be nil.
func NewModel(title, text string, opts pydocstring.Options, save SaveFunc) Model {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.SetWidth(100)
	ta.SetHeight(24)
	ta.SetValue(text)
	ta.Focus()

	if opts.IndentUnit == "" {
		opts.IndentUnit = pydocstring.DefaultIndent
	}

	m := Model{textarea: ta, opts: opts, title: title, save: save}
	m.state().SetCursor(Position{})
	return m
}

// Value returns the current text.
func (m Model) Value() string {
	return m.textarea.Value()
}

// Dirty reports whether there are unsaved changes.
func (m Model) Dirty() bool {
	return m.dirty
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textarea.SetWidth(msg.Width)
		m.textarea.SetHeight(max(1, msg.Height-4))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+d":
			m.writeDocstring()
			return m, nil
		case "ctrl+s":
			m.saveText()
			return m, nil
		}

		var cmd tea.Cmd
		before := m.textarea.Value()
		m.textarea, cmd = m.textarea.Update(msg)
		if m.textarea.Value() != before {
			m.dirty = true
			m.status = ""
		}
		if msg.Type == tea.KeyRunes && (msg.String() == `"` || msg.String() == "'") && Triggered(m.state()) {
			m.writeDocstring()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) writeDocstring() {
	ok, err := WriteDocstringAtCursor(m.state(), m.opts)
	switch {
	case err != nil:
		m.err = err
	case ok:
		m.err = nil
		m.dirty = true
		m.status = "docstring written"
	default:
		m.status = "no function here"
	}
}

func (m *Model) saveText() {
	if m.save == nil {
		return
	}
	if err := m.save(m.textarea.Value()); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.dirty = false
	m.status = "saved"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := m.title
	if m.dirty {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf(`(%s style; type """ below a def or ctrl+d for a docstring, ctrl+s to save, esc to quit)`, m.opts.Style)))
	return b.String()
}

func (m *Model) state() *textareaState {
	return &textareaState{ta: &m.textarea, indent: m.opts.IndentUnit}
}

// textareaState adapts a textarea to State. The textarea counts columns in
// runes, State counts bytes.
type textareaState struct {
	ta     *textarea.Model
	indent string
}

func (s *textareaState) Lines() []string {
	return strings.Split(s.ta.Value(), "\n")
}

func (s *textareaState) Cursor() Position {
	line := s.ta.Line()
	lines := s.Lines()
	info := s.ta.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	return Position{Line: line, Column: byteColumn(lines[line], col)}
}

func (s *textareaState) IndentUnit() string {
	return s.indent
}

func (s *textareaState) ReplaceRange(from, to Position, text string) error {
	buf := NewTextBuffer(s.ta.Value(), s.indent)
	if err := buf.ReplaceRange(from, to, text); err != nil {
		return err
	}
	s.ta.SetValue(buf.String())
	return nil
}

// SetCursor walks the textarea cursor row by row since it has no row setter.
func (s *textareaState) SetCursor(p Position) {
	lines := s.Lines()
	p.Line = max(0, min(p.Line, len(lines)-1))

	for steps := 0; s.ta.Line() > p.Line && steps < len(s.ta.Value())+len(lines); steps++ {
		s.ta.CursorUp()
	}
	for steps := 0; s.ta.Line() < p.Line && steps < len(s.ta.Value())+len(lines); steps++ {
		s.ta.CursorDown()
	}
	s.ta.SetCursor(utf8.RuneCountInString(lines[p.Line][:min(p.Column, len(lines[p.Line]))]))
}

func byteColumn(line string, runes int) int {
	col := 0
	for i := 0; i < runes && col < len(line); i++ {
		_, size := utf8.DecodeRuneInString(line[col:])
		col += size
	}
	return col
}
