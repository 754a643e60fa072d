package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputOptions allows customization of the input behavior
type InputOptions struct {
	Prompt      string
	Default     string
	Placeholder string
	CharLimit   int
	Width       int
	Required    bool
	// Secret hides the typed characters.
	Secret bool
	// Validate returns a message describing why the value is rejected, or
	// "" to accept it.
	Validate func(string) string
}

// DefaultInputOptions returns the default options
func DefaultInputOptions() InputOptions {
	return InputOptions{
		Prompt:    "Enter value:",
		CharLimit: 156,
		Width:     40,
	}
}

// Input takes a prompt and optional options, returns the validated user input
func Input(opts ...InputOptions) (string, error) {
	options := DefaultInputOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	m, err := run(newInputModel(options))
	if err != nil {
		return "", err
	}

	final := m.(inputModel)
	if final.quitted {
		return "", ErrCancelled
	}
	return final.textInput.Value(), nil
}

type inputModel struct {
	textInput textinput.Model
	options   InputOptions
	quitted   bool
}

func newInputModel(options InputOptions) inputModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = options.CharLimit
	ti.Width = options.Width
	ti.Prompt = ""
	ti.TextStyle = inputStyle
	ti.PlaceholderStyle = placeholderStyle
	ti.Placeholder = options.Placeholder
	if options.Default != "" {
		ti.SetValue(options.Default)
	}
	if options.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	return inputModel{textInput: ti, options: options}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// problem returns why the current value cannot be accepted.
func (m inputModel) problem() string {
	value := m.textInput.Value()
	if strings.TrimSpace(value) == "" {
		if m.options.Required {
			return "Input is required"
		}
		return ""
	}
	if m.options.Validate != nil {
		return m.options.Validate(value)
	}
	return ""
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if m.problem() == "" {
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	var builder strings.Builder

	builder.WriteString(promptStyle.Render(m.options.Prompt))
	builder.WriteString("\n\n")
	builder.WriteString(m.textInput.View())
	builder.WriteString("\n\n")

	if problem := m.problem(); problem != "" && m.textInput.Value() != "" {
		builder.WriteString(errorStyle.Render(problem))
		builder.WriteString("\n")
	}

	builder.WriteString(hintStyle.Render("(enter to accept, esc to cancel)"))
	builder.WriteString("\n")

	return builder.String()
}
