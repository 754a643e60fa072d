package console

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	constants "github.com/ImGajeed76/pydocstring/internal"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.PrimaryColor)).
			Bold(true).
			Underline(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.TertiaryColor))
)

// YesNoOptions allows customization of the yes/no input behavior
type YesNoOptions struct {
	Prompt string
	// Details are printed below the prompt, one per line.
	Details    []string
	DefaultYes bool
	YesText    string
	NoText     string
}

// DefaultYesNoOptions returns the default options
func DefaultYesNoOptions() YesNoOptions {
	return YesNoOptions{
		Prompt:     "Confirm?",
		DefaultYes: true,
		YesText:    "Yes",
		NoText:     "No",
	}
}

// YesNo displays a yes/no prompt and returns the user's choice
func YesNo(opts ...YesNoOptions) (bool, error) {
	options := DefaultYesNoOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	m, err := run(yesNoModel{options: options, yes: options.DefaultYes})
	if err != nil {
		return false, err
	}

	final := m.(yesNoModel)
	if final.quitted {
		return false, ErrCancelled
	}
	return final.yes, nil
}

type yesNoModel struct {
	options YesNoOptions
	yes     bool
	quitted bool
}

func (m yesNoModel) Init() tea.Cmd {
	return nil
}

func (m yesNoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "right", "h", "l", "tab":
			m.yes = !m.yes
		case "y":
			m.yes = true
			return m, tea.Quit
		case "n":
			m.yes = false
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.quitted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m yesNoModel) View() string {
	var builder strings.Builder

	builder.WriteString(promptStyle.Render(m.options.Prompt))
	builder.WriteString("\n\n")
	for _, detail := range m.options.Details {
		builder.WriteString(itemStyle.Render("  " + detail))
		builder.WriteString("\n")
	}
	if len(m.options.Details) > 0 {
		builder.WriteString("\n")
	}

	yesStyle, noStyle := unselectedStyle, selectedStyle
	if m.yes {
		yesStyle, noStyle = selectedStyle, unselectedStyle
	}
	builder.WriteString(yesStyle.Render(m.options.YesText))
	builder.WriteString("  ")
	builder.WriteString(noStyle.Render(m.options.NoText))
	builder.WriteString("\n\n")

	builder.WriteString(hintStyle.Render("(←/→ to move, y/n or enter to answer, esc to cancel)"))
	builder.WriteString("\n")

	return builder.String()
}
