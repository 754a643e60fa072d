package console

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ListSelectOptions allows customization of the list select behavior
type ListSelectOptions struct {
	Title string
	// Descriptions are shown dimmed next to the item with the same index.
	Descriptions []string
	// Default is the index selected when the prompt opens.
	Default int
}

// DefaultListSelectOptions returns the default options
func DefaultListSelectOptions() ListSelectOptions {
	return ListSelectOptions{
		Title: "Select an option:",
	}
}

// ListSelect takes a slice of strings and returns the selected index
func ListSelect(items []string, opts ...ListSelectOptions) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items provided")
	}

	options := DefaultListSelectOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	m, err := run(newListModel(items, options))
	if err != nil {
		return -1, err
	}

	final := m.(listModel)
	if final.quitted {
		return -1, ErrCancelled
	}
	return final.selected(), nil
}

type listModel struct {
	items    []string
	options  ListSelectOptions
	cursor   int
	offset   int
	maxItems int
	quitted  bool
}

func newListModel(items []string, options ListSelectOptions) listModel {
	m := listModel{items: items, options: options, maxItems: len(items)}
	if options.Default > 0 && options.Default < len(items) {
		m.cursor = options.Default
	}
	return m
}

func (m listModel) selected() int {
	return m.cursor + m.offset
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.maxItems = max(1, msg.Height-4)
		if m.cursor >= m.maxItems {
			m.offset = m.cursor - m.maxItems + 1
			m.cursor = m.maxItems - 1
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitted = true
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.selected() >= len(m.items)-1 {
				break
			}
			if m.cursor < m.maxItems-1 {
				m.cursor++
			} else {
				m.offset++
			}
		}
	}

	return m, nil
}

func (m listModel) View() string {
	var builder strings.Builder

	builder.WriteString(promptStyle.Render(m.options.Title))
	builder.WriteString("\n\n")

	end := min(len(m.items), m.offset+m.maxItems)
	for i := m.offset; i < end; i++ {
		line := "  " + m.items[i]
		style := itemStyle
		if i == m.selected() {
			line = "▸ " + m.items[i]
			style = selectedItemStyle
		}
		builder.WriteString(style.Render(line))
		if i < len(m.options.Descriptions) && m.options.Descriptions[i] != "" {
			builder.WriteString("  ")
			builder.WriteString(descriptionStyle.Render(m.options.Descriptions[i]))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(hintStyle.Render("↑/↓ to move • enter to select • esc to cancel"))

	return builder.String()
}
