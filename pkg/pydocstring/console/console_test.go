package console

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestListModel(t *testing.T) {
	tests := []struct {
		name     string
		options  ListSelectOptions
		keys     []string
		height   int
		want     int
		wantQuit bool
	}{
		{name: "first item", keys: []string{"enter"}, want: 0},
		{name: "move down", keys: []string{"down", "j", "enter"}, want: 2},
		{name: "stops at the end", keys: []string{"down", "down", "down", "down", "enter"}, want: 2},
		{name: "default index", options: ListSelectOptions{Default: 1}, keys: []string{"up", "up"}, want: 0},
		{name: "scrolls past the window", height: 5, keys: []string{"down", "down"}, want: 2},
		{name: "cancel", keys: []string{"esc"}, wantQuit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newListModel([]string{"numpy", "google", "sphinx"}, tt.options)
			if tt.height > 0 {
				m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: tt.height})
			}
			for _, k := range tt.keys {
				m, _ = m.Update(key(k))
			}

			final := m.(listModel)
			assert.Equal(t, tt.wantQuit, final.quitted)
			if !tt.wantQuit {
				assert.Equal(t, tt.want, final.selected())
			}
		})
	}
}

func TestListModelView(t *testing.T) {
	m := newListModel([]string{"numpy", "google"}, ListSelectOptions{
		Title:        "Docstring style",
		Descriptions: []string{"Parameters / Returns", "Args: / Returns:"},
	})
	view := m.View()
	assert.Contains(t, view, "Docstring style")
	assert.Contains(t, view, "numpy")
	assert.Contains(t, view, "Args: / Returns:")
}

func TestYesNoModel(t *testing.T) {
	tests := []struct {
		name       string
		defaultYes bool
		keys       []string
		want       bool
		wantQuit   bool
	}{
		{name: "default yes", defaultYes: true, keys: []string{"enter"}, want: true},
		{name: "toggle", defaultYes: true, keys: []string{"l", "enter"}, want: false},
		{name: "answer key", keys: []string{"y"}, want: true},
		{name: "no key", defaultYes: true, keys: []string{"n"}, want: false},
		{name: "cancel", keys: []string{"esc"}, wantQuit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := DefaultYesNoOptions()
			options.DefaultYes = tt.defaultYes
			var m tea.Model = yesNoModel{options: options, yes: options.DefaultYes}
			for _, k := range tt.keys {
				m, _ = m.Update(key(k))
			}

			final := m.(yesNoModel)
			assert.Equal(t, tt.wantQuit, final.quitted)
			assert.Equal(t, tt.want, final.yes)
		})
	}
}

func TestInputModel(t *testing.T) {
	options := DefaultInputOptions()
	options.Required = true
	options.Validate = func(s string) string {
		if s != "numpy" {
			return "unknown style"
		}
		return ""
	}

	var m tea.Model = newInputModel(options)
	m, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd, "empty value is refused")
	assert.Equal(t, "Input is required", m.(inputModel).problem())

	for _, r := range "numpx" {
		m, _ = m.Update(key(string(r)))
	}
	assert.Contains(t, m.View(), "unknown style")

	m, _ = m.Update(key("backspace"))
	m, _ = m.Update(key("y"))
	assert.Empty(t, m.(inputModel).problem())
	assert.Equal(t, "numpy", m.(inputModel).textInput.Value())

	m, _ = m.Update(key("esc"))
	assert.True(t, m.(inputModel).quitted)
}

func TestFunctionSelectorModel(t *testing.T) {
	items := []FunctionItem{
		{Name: "load", Line: 3, Preview: "# load"},
		{Name: "Store.save", Line: 10, Documented: true, Preview: "# save"},
		{Name: "Store.close", Line: 20, Preview: "# close"},
	}

	m := NewFunctionSelectorModel("store.py", items)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotEmpty(t, m.View())

	m.Update(key("down"))
	index, ok := m.current()
	require.True(t, ok)
	assert.Equal(t, 1, index)

	for _, r := range "clo" {
		m.Update(key(string(r)))
	}
	assert.Equal(t, []int{2}, m.visible)
	assert.Contains(t, m.View(), "Search: clo")

	m.Update(key("esc"))
	assert.Len(t, m.visible, 3)

	m.Update(key("down"))
	m.Update(key("down"))
	m.Update(key("down"))
	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, selected)
}

func TestFunctionSelectorNoMatch(t *testing.T) {
	m := NewFunctionSelectorModel("x.py", []FunctionItem{{Name: "f", Line: 1, Preview: "f"}})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(key("z"))

	assert.Empty(t, m.visible)
	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "no function matches")
}
