package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
)

func send(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) []tea.KeyMsg {
	var msgs []tea.KeyMsg
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestModelTypedOpener(t *testing.T) {
	opts := pydocstring.DefaultOptions()
	opts.Style = pydocstring.Google
	m := NewModel("example.py", "def f(a):\n    ", opts, nil)

	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnd})
	m = send(m, runes(`"""`)...)

	assert.Equal(t, "def f(a):\n    \"\"\"\n    SUMMARY.\n\n"+
		"    Args:\n        a (TYPE): DESCRIPTION.\n\n"+
		"    Returns:\n        None\n\n    \"\"\"", m.Value())
	assert.True(t, m.Dirty())

	cur := m.state().Cursor()
	assert.Equal(t, Position{Line: 2, Column: 12}, cur)
}

func TestModelShortcutAndSave(t *testing.T) {
	var saved string
	save := func(text string) error {
		saved = text
		return nil
	}
	m := NewModel("example.py", "def f():\n    return 1", pydocstring.DefaultOptions(), save)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NoError(t, m.err)
	assert.Contains(t, m.Value(), "    Returns\n    -------\n    int\n")
	assert.True(t, m.Dirty())

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, m.Value(), saved)
	assert.False(t, m.Dirty())
	assert.Contains(t, m.View(), "saved")
}

func TestModelShortcutWithoutFunction(t *testing.T) {
	m := NewModel("example.py", "x = 1", pydocstring.DefaultOptions(), nil)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, "x = 1", m.Value())
	assert.False(t, m.Dirty())
	assert.Equal(t, "no function here", m.status)
}

func TestModelQuit(t *testing.T) {
	m := NewModel("example.py", "", pydocstring.DefaultOptions(), nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestByteColumn(t *testing.T) {
	assert.Equal(t, 0, byteColumn("héllo", 0))
	assert.Equal(t, 3, byteColumn("héllo", 2))
	assert.Equal(t, 6, byteColumn("héllo", 10))
}
