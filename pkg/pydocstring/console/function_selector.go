package console

import (
	"fmt"
	"strings"

	"github.com/76creates/stickers/flexbox"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	constants "github.com/ImGajeed76/pydocstring/internal"
)

var styles = struct {
	card         lipgloss.Style
	previewCard  lipgloss.Style
	topBar       lipgloss.Style
	selectedItem lipgloss.Style
	documented   lipgloss.Style
	searchMatch  lipgloss.Style
	section      lipgloss.Style
	cursor       lipgloss.Style
	title        lipgloss.Style
	file         lipgloss.Style
	hover        lipgloss.Style
}{
	card: lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")),
	previewCard: lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(constants.Theme.PrimaryColor)),
	topBar: lipgloss.NewStyle().
		Padding(1).
		Foreground(lipgloss.Color(constants.Theme.SecondaryColor)).
		Align(lipgloss.Center),
	selectedItem: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.PrimaryColor)).
		Bold(true).
		Background(lipgloss.Color("236")),
	documented: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.SuccessColor)),
	searchMatch: lipgloss.NewStyle().
		Underline(true).
		Background(lipgloss.Color("237")),
	section: lipgloss.NewStyle().
		PaddingBottom(1),
	cursor: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.PrimaryColor)).
		Bold(true),
	title: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.SecondaryColor)).
		Bold(true),
	file: lipgloss.NewStyle().
		Foreground(lipgloss.Color("202")),
	hover: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Background(lipgloss.Color("236")).
		Bold(true),
}

// FunctionItem is one function offered by the selector.
type FunctionItem struct {
	Name string
	// Line is the 1-based line of the def.
	Line       int
	Documented bool
	// Preview is markdown shown for the highlighted function.
	Preview string
}

// FunctionSelectorModel lists functions on the left and previews the
// generated docstring of the highlighted one on the right. Typing filters
// the list by name.
type FunctionSelectorModel struct {
	items      []FunctionItem
	visible    []int
	cursor     int
	offset     int
	maxEntries int
	searchTerm string
	selected   int
	title      string

	flexbox     *flexbox.FlexBox
	topBar      *flexbox.Cell
	leftCard    *flexbox.Cell
	previewCard *flexbox.Cell

	mouseX     int
	hoverIndex int
	isHovering bool

	previewOffset    int
	previewMaxHeight int
	previewMaxWidth  int
	previewLines     []string
	renderer         *glamour.TermRenderer
	previewCache     map[int][]string
}

// NewFunctionSelectorModel builds the selector. title is shown in the top
// bar, usually the file name.
func NewFunctionSelectorModel(title string, items []FunctionItem) *FunctionSelectorModel {
	topBar := flexbox.NewCell(1, 1).SetStyle(styles.topBar)
	leftCard := flexbox.NewCell(1, 7).SetStyle(styles.card)
	previewCard := flexbox.NewCell(2, 7).SetStyle(styles.previewCard)

	fb := flexbox.New(0, 0)
	fb.AddRows([]*flexbox.Row{
		fb.NewRow().AddCells(topBar),
		fb.NewRow().AddCells(leftCard, previewCard),
	})

	m := &FunctionSelectorModel{
		items:            items,
		maxEntries:       10,
		selected:         -1,
		title:            title,
		flexbox:          fb,
		topBar:           topBar,
		leftCard:         leftCard,
		previewCard:      previewCard,
		previewMaxHeight: 20,
		previewMaxWidth:  80,
		previewCache:     make(map[int][]string),
	}
	m.renderer = newRenderer(m.previewMaxWidth)
	m.filter()
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, width)),
	)
	return r
}

// SelectFunction runs the selector and returns the index into items of the
// chosen function.
func SelectFunction(title string, items []FunctionItem) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no functions to choose from")
	}

	final, err := run(NewFunctionSelectorModel(title, items), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if err != nil {
		return -1, err
	}
	index, ok := final.(*FunctionSelectorModel).Selected()
	if !ok {
		return -1, ErrCancelled
	}
	return index, nil
}

// Selected returns the chosen item index once enter was pressed.
func (m *FunctionSelectorModel) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

func (m *FunctionSelectorModel) Init() tea.Cmd {
	title := styles.title.Render(fmt.Sprintf("pydocstring %s", constants.Version))
	m.topBar.SetContent(title + "\n" + styles.file.Render(m.title))
	m.loadPreview()
	return nil
}

func (m *FunctionSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *FunctionSelectorModel) resize(width, height int) {
	m.flexbox.SetWidth(width)
	m.flexbox.SetHeight(height)
	m.flexbox.ForceRecalculate()
	m.maxEntries = max(1, m.leftCard.GetHeight()-6)

	// padding, border and scroll markers
	m.previewMaxHeight = max(1, m.previewCard.GetHeight()-8)
	m.previewMaxWidth = max(20, m.previewCard.GetWidth()-8)
	m.renderer = newRenderer(m.previewMaxWidth)
	m.previewCache = make(map[int][]string)
	m.loadPreview()
}

func (m *FunctionSelectorModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "up":
		m.navigateUp()
	case "down":
		m.navigateDown()
	case "pgup", "shift+up":
		if m.previewOffset > 0 {
			m.previewOffset--
		}
	case "pgdown", "shift+down":
		if m.previewOffset < len(m.previewLines)-m.previewMaxHeight {
			m.previewOffset++
		}
	case "enter":
		if index, ok := m.current(); ok {
			m.selected = index
			return m, tea.Quit
		}
	case "backspace":
		if m.searchTerm != "" {
			m.searchTerm = m.searchTerm[:len(m.searchTerm)-1]
			m.filter()
		}
	case "esc":
		if m.searchTerm == "" {
			return m, tea.Quit
		}
		m.searchTerm = ""
		m.filter()
	default:
		if msg.Type == tea.KeyRunes {
			m.searchTerm += string(msg.Runes)
			m.filter()
		}
	}
	return m, nil
}

func (m *FunctionSelectorModel) handleMouse(msg tea.MouseMsg) {
	m.mouseX = msg.X
	inList := m.mouseX < m.leftCard.GetWidth()

	switch {
	case msg.Button == tea.MouseButtonWheelUp && inList:
		m.navigateUp()
	case msg.Button == tea.MouseButtonWheelDown && inList:
		m.navigateDown()
	case msg.Button == tea.MouseButtonWheelUp && m.previewOffset > 0:
		m.previewOffset--
	case msg.Button == tea.MouseButtonWheelDown && m.previewOffset < len(m.previewLines)-m.previewMaxHeight:
		m.previewOffset++
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && m.isHovering:
		m.cursor = m.hoverIndex - m.offset
		m.previewOffset = 0
		m.loadPreview()
	}

	// top bar, card border and padding, search line
	row := msg.Y - m.topBar.GetHeight() - 3
	if m.searchTerm != "" {
		row -= 2
	}
	m.isHovering = inList && row >= 0 && row < m.maxEntries && row+m.offset < len(m.visible)
	if m.isHovering {
		m.hoverIndex = row + m.offset
	}
}

func (m *FunctionSelectorModel) current() (int, bool) {
	i := m.cursor + m.offset
	if i < 0 || i >= len(m.visible) {
		return -1, false
	}
	return m.visible[i], true
}

func (m *FunctionSelectorModel) navigateUp() {
	if m.cursor > 0 {
		m.cursor--
	} else if m.offset > 0 {
		m.offset--
	}
	m.previewOffset = 0
	m.loadPreview()
}

func (m *FunctionSelectorModel) navigateDown() {
	if m.cursor+m.offset >= len(m.visible)-1 {
		return
	}
	if m.cursor < m.maxEntries-1 {
		m.cursor++
	} else {
		m.offset++
	}
	m.previewOffset = 0
	m.loadPreview()
}

// filter recomputes the visible items from the search term.
func (m *FunctionSelectorModel) filter() {
	term := strings.ToLower(m.searchTerm)
	m.visible = m.visible[:0]
	for i, item := range m.items {
		if term == "" || strings.Contains(strings.ToLower(item.Name), term) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor, m.offset, m.previewOffset = 0, 0, 0
	m.loadPreview()
}

func (m *FunctionSelectorModel) loadPreview() {
	index, ok := m.current()
	if !ok {
		m.previewLines = nil
		return
	}
	if lines, ok := m.previewCache[index]; ok {
		m.previewLines = lines
		return
	}

	preview := m.items[index].Preview
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(preview); err == nil {
			preview = rendered
		}
	}
	m.previewLines = strings.Split(strings.TrimRight(preview, "\n"), "\n")
	m.previewCache[index] = m.previewLines
}

func (m *FunctionSelectorModel) View() string {
	m.leftCard.SetContent(m.listView())
	m.previewCard.SetContent(m.previewView())
	return m.flexbox.Render()
}

func (m *FunctionSelectorModel) listView() string {
	var content strings.Builder
	content.WriteString(styles.section.Render(styles.title.Render(fmt.Sprintf("Functions (%d)", len(m.visible)))))
	content.WriteString("\n")
	if m.searchTerm != "" {
		content.WriteString(styles.section.Render("Search: " + m.searchTerm))
		content.WriteString("\n")
	}

	end := min(len(m.visible), m.offset+m.maxEntries)
	for i := m.offset; i < end; i++ {
		item := m.items[m.visible[i]]

		cursor := " "
		if i == m.cursor+m.offset {
			cursor = ">"
		}
		mark := " "
		if item.Documented {
			mark = styles.documented.Render("✓")
		}
		text := fmt.Sprintf("%s %s %s :%d", styles.cursor.Render(cursor), mark, m.highlight(item.Name), item.Line)

		switch {
		case m.isHovering && i == m.hoverIndex:
			text = styles.hover.Render(text)
		case i == m.cursor+m.offset:
			text = styles.selectedItem.Render(text)
		}
		content.WriteString(text + "\n")
	}
	if end < len(m.visible) {
		content.WriteString("  ...")
	}
	return content.String()
}

func (m *FunctionSelectorModel) highlight(name string) string {
	if m.searchTerm == "" {
		return name
	}
	idx := strings.Index(strings.ToLower(name), strings.ToLower(m.searchTerm))
	if idx < 0 {
		return name
	}
	end := idx + len(m.searchTerm)
	return name[:idx] + styles.searchMatch.Render(name[idx:end]) + name[end:]
}

func (m *FunctionSelectorModel) previewView() string {
	if len(m.previewLines) == 0 {
		return hintStyle.Render("no function matches")
	}

	start := min(m.previewOffset, len(m.previewLines))
	end := min(start+m.previewMaxHeight, len(m.previewLines))

	var content strings.Builder
	if start > 0 {
		content.WriteString("↑ More above\n\n")
	}
	content.WriteString(strings.Join(m.previewLines[start:end], "\n"))
	if end < len(m.previewLines) {
		content.WriteString("\n\n↓ More below")
	}
	return content.String()
}
