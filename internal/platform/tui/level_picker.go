package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbench/internal/core"
)

// LevelPickerModel lets the player choose where to start a playlist.
type LevelPickerModel struct {
	title        string
	names        []string
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	theme        Theme
	chosen       bool
	quitting     bool
}

// NewLevelPickerModel creates a picker over the given level names.
func NewLevelPickerModel(title string, names []string, theme Theme, width, height int) LevelPickerModel {
	return LevelPickerModel{
		title:     title,
		names:     names,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     theme,
	}
}

// Init initializes the model.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m LevelPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.names)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.names) > 0 {
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LevelPickerModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll keeps the cursor on screen.
func (m *LevelPickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the picker.
func (m LevelPickerModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Subtitle.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(centerText(m.theme.Muted.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.names))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor, style := "  ", m.theme.ItemNormal
		if i == m.cursor {
			cursor, style = "> ", m.theme.ItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, m.names[i]))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(m.names) {
		b.WriteString(centerText(m.theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Muted.Render("Up/Down: Navigate  |  Enter: Play  |  Esc/Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the chosen index and whether a level was chosen.
func (m LevelPickerModel) Choice() (int, bool) {
	return m.cursor, m.chosen
}

// RunLevelPicker shows the picker and returns the chosen index.
// ok is false when the player left without choosing.
func RunLevelPicker(title string, names []string, theme Theme, cfg core.RuntimeConfig) (index int, ok bool, err error) {
	p := tea.NewProgram(NewLevelPickerModel(title, names, theme, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}
	m, isPicker := finalModel.(LevelPickerModel)
	if !isPicker {
		return 0, false, nil
	}
	index, ok = m.Choice()
	return index, ok, nil
}
