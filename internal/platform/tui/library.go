package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbench/internal/games/blockaway"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/storage"
)

// Library layout constants
const (
	minWidthForPreview = 90  // Minimum width to show the level preview
	previewWidth       = 34  // Width of the preview panel
	maxLibraryLevels   = 200 // Max levels to load
)

var gridFilters = []string{"", "square", "hex"}

// LibraryKeyMap defines the key bindings for the library browser.
type LibraryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Delete key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LibraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Delete, k.Filter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LibraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.Delete, k.Filter, k.Back, k.Quit},
	}
}

// DefaultLibraryKeyMap returns default key bindings.
func DefaultLibraryKeyMap() LibraryKeyMap {
	return LibraryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "grid filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LibraryModel browses the stored levels.
type LibraryModel struct {
	store       *storage.Store
	theme       Theme
	records     []storage.LevelRecord
	filter      int // index into gridFilters
	table       table.Model
	help        help.Model
	keys        LibraryKeyMap
	width       int
	height      int
	message     string
	showPreview bool
	selected    *core.Level
	quitting    bool
	goingBack   bool
}

// NewLibraryModel creates a library browser over store.
func NewLibraryModel(store *storage.Store, theme Theme, width, height int) LibraryModel {
	h := help.New()
	h.ShowAll = false

	m := LibraryModel{
		store:       store,
		theme:       theme,
		keys:        DefaultLibraryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showPreview: width >= minWidthForPreview,
	}
	m.table = m.createTable()
	m.loadLevels()
	return m
}

func (m *LibraryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Grid", Width: 6},
		{Title: "Mode", Width: 7},
		{Title: "Pcs", Width: 4},
		{Title: "Depth", Width: 5},
		{Title: "Wins", Width: 7},
		{Title: "Best", Width: 5},
	}

	tableWidth := m.width - 4
	if m.showPreview {
		tableWidth -= previewWidth + 3
	}
	fixed := 0
	for _, c := range columns[1:] {
		fixed += c.Width + 2
	}
	columns[0].Width = min(max(tableWidth-fixed, 12), 32)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.TableHeader).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.SelectedFg).
		Background(m.theme.SelectedBg).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *LibraryModel) loadLevels() {
	m.records = nil
	if m.store != nil {
		records, err := m.store.ListLevels(storage.ListOptions{
			Grid:  gridFilters[m.filter],
			Limit: maxLibraryLevels,
		})
		if err != nil {
			m.message = err.Error()
		}
		m.records = records
	}
	m.updateTableRows()
}

func (m *LibraryModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, rec := range m.records {
		wins, best := "-", "-"
		if stats, err := m.store.LevelStats(rec.LevelID); err == nil && stats.Plays > 0 {
			wins = fmt.Sprintf("%d/%d", stats.Wins, stats.Plays)
			if stats.BestMoves > 0 {
				best = fmt.Sprintf("%d", stats.BestMoves)
			}
		}
		name := rec.Name
		if name == "" {
			name = rec.LevelID
		}
		if !rec.Solvable {
			name = "! " + name
		}
		rows[i] = table.Row{
			name,
			rec.Grid,
			rec.Mode,
			fmt.Sprintf("%d", rec.Pieces),
			fmt.Sprintf("%d", rec.Depth),
			wins,
			best,
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func (m LibraryModel) current() (storage.LevelRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return storage.LevelRecord{}, false
	}
	return m.records[i], true
}

// Init initializes the library model.
func (m LibraryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the library.
func (m LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(gridFilters)
			m.loadLevels()
			m.table.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.Play):
			rec, ok := m.current()
			if !ok {
				return m, nil
			}
			lvl, err := blockaway.Restore(rec)
			if err != nil {
				m.message = err.Error()
				return m, nil
			}
			m.selected = &lvl
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			rec, ok := m.current()
			if !ok {
				return m, nil
			}
			if err := m.store.DeleteLevel(rec.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				m.message = err.Error()
				return m, nil
			}
			m.message = "deleted " + rec.Name
			m.loadLevels()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showPreview = m.width >= minWidthForPreview
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the library.
func (m LibraryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "LEVEL LIBRARY"
	if f := gridFilters[m.filter]; f != "" {
		title += " - " + f
	}
	b.WriteString(centerText(m.theme.Title.Render(title), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	tableRendered := box.Render(m.renderTableContent())
	if m.showPreview {
		preview := box.Width(previewWidth).Render(m.renderPreview())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", preview))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(m.theme.Bad.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render(m.help.View(m.keys)))
	return b.String()
}

func (m LibraryModel) renderTableContent() string {
	if len(m.records) == 0 {
		empty := m.theme.Muted.Italic(true).Padding(2, 4)
		return empty.Render("No saved levels yet.\nUse `blockbench generate --save` to add some.")
	}
	return m.table.View()
}

// renderPreview draws the selected level with its stored summary.
func (m LibraryModel) renderPreview() string {
	rec, ok := m.current()
	if !ok {
		return m.theme.Muted.Render("nothing selected")
	}
	lvl, err := blockaway.Restore(rec)
	if err != nil {
		return m.theme.Bad.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(m.theme.ItemActive.Render(rec.Name))
	b.WriteString("\n")
	b.WriteString(core.RenderASCII(lvl.Board, lvl.Pieces))
	b.WriteString("\n")

	verdict := m.theme.Good.Render("solvable")
	if !rec.Solvable {
		verdict = m.theme.Bad.Render("not solvable")
	}
	fmt.Fprintf(&b, "%s, depth %d\n", verdict, rec.Depth)
	fmt.Fprintf(&b, "source %s", rec.Source)
	if rec.Seed != 0 {
		fmt.Fprintf(&b, ", seed %d", rec.Seed)
	}
	b.WriteString("\n")

	if stats, err := m.store.LevelStats(rec.LevelID); err == nil && stats.Plays > 0 {
		fmt.Fprintf(&b, "avg mistakes %.1f\n", stats.AvgMistakes)
		fmt.Fprintf(&b, "last played %s\n", stats.LastPlayed.Format("Jan 02 15:04"))
	}
	if !rec.CreatedAt.IsZero() {
		b.WriteString(m.theme.Muted.Render("saved " + rec.CreatedAt.Format("Jan 02 15:04")))
	}
	return b.String()
}

// Selected returns the level chosen for play, or nil.
func (m LibraryModel) Selected() *core.Level {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LibraryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LibraryModel) IsQuitting() bool {
	return m.quitting
}
