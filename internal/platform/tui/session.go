package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbench/internal/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway"
	bacore "github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenLibrary
)

// SessionModel runs the whole flow: menu -> game or library -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	env       Env
	config    core.RuntimeConfig
	screen    sessionScreen
	menu      MenuModel
	library   LibraryModel
	gameModel Model
	notice    string
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(env Env, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(env, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenLibrary:
		return m.updateLibrary(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()
	m.notice = ""

	switch selected.Kind {
	case MenuItemLibrary:
		m.library = NewLibraryModel(m.env.Store, m.env.theme(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLibrary
		return m, m.library.Init()

	case MenuItemGenerate:
		game, err := m.generate()
		if err != nil {
			m.env.logger().Warn("could not generate a level", "error", err)
			m.notice = err.Error()
			return m.toMenu()
		}
		// A fixed seed applies to the first puzzle only.
		m.config.Seed = 0
		return m.startGame(game)

	default:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// The menu lists registered games only.
			return m.toMenu()
		}
		return m.startGame(game)
	}
}

// generate builds a fresh level sized by how many levels the player has won.
func (m SessionModel) generate() (registry.Game, error) {
	solved := 0
	if m.env.Store != nil {
		n, err := m.env.Store.SolvedCount(m.env.Player)
		if err != nil {
			m.env.logger().Warn("could not count solved levels", "error", err)
		}
		solved = n
	}

	seed := uint64(m.config.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	bp, err := blockaway.BlueprintFor(m.env.Config, solved, seed)
	if err != nil {
		return nil, err
	}
	lvl, res := blockaway.BuildLevel(bp)
	m.env.logger().Debug("generated level",
		"id", lvl.ID, "pieces", len(lvl.Pieces), "flipped", res.Flipped, "locked", res.Locked, "solved", solved)
	return blockaway.New("generated", "Random puzzle", lvl), nil
}

func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	m.gameModel = NewModel(game, m.env, m.config)
	m.screen = screenGame
	return m, m.gameModel.Init()
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.env, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		// Pending ticks of the finished game are dropped by the menu.
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLibrary(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.library.Update(msg)
	if lib, ok := newModel.(LibraryModel); ok {
		m.library = lib
	}

	if m.library.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.library.IsGoingBack() {
		return m.toMenu()
	}
	if lvl := m.library.Selected(); lvl != nil {
		return m.startGame(blockaway.New("library", "Library", *lvl))
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenLibrary:
		return m.library.View()
	}
	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.env.theme().Bad.Render(m.notice), m.config.ScreenW)
	}
	return view
}

// RunSession runs the menu flow in the local terminal.
func RunSession(env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(env, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// PlayLevels runs a standalone game over the given levels.
func PlayLevels(title string, env Env, cfg core.RuntimeConfig, lv ...bacore.Level) error {
	return Run(blockaway.New("custom", title, lv...), env, cfg)
}
