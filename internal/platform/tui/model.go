package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbench/internal/config"
	"github.com/vovakirdan/blockbench/internal/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway"
	"github.com/vovakirdan/blockbench/internal/registry"
	"github.com/vovakirdan/blockbench/internal/storage"
)

// Env is shared by every screen of a session.
type Env struct {
	Store  *storage.Store // nil disables the library and attempt history
	Config config.WorkbenchConfig
	Player string
	Logger *log.Logger
}

func (e Env) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func (e Env) theme() Theme {
	return ThemeByName(e.Config.Gameplay.Theme)
}

// applyOptions passes the configured play aids to puzzle games.
func (e Env) applyOptions(game registry.Game) {
	if bg, ok := game.(*blockaway.Game); ok {
		bg.WithOptions(blockaway.Options{
			ShowClearable: e.Config.Gameplay.ShowClearable,
			ShowDeadlock:  e.Config.Gameplay.ShowDeadlock,
		})
	}
}

// Model runs one game and records finished attempts.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	env        Env
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	started    time.Time
	standalone bool // back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, env Env, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	env.applyOptions(game)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		env:        env,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Puzzles keep their state across resizes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A new attempt starts on a level change or when a finished one is restarted.
	if result.State.Level != prev.Level || (prev.GameOver && !result.State.GameOver) {
		m.started = time.Now()
	}
	if result.Finished {
		m.recordAttempt(result.State)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordAttempt stores a finished attempt. Failures are logged and play goes on.
func (m Model) recordAttempt(state core.GameState) {
	if m.env.Store == nil || state.Level == "" {
		return
	}
	attempt := storage.Attempt{
		LevelRef: state.Level,
		Player:   m.env.Player,
		Moves:    state.Moves,
		Mistakes: state.Mistakes,
		Won:      state.Won,
		Duration: time.Since(m.started).Round(time.Second),
	}
	if _, err := m.env.Store.SaveAttempt(attempt); err != nil {
		m.env.logger().Warn("could not save attempt", "level", state.Level, "error", err)
		return
	}
	m.env.logger().Debug("attempt saved", "level", state.Level, "won", state.Won, "moves", state.Moves)
}

// saveScreenshot writes the current screen as text under ~/.blockbench/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blockbench", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.logger().Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run plays a single game until the user quits or presses back.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) error {
	model := NewModel(game, env, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
