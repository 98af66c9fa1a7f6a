// Package blockaway provides the Block Away sliding-block puzzle for the
// platform: a cursor moves over the board and taps send pieces on their way.
package blockaway

import (
	"fmt"
	"sort"
	"strings"

	platformcore "github.com/vovakirdan/blockbench/internal/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels"
	"github.com/vovakirdan/blockbench/internal/registry"
)

// Options toggles the play aids drawn around the board.
type Options struct {
	ShowClearable bool
	ShowDeadlock  bool
}

// DefaultOptions enables every aid.
func DefaultOptions() Options {
	return Options{ShowClearable: true, ShowDeadlock: true}
}

// Game plays a list of levels in order.
type Game struct {
	id          string
	title       string
	description string
	levels      []core.Level
	index       int
	opts        Options

	session  *core.Session
	cursor   core.Coord
	layout   map[core.Coord]core.Coord
	status   string
	reported bool // the end of the current attempt was already reported

	screenW int
	screenH int
}

const (
	headerHeight = 3
	maxReasons   = 4
)

func init() {
	registry.Register("blockaway", func() registry.Game {
		return newCampaignGame("blockaway", "Block Away", "Square campaign", core.KindSquare)
	})
	registry.Register("blockaway-hex", func() registry.Game {
		return newCampaignGame("blockaway-hex", "Block Away Hex", "Hex campaign", core.KindHex)
	})
}

func newCampaignGame(id, title, description string, kind core.Kind) *Game {
	var lv []core.Level
	if all, err := levels.Campaign().LoadAll(); err == nil {
		for _, l := range levels.Filter(all, kind) {
			lv = append(lv, l.Level)
		}
	}
	g := New(id, title, lv...)
	g.description = description
	return g
}

// New creates a game over the given levels.
func New(id, title string, lv ...core.Level) *Game {
	return &Game{
		id:      id,
		title:   title,
		levels:  lv,
		opts:    DefaultOptions(),
		screenW: 80,
		screenH: 24,
	}
}

// WithOptions replaces the play aids.
func (g *Game) WithOptions(o Options) *Game {
	g.opts = o
	return g
}

// StartAt selects the level played after the next Reset.
func (g *Game) StartAt(index int) *Game {
	if index >= 0 && index < len(g.levels) {
		g.index = index
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Description returns the menu description.
func (g *Game) Description() string {
	if g.description != "" {
		return g.description
	}
	return fmt.Sprintf("%d levels", len(g.levels))
}

// Levels returns the playlist.
func (g *Game) Levels() []core.Level {
	return g.levels
}

// Session returns the current attempt, or nil before Reset.
func (g *Game) Session() *core.Session {
	return g.session
}

// Cursor returns the cell under the cursor.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Reset starts the current level over.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if len(g.levels) == 0 {
		g.session = nil
		g.status = "no levels to play"
		return
	}
	g.load(g.index)
}

func (g *Game) load(i int) {
	g.index = i
	lvl := g.levels[i]
	g.session = core.NewSession(lvl)
	g.layout = core.TextLayout(lvl.Board.Geometry)
	g.reported = false
	g.status = lvl.Name

	cells := lvl.Pieces.Coords()
	if len(cells) == 0 {
		cells = lvl.Board.PlayableCells()
	}
	if len(cells) > 0 {
		g.cursor = cells[0]
	}
}

func (g *Game) switchLevel(delta int) {
	n := len(g.levels)
	g.load(((g.index+delta)%n + n) % n)
}

// Step applies one tick of input.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.session == nil {
		return g.result()
	}

	switch {
	case in.Has(platformcore.ActionRestart):
		g.session.Reset()
		g.reported = false
		g.status = "restarted"
		return g.result()
	case in.Has(platformcore.ActionNext):
		g.switchLevel(1)
		return g.result()
	case in.Has(platformcore.ActionPrev):
		g.switchLevel(-1)
		return g.result()
	}

	st := g.session.State()
	if st.Over() {
		switch {
		case st.Won && in.Has(platformcore.ActionTap):
			g.switchLevel(1)
		case in.Has(platformcore.ActionUndo) && g.session.Undo():
			g.status = "undone"
		}
		return g.result()
	}

	for _, a := range []platformcore.Action{
		platformcore.ActionUp, platformcore.ActionDown,
		platformcore.ActionLeft, platformcore.ActionRight,
	} {
		if in.Has(a) {
			g.moveCursor(a)
		}
	}

	switch {
	case in.Has(platformcore.ActionUndo):
		if g.session.Undo() {
			g.status = "undone"
		} else {
			g.status = "nothing to undo"
		}
	case in.Has(platformcore.ActionHint):
		if c, ok := g.session.Hint(); ok {
			g.cursor = c
			g.status = "try this one"
			if g.session.Level().Board.CarouselAt(c) >= 0 {
				g.status = "press t to rotate the carousel"
			}
		} else {
			g.status = "no safe move"
		}
	case in.Has(platformcore.ActionTap):
		g.status = g.describe(g.session.Tap(g.cursor))
	case in.Has(platformcore.ActionRotate):
		g.rotate()
	}

	return g.result()
}

func (g *Game) result() platformcore.StepResult {
	state := g.State()
	if !state.GameOver {
		g.reported = false
		return platformcore.StepResult{State: state}
	}
	finished := !g.reported
	g.reported = true
	return platformcore.StepResult{State: state, Finished: finished}
}

func (g *Game) rotate() {
	lvl := g.session.Level()
	for i, car := range lvl.Board.Carousels {
		onRing := car.Center == g.cursor
		for _, c := range car.ArmCells(lvl.Board.Geometry) {
			onRing = onRing || c == g.cursor
		}
		if onRing {
			g.status = g.describe(g.session.Rotate(i))
			return
		}
	}
	g.status = "no carousel here"
}

// moveCursor jumps to the nearest cell in the direction of a, measured on
// the text layout so square and hex boards move the same way.
func (g *Game) moveCursor(a platformcore.Action) {
	cur, ok := g.layout[g.cursor]
	if !ok {
		return
	}
	best, bestPos, found := g.cursor, core.Coord{}, false
	for c, pos := range g.layout {
		var eligible bool
		switch a {
		case platformcore.ActionLeft:
			eligible = pos.Y == cur.Y && pos.X < cur.X
		case platformcore.ActionRight:
			eligible = pos.Y == cur.Y && pos.X > cur.X
		case platformcore.ActionUp:
			eligible = pos.Y == cur.Y-1
		case platformcore.ActionDown:
			eligible = pos.Y == cur.Y+1
		}
		if !eligible {
			continue
		}
		if !found || nearer(cur, pos, bestPos) {
			best, bestPos, found = c, pos, true
		}
	}
	g.cursor = best
}

func nearer(from, a, b core.Coord) bool {
	da, db := absInt(a.X-from.X), absInt(b.X-from.X)
	if da != db {
		return da < db
	}
	return a.X < b.X
}

func (g *Game) describe(res core.Result) string {
	lvl := g.session.Level()
	st := g.session.State()
	geo := lvl.Board.Geometry

	var msg string
	switch res.Kind {
	case core.ResultCleared:
		msg = fmt.Sprintf("piece %d cleared", res.Piece.ID)
	case core.ResultFell:
		msg = fmt.Sprintf("piece %d fell into a hole", res.Piece.ID)
	case core.ResultPaused:
		msg = fmt.Sprintf("piece %d stopped on a pause cell", res.Piece.ID)
	case core.ResultPushed:
		msg = fmt.Sprintf("piece %d pushed to %s", res.Piece.ID, geo.Key(res.To))
	case core.ResultRotated:
		msg = "carousel rotated"
	case core.ResultNoop:
		msg = "the carousel is empty"
	case core.ResultInvalid, core.ResultMistake:
		msg = g.rejection(res)
		if res.Kind == core.ResultMistake {
			msg += fmt.Sprintf(" (mistake %d/%d)", st.Mistakes, lvl.MistakeLimit)
		}
	case core.ResultOver:
		msg = "the attempt is over"
	}

	switch {
	case st.Won:
		msg = "board cleared! press enter for the next level"
	case st.Lost && lvl.MistakeLimit > 0 && st.Mistakes >= lvl.MistakeLimit:
		msg = "too many mistakes, press r to retry"
	case st.Lost:
		msg = "out of moves, press u to undo or r to retry"
	}
	return msg
}

func (g *Game) rejection(res core.Result) string {
	lvl := g.session.Level()
	st := g.session.State()
	if _, ok := st.Pieces[g.cursor]; !ok {
		if lvl.Board.CarouselAt(g.cursor) >= 0 {
			return "press t to rotate the carousel"
		}
		return "nothing to tap here"
	}
	if gate := core.Gate(lvl.Board, st.Pieces, res.Piece, st.Moves); gate != core.GateOpen {
		return fmt.Sprintf("piece %d is %s", res.Piece.ID, gate)
	}
	if at, ok := res.Path.Blocker(); ok {
		if blocker, ok := st.Pieces[at]; ok {
			return fmt.Sprintf("piece %d is blocked by piece %d", res.Piece.ID, blocker.ID)
		}
	}
	return fmt.Sprintf("piece %d cannot move", res.Piece.ID)
}

// State returns the platform view of the current attempt.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{GameOver: true, Status: g.status}
	}
	st := g.session.State()
	return platformcore.GameState{
		Level:    g.session.Level().ID,
		Moves:    st.Moves,
		Mistakes: st.Mistakes,
		GameOver: st.Over(),
		Won:      st.Won,
		Status:   g.status,
	}
}

// Render draws the header, board, status line and deadlock report.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.session == nil {
		dst.DrawTextCentered(dst.Height()/2, g.status, platformcore.ColorGray)
		return
	}

	lvl := g.session.Level()
	st := g.session.State()

	maxX, maxY := 0, 0
	for _, pos := range g.layout {
		maxX, maxY = max(maxX, pos.X), max(maxY, pos.Y)
	}
	boardW := 2*maxX + 4
	boardH := maxY + 1
	if boardW > dst.Width() || headerHeight+boardH+3 > dst.Height() {
		dst.DrawTextCentered(dst.Height()/2, "too small", platformcore.ColorRed)
		return
	}

	g.renderHeader(dst, lvl, st)

	area := platformcore.NewRect(0, headerHeight, dst.Width(), boardH)
	origin := area.Centered(boardW, boardH)
	if frame := platformcore.NewRect(origin.X-1, origin.Y-1, boardW+2, boardH+2); frame.X >= 0 && frame.Right() <= dst.Width() {
		dst.DrawBox(frame, platformcore.ColorGray)
	}
	g.renderBoard(dst, origin, lvl, st)

	y := origin.Bottom() + 1
	statusColor := platformcore.ColorWhite
	switch {
	case st.Won:
		statusColor = platformcore.ColorBrightGreen
	case st.Lost:
		statusColor = platformcore.ColorBrightRed
	}
	dst.DrawTextCentered(y, g.status, statusColor)

	if g.opts.ShowDeadlock {
		g.renderDeadlock(dst, y+1)
	}

	controls := "arrows move  enter tap  t rotate  u undo  ? hint  r restart  n/p level  esc menu"
	dst.DrawTextCentered(dst.Height()-1, controls, platformcore.ColorGray)
}

func (g *Game) renderHeader(dst *platformcore.Screen, lvl core.Level, st core.State) {
	title := fmt.Sprintf("%s  %s (%d/%d)", strings.ToUpper(g.title), lvl.Name, g.index+1, len(g.levels))
	dst.DrawTextCentered(0, title, platformcore.ColorBrightCyan)

	moves := fmt.Sprintf("moves %d", st.Moves)
	if lvl.MoveBudget > 0 {
		moves += fmt.Sprintf("/%d", lvl.MoveBudget)
	}
	info := []string{moves}
	if lvl.MistakeLimit > 0 {
		info = append(info, fmt.Sprintf("mistakes %d/%d", st.Mistakes, lvl.MistakeLimit))
	}
	info = append(info, fmt.Sprintf("pieces %d", len(st.Pieces)), "mode "+lvl.Mode.String())
	dst.DrawTextCentered(1, strings.Join(info, "  "), platformcore.ColorGray)
}

func (g *Game) renderBoard(dst *platformcore.Screen, origin platformcore.Rect, lvl core.Level, st core.State) {
	b := lvl.Board
	var clearable, blockers func(core.Coord) bool
	clearable = func(core.Coord) bool { return false }
	blockers = clearable
	if g.opts.ShowClearable {
		set := g.session.Clearable()
		clearable = set.Has
	}
	if g.opts.ShowDeadlock {
		info := g.session.Deadlock()
		blockers = func(c core.Coord) bool {
			_, stuck := info.Reasons[c]
			return stuck || info.Blockers.Has(c)
		}
	}

	for c, pos := range g.layout {
		x := origin.X + 2*pos.X + 1
		y := origin.Y + pos.Y
		token := []rune(core.CellToken(b, st.Pieces, c))

		color := platformcore.ColorGray
		if p, ok := st.Pieces[c]; ok {
			switch {
			case blockers(c):
				color = platformcore.ColorRed
			case clearable(c):
				color = platformcore.ColorBrightGreen
			case core.Gate(b, st.Pieces, p, st.Moves) != core.GateOpen:
				color = platformcore.ColorCyan
			default:
				color = platformcore.ColorWhite
			}
		} else if b.IsVoid(c) {
			color = platformcore.ColorBlue
		} else if b.IsPause(c) {
			color = platformcore.ColorYellow
		} else if b.CarouselAt(c) >= 0 {
			color = platformcore.ColorMagenta
		}
		dst.SetWithColor(x, y, token[0], color)
		dst.SetWithColor(x+1, y, token[1], color)

		if c == g.cursor && !st.Over() {
			dst.SetWithColor(x-1, y, '[', platformcore.ColorBrightYellow)
			dst.SetWithColor(x+2, y, ']', platformcore.ColorBrightYellow)
		}
	}
}

func (g *Game) renderDeadlock(dst *platformcore.Screen, y int) {
	info := g.session.Deadlock()
	if !info.HasDeadlock {
		return
	}
	geo := g.session.Level().Board.Geometry

	cells := make([]core.Coord, 0, len(info.Reasons))
	for c := range info.Reasons {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })

	dst.DrawTextCentered(y, "deadlock: no piece can leave", platformcore.ColorBrightRed)
	for i, c := range cells {
		if i == maxReasons {
			dst.DrawTextCentered(y+1+i, fmt.Sprintf("... and %d more", len(cells)-i), platformcore.ColorRed)
			break
		}
		r := info.Reasons[c]
		line := fmt.Sprintf("%s %s: %s", geo.Key(c), r.Kind, r.Explanation)
		dst.DrawTextCentered(y+1+i, line, platformcore.ColorRed)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
