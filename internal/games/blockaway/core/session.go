package core

import "github.com/zyedidia/generic/mapset"

// MoveKind identifies a player move.
type MoveKind uint8

const (
	MoveTap MoveKind = iota
	MoveRotate
)

// Move is a single player input.
type Move struct {
	Kind     MoveKind
	At       Coord // tapped cell
	Carousel int   // carousel index for rotations
}

// TapAt builds a tap move.
func TapAt(c Coord) Move {
	return Move{Kind: MoveTap, At: c}
}

// RotateCarousel builds a rotation move.
func RotateCarousel(i int) Move {
	return Move{Kind: MoveRotate, Carousel: i}
}

// ResultKind describes what a move did.
type ResultKind uint8

const (
	ResultCleared ResultKind = iota
	ResultFell
	ResultPaused
	ResultPushed
	ResultRotated
	// ResultNoop: a rotation of an empty ring. Not a move, not a mistake.
	ResultNoop
	// ResultInvalid: nothing happened and mistakes are not counted.
	ResultInvalid
	// ResultMistake: nothing moved but the mistake counter went up.
	ResultMistake
	// ResultOver: the attempt already ended.
	ResultOver
)

// String returns the string representation of a result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultCleared:
		return "cleared"
	case ResultFell:
		return "fell"
	case ResultPaused:
		return "paused"
	case ResultPushed:
		return "pushed"
	case ResultRotated:
		return "rotated"
	case ResultNoop:
		return "noop"
	case ResultInvalid:
		return "invalid"
	case ResultMistake:
		return "mistake"
	case ResultOver:
		return "over"
	default:
		return "unknown"
	}
}

// Moved reports whether the move changed the board and counted.
func (k ResultKind) Moved() bool {
	return k <= ResultRotated
}

// Result is the outcome of one Step.
type Result struct {
	Kind  ResultKind
	Piece Piece // the tapped piece before the move
	To    Coord // new cell for pauses and pushes
	Path  Path
}

// State is the runtime state of one attempt. Step never mutates a State; it
// returns a new one and clones the occupancy whenever pieces change.
type State struct {
	Pieces   Occupancy
	Moves    int
	Mistakes int
	Won      bool
	Lost     bool
}

// NewState creates the initial state for a level.
func NewState(l Level) State {
	return State{Pieces: l.Pieces.Clone()}
}

// Over reports whether the attempt has ended.
func (s State) Over() bool {
	return s.Won || s.Lost
}

// Step applies one move to s.
func Step(l Level, s State, m Move) (State, Result) {
	if s.Over() {
		return s, Result{Kind: ResultOver}
	}
	switch m.Kind {
	case MoveTap:
		return stepTap(l, s, m.At)
	case MoveRotate:
		return stepRotate(l, s, m.Carousel)
	default:
		return rejectMove(l, s, Result{})
	}
}

func stepTap(l Level, s State, at Coord) (State, Result) {
	p, ok := s.Pieces[at]
	if !ok {
		return rejectMove(l, s, Result{})
	}
	res := Result{Piece: p}
	if Gate(l.Board, s.Pieces, p, s.Moves) != GateOpen {
		return rejectMove(l, s, res)
	}

	path := ResolvePiece(l.Board, s.Pieces, p)
	res.Path = path
	next := s
	next.Pieces = s.Pieces.Clone()
	delete(next.Pieces, p.Coord)

	switch path.Stop {
	case StopExit:
		res.Kind = ResultCleared
	case StopHole:
		res.Kind = ResultFell
	case StopPause:
		res.Kind = ResultPaused
		res.To = path.At
		moved := p
		moved.Coord = path.At
		moved.Paused = true
		next.Pieces[moved.Coord] = moved
	default:
		if l.Mode != ModePush || path.LastFree == p.Coord {
			return rejectMove(l, s, res)
		}
		res.Kind = ResultPushed
		res.To = path.LastFree
		moved := p
		moved.Coord = path.LastFree
		moved.Paused = false
		next.Pieces[moved.Coord] = moved
	}

	return finishMove(l, next), res
}

func stepRotate(l Level, s State, idx int) (State, Result) {
	if idx < 0 || idx >= len(l.Board.Carousels) {
		return rejectMove(l, s, Result{})
	}
	rotated, ok := rotateRiders(l.Board, s.Pieces, idx)
	if !ok {
		return s, Result{Kind: ResultNoop}
	}
	next := s
	next.Pieces = rotated
	return finishMove(l, next), Result{Kind: ResultRotated}
}

// rotateRiders returns a copy of occ with the pieces on carousel idx moved
// one arm clockwise. ok is false when the ring is empty.
func rotateRiders(b Board, occ Occupancy, idx int) (Occupancy, bool) {
	ring := b.Carousels[idx].ArmCells(b.Geometry)
	next := occ.Clone()
	riders := 0
	for _, c := range ring {
		if _, ok := occ[c]; ok {
			delete(next, c)
			riders++
		}
	}
	if riders == 0 {
		return occ, false
	}
	for i, c := range ring {
		p, ok := occ[c]
		if !ok {
			continue
		}
		p.Coord = ring[(i+1)%len(ring)]
		next[p.Coord] = p
	}
	return next, true
}

func finishMove(l Level, s State) State {
	s.Moves++
	switch {
	case len(s.Pieces) == 0:
		s.Won = true
	case l.MoveBudget > 0 && s.Moves >= l.MoveBudget:
		s.Lost = true
	}
	return s
}

func rejectMove(l Level, s State, res Result) (State, Result) {
	if l.MistakeLimit <= 0 {
		res.Kind = ResultInvalid
		return s, res
	}
	s.Mistakes++
	if s.Mistakes >= l.MistakeLimit {
		s.Lost = true
	}
	res.Kind = ResultMistake
	return s, res
}

// Session owns one attempt at a level plus its undo history.
type Session struct {
	level   Level
	state   State
	history []State
}

// NewSession starts an attempt.
func NewSession(l Level) *Session {
	return &Session{level: l, state: NewState(l)}
}

// Level returns the level being played.
func (s *Session) Level() Level { return s.level }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Apply runs one move and records a snapshot when the board changed.
func (s *Session) Apply(m Move) Result {
	next, res := Step(s.level, s.state, m)
	if res.Kind.Moved() {
		s.history = append(s.history, s.state)
	}
	s.state = next
	return res
}

// Tap taps the piece at c.
func (s *Session) Tap(c Coord) Result {
	return s.Apply(TapAt(c))
}

// Rotate turns carousel i.
func (s *Session) Rotate(i int) Result {
	return s.Apply(RotateCarousel(i))
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool {
	if len(s.history) == 0 {
		return false
	}
	return !(s.state.Lost && s.level.MistakeLimit > 0 && s.state.Mistakes >= s.level.MistakeLimit)
}

// Undo restores the state before the last successful move. Mistakes are kept.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	prev.Mistakes = s.state.Mistakes
	s.state = prev
	return true
}

// Reset starts the attempt over.
func (s *Session) Reset() {
	s.state = NewState(s.level)
	s.history = nil
}

// Clearable returns the cells that can be cleared right now.
func (s *Session) Clearable() mapset.Set[Coord] {
	return ComputeClearable(s.level.Board, s.state.Pieces, s.state.Moves)
}

// Deadlock traces blocking chains. It is empty once the attempt is over.
func (s *Session) Deadlock() DeadlockInfo {
	if s.state.Over() {
		return DeadlockInfo{Reasons: map[Coord]Reason{}, Blockers: mapset.New[Coord]()}
	}
	return ComputeDeadlockFor(s.level.Board, s.state.Pieces, s.state.Moves, s.level.Mode)
}

// Hint suggests the next tap: the earliest piece of the greedy order that is
// clearable now, then any clearable piece, then a pause slide. When only a
// carousel turn helps it returns that carousel's center.
func (s *Session) Hint() (Coord, bool) {
	if s.state.Over() {
		return Coord{}, false
	}
	b, occ, moves := s.level.Board, s.state.Pieces, s.state.Moves
	clearable := ComputeClearable(b, occ, moves)
	for _, c := range CheckSolvable(b, occ).Taps {
		if clearable.Has(c) {
			return c, true
		}
	}
	for _, c := range occ.Coords() {
		if clearable.Has(c) {
			return c, true
		}
	}
	for _, p := range occ.Sorted() {
		if Gate(b, occ, p, moves) != GateOpen {
			continue
		}
		if _, ok := ResolvePiece(b, occ, p).Pause(); ok {
			return p.Coord, true
		}
	}
	if i, _, ok := firstUsefulRotation(b, occ); ok {
		return b.Carousels[i].Center, true
	}
	return Coord{}, false
}
