package core

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// ReasonKind classifies where a blocking chain ends.
type ReasonKind uint8

const (
	// EdgeBlocked: the chain ends at a piece with no usable direction.
	EdgeBlocked ReasonKind = iota
	// MutualBlock: the chain closes on a two-piece cycle.
	MutualBlock
	// CircularChain: the chain closes on a cycle of three or more pieces.
	CircularChain
	// BlockedBy: the chain ends at a piece that is only waiting on a gate,
	// ice or a pause slide.
	BlockedBy
)

// String returns the snake_case name of the kind.
func (k ReasonKind) String() string {
	switch k {
	case EdgeBlocked:
		return "edge_blocked"
	case MutualBlock:
		return "mutual_block"
	case CircularChain:
		return "circular_chain"
	case BlockedBy:
		return "blocked_by"
	default:
		return "unknown"
	}
}

// Reason explains why one piece is stuck.
type Reason struct {
	Kind ReasonKind
	// Chain starts at the stuck piece and follows blockers. For cycles the
	// closing cell is repeated at the end.
	Chain       []Coord
	Explanation string
}

// DeadlockInfo is the tracer's report for a board with no clearable piece.
type DeadlockInfo struct {
	HasDeadlock bool
	Reasons     map[Coord]Reason
	Blockers    mapset.Set[Coord]
}

// ComputeDeadlock traces blocking chains for classic play.
func ComputeDeadlock(b Board, occ Occupancy, moves int) DeadlockInfo {
	return ComputeDeadlockFor(b, occ, moves, ModeClassic)
}

// ComputeDeadlockFor traces blocking chains. It reports nothing while any
// piece is clearable. In push mode a blocked piece that still has room to
// slide counts as waiting, and so does a rider of a carousel whose turn frees
// a piece. A neighbour-gated piece whose neighbours can never move is stuck.
func ComputeDeadlockFor(b Board, occ Occupancy, moves int, mode Mode) DeadlockInfo {
	info := DeadlockInfo{
		Reasons:  make(map[Coord]Reason),
		Blockers: mapset.New[Coord](),
	}
	if len(occ) == 0 || ComputeClearable(b, occ, moves).Size() > 0 {
		return info
	}

	t := tracer{
		b:       b,
		occ:     occ,
		moves:   moves,
		blocker: make(map[Coord]Coord),
		stuck:   mapset.New[Coord](),
		waiting: make(map[Coord]string),
		gated:   mapset.New[Coord](),
		rides:   make(map[Coord]int),
	}
	for i, car := range b.Carousels {
		if rotationTurns(b, occ, i) == 0 {
			continue
		}
		for _, c := range car.ArmCells(b.Geometry) {
			if _, taken := t.rides[c]; !taken && occ.Occupied(c) {
				t.rides[c] = i
			}
		}
	}
	for _, p := range occ.Sorted() {
		t.classify(p, mode)
	}
	t.settleGates()

	for _, c := range occ.Coords() {
		if !t.stuck.Has(c) {
			continue
		}
		reason := t.trace(c)
		info.Reasons[c] = reason
		for _, link := range reason.Chain[1:] {
			if link != c {
				info.Blockers.Put(link)
			}
		}
	}
	info.HasDeadlock = len(info.Reasons) > 0
	return info
}

type tracer struct {
	b       Board
	occ     Occupancy
	moves   int
	blocker map[Coord]Coord
	stuck   mapset.Set[Coord]
	waiting map[Coord]string
	gated   mapset.Set[Coord]
	rides   map[Coord]int // arm cell -> carousel index
}

func (t *tracer) classify(p Piece, mode Mode) {
	if i, ok := t.rides[p.Coord]; ok {
		t.waiting[p.Coord] = fmt.Sprintf("can ride carousel %d", i+1)
		return
	}
	gate := Gate(t.b, t.occ, p, t.moves)
	if gate == GateNeighbors {
		t.gated.Put(p.Coord)
	}
	if gate != GateOpen {
		t.waiting[p.Coord] = gate.String()
		return
	}
	path := ResolvePiece(t.b, t.occ, p)
	switch {
	case path.Stop == StopPause:
		t.waiting[p.Coord] = "can slide to a pause cell"
		return
	case mode == ModePush && path.Stop == StopBlocked && path.Len() > 0:
		t.waiting[p.Coord] = "can be pushed"
		return
	}
	t.stuck.Put(p.Coord)
	if c, ok := path.Blocker(); ok {
		t.blocker[p.Coord] = c
	}
}

// settleGates moves neighbour-gated pieces to stuck when none of their
// neighbours can ever leave. A piece can leave if it is waiting on something
// other than neighbours, if it is stuck behind a piece that can leave, or if
// it is gated next to one.
func (t *tracer) settleGates() {
	if t.gated.Size() == 0 {
		return
	}
	live := mapset.New[Coord]()
	for c := range t.waiting {
		if !t.gated.Has(c) {
			live.Put(c)
		}
	}
	for changed := true; changed; {
		changed = false
		for _, c := range t.occ.Coords() {
			if !live.Has(c) && t.canFollow(c, live) {
				live.Put(c)
				changed = true
			}
		}
	}

	for _, c := range t.occ.Coords() {
		if !t.gated.Has(c) || live.Has(c) {
			continue
		}
		delete(t.waiting, c)
		t.stuck.Put(c)
		for _, n := range t.b.Geometry.Neighbors(c) {
			if t.occ.Occupied(n) {
				t.blocker[c] = n
				break
			}
		}
	}
}

func (t *tracer) canFollow(c Coord, live mapset.Set[Coord]) bool {
	if t.gated.Has(c) {
		for _, n := range t.b.Geometry.Neighbors(c) {
			if live.Has(n) {
				return true
			}
		}
		return false
	}
	next, ok := t.blocker[c]
	return ok && live.Has(next)
}

func (t *tracer) trace(start Coord) Reason {
	chain := []Coord{start}
	seen := map[Coord]int{start: 0}
	cur := start
	for {
		if !t.stuck.Has(cur) {
			return t.reason(BlockedBy, chain)
		}
		next, ok := t.blocker[cur]
		if !ok {
			return t.reason(EdgeBlocked, chain)
		}
		if i, loop := seen[next]; loop {
			chain = append(chain, next)
			if len(chain)-1-i == 2 {
				return t.reason(MutualBlock, chain)
			}
			return t.reason(CircularChain, chain)
		}
		seen[next] = len(chain)
		chain = append(chain, next)
		cur = next
	}
}

func (t *tracer) reason(kind ReasonKind, chain []Coord) Reason {
	key := t.b.Geometry.Key
	start := chain[0]
	last := chain[len(chain)-1]
	var msg string
	switch kind {
	case EdgeBlocked:
		msg = fmt.Sprintf("%s has no free direction to the edge", key(last))
		if last != start {
			msg = fmt.Sprintf("%s is held up by %s, which has no free direction to the edge", key(start), key(last))
		}
	case MutualBlock:
		a, b := chain[len(chain)-3], chain[len(chain)-2]
		msg = fmt.Sprintf("%s and %s block each other", key(a), key(b))
		if a != start && b != start {
			msg = fmt.Sprintf("%s is held up by %s and %s, which block each other", key(start), key(a), key(b))
		}
	case CircularChain:
		keys := make([]string, len(chain))
		for i, c := range chain {
			keys[i] = key(c)
		}
		msg = "circular chain: " + strings.Join(keys, " -> ")
	case BlockedBy:
		msg = fmt.Sprintf("%s is blocked by %s, which is %s", key(start), key(last), t.waiting[last])
	}
	return Reason{Kind: kind, Chain: chain, Explanation: msg}
}
