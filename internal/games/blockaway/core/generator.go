package core

import "math"

// RNG is the randomness the generator draws from.
// *SimpleRNG and *math/rand.Rand both satisfy it.
type RNG interface {
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// GenParams configures level generation.
type GenParams struct {
	Mode Mode
	Seed uint64

	FlipFraction float64 // share of pieces turned away from their nearest edge
	LockFraction float64 // share of pieces that get a neighbour gate

	// Pivot is the piece count above which targets shrink by sqrt(Pivot/n).
	Pivot int
	// AttemptFactor bounds proposals per phase to target * AttemptFactor.
	AttemptFactor int
}

// DefaultGenParams returns sensible defaults for generation.
func DefaultGenParams() GenParams {
	return GenParams{
		Mode:          ModeClassic,
		FlipFraction:  0.6,
		LockFraction:  0.15,
		Pivot:         36,
		AttemptFactor: 4,
	}
}

// GenResult reports what the generator achieved. Targets may be missed; the
// pieces are solvable either way.
type GenResult struct {
	Pieces      Occupancy
	Flipped     int
	Locked      int
	Attempts    int
	TargetFlips int
	TargetLocks int
}

// GenerateFilledBoard fills every playable cell of b and perturbs it with the
// default pivot and attempt factor.
func GenerateFilledBoard(b Board, mode Mode, flip, lock float64, rng RNG) GenResult {
	p := DefaultGenParams()
	p.Mode = mode
	p.FlipFraction = flip
	p.LockFraction = lock
	return Generate(b, p, rng)
}

// Generate fills b and then flips and locks pieces, re-checking solvability
// after every proposal and reverting the ones that break it.
// A nil rng is replaced by NewRNG(p.Seed).
func Generate(b Board, p GenParams, rng RNG) GenResult {
	if rng == nil {
		rng = NewRNG(p.Seed)
	}

	occ := seedPieces(b)
	res := GenResult{Pieces: occ}
	if len(occ) == 0 {
		return res
	}
	if !CheckSolvable(b, occ).Solvable {
		res.Pieces = Occupancy{}
		return res
	}

	res.TargetFlips = scaledTarget(p.FlipFraction, len(occ), p.Pivot)
	res.TargetLocks = scaledTarget(p.LockFraction, len(occ), p.Pivot)
	facings := Facings(b.Geometry, p.Mode == ModePush)

	flip := func(pc *Piece, r RNG) bool {
		options := make([]Facing, 0, len(facings))
		for _, f := range facings {
			if f != pc.Facing {
				options = append(options, f)
			}
		}
		pc.Facing = options[r.Intn(len(options))]
		return true
	}
	lock := func(pc *Piece, _ RNG) bool {
		if pc.Locked {
			return false
		}
		pc.Locked = true
		return true
	}

	var n int
	n, res.Attempts = perturb(b, occ, res.TargetFlips, p.AttemptFactor, rng, flip)
	res.Flipped = n
	var attempts int
	n, attempts = perturb(b, occ, res.TargetLocks, p.AttemptFactor, rng, lock)
	res.Locked = n
	res.Attempts += attempts
	return res
}

// seedPieces points every piece at its nearest edge. Cells on the way to that
// edge are strictly closer to it, so peeling from the rim clears the board.
func seedPieces(b Board) Occupancy {
	g := b.Geometry
	occ := make(Occupancy)
	id := 1
	for _, c := range b.PlayableCells() {
		if b.CarouselAt(c) >= 0 {
			continue
		}
		best, bestDist := Dir(0), math.MaxInt
		for d := 0; d < g.NumDirs(); d++ {
			if dist := DistanceToEdge(g, c, Dir(d)); dist < bestDist {
				best, bestDist = Dir(d), dist
			}
		}
		occ[c] = Piece{ID: id, Coord: c, Facing: Single(best)}
		id++
	}
	return occ
}

// perturb applies mutate to random pieces until target of them stick.
// A piece that sticks leaves the pool.
func perturb(b Board, occ Occupancy, target, factor int, rng RNG, mutate func(*Piece, RNG) bool) (done, attempts int) {
	if target <= 0 {
		return 0, 0
	}
	if factor <= 0 {
		factor = 1
	}
	pool := occ.Coords()
	budget := target * factor
	for done < target && attempts < budget && len(pool) > 0 {
		attempts++
		i := rng.Intn(len(pool))
		c := pool[i]
		orig := occ[c]
		cand := orig
		if !mutate(&cand, rng) {
			pool = append(pool[:i], pool[i+1:]...)
			continue
		}
		occ[c] = cand
		if CheckSolvable(b, occ).Solvable {
			done++
			pool = append(pool[:i], pool[i+1:]...)
			continue
		}
		occ[c] = orig
	}
	return done, attempts
}

func scaledTarget(fraction float64, n, pivot int) int {
	if fraction <= 0 || n == 0 {
		return 0
	}
	if fraction > 1 {
		fraction = 1
	}
	scale := 1.0
	if pivot > 0 && n > pivot {
		scale = math.Sqrt(float64(pivot) / float64(n))
	}
	return int(math.Round(fraction * scale * float64(n)))
}

// ScatterVoids picks n distinct cells of g to become voids, sorted row-major.
// At least two cells are always left playable.
func ScatterVoids(g Geometry, n int, rng RNG) []Coord {
	cells := g.Cells()
	n = min(n, len(cells)-2)
	if n <= 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
	}
	out := cells[:n]
	sortCoords(out)
	return out
}
