package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
)

func TestValidateLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    func() core.Level
		solvable bool
		wantCode string
	}{
		{
			name:  "valid row",
			level: rowLevel,
		},
		{
			name:  "valid hex with carousel",
			level: hexCarouselLevel,
		},
		{
			name: "piece off grid",
			level: func() core.Level {
				l := rowLevel()
				l.Pieces = occupancy(piece(1, core.RC(0, 5), core.Up))
				return l
			},
			wantCode: "OUT_OF_BOUNDS",
		},
		{
			name: "piece on void",
			level: func() core.Level {
				return core.Level{Board: square(2, 2, core.RC(1, 1)), Pieces: occupancy(piece(1, core.RC(1, 1), core.Up))}
			},
			wantCode: "ON_VOID",
		},
		{
			name: "duplicate id",
			level: func() core.Level {
				l := rowLevel()
				l.Pieces = occupancy(piece(1, core.RC(0, 0), core.Up), piece(1, core.RC(0, 1), core.Up))
				return l
			},
			wantCode: "DUPLICATE_ID",
		},
		{
			name: "pause on square grid",
			level: func() core.Level {
				l := rowLevel()
				l.Board = l.Board.WithPauses(core.RC(0, 1))
				return l
			},
			wantCode: "PAUSE_ON_SQUARE",
		},
		{
			name: "carousel with one arm",
			level: func() core.Level {
				l := hexCarouselLevel()
				l.Board.Carousels[0].Arms = []core.Dir{core.HexE}
				return l
			},
			wantCode: "BAD_CAROUSEL",
		},
		{
			name: "carousel arm off grid",
			level: func() core.Level {
				l := hexCarouselLevel()
				l.Board = l.Board.WithCarousel(core.Carousel{Center: core.QR(2, 0), Arms: []core.Dir{core.HexE, core.HexW}})
				return l
			},
			wantCode: "BAD_CAROUSEL",
		},
		{
			name: "unsolvable only when asked",
			level: func() core.Level {
				return core.Level{Board: square(1, 3), Pieces: occupancy(piece(1, core.RC(0, 0), core.Right), piece(2, core.RC(0, 1), core.Left))}
			},
		},
		{
			name: "unsolvable",
			level: func() core.Level {
				return core.Level{Board: square(1, 3), Pieces: occupancy(piece(1, core.RC(0, 0), core.Right), piece(2, core.RC(0, 1), core.Left))}
			},
			solvable: true,
			wantCode: "NOT_SOLVABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.ValidateLevel(tt.level(), tt.solvable)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s (%s)", verr.Code, tt.wantCode, verr.Message)
			}
		})
	}
}

func TestComputeLevelStats(t *testing.T) {
	l := rowLevel()
	p := l.Pieces[core.RC(0, 0)]
	p.Locked = true
	p.Mirror = true
	l.Pieces[p.Coord] = p

	stats := core.ComputeLevelStats(l)
	if stats.Pieces != 3 || stats.Locked != 1 || stats.Mirrored != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	// The locked piece waits for its neighbour, then exits left through the mirror.
	if !stats.Solvable || stats.Depth != 3 {
		t.Errorf("expected solvable in 3 waves, got %+v", stats)
	}
}
