// Package core implements the Block Away puzzle engine: grid geometry, path
// resolution, clearability, the greedy solver, deadlock tracing, the level
// generator and the play session.
//
// The package is UI-agnostic and deterministic. Maps are always walked in
// sorted order and randomness only enters through an injected RNG.
package core
