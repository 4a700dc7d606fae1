// Package perft implements the classical move-generator correctness test: an
// enumerative count of leaf positions at a given search depth from a given starting
// position. See: https://www.chessprogramming.org/Perft_Results.
package perft

import "github.com/kestrel-chess/engine/pkg/board"

// Count returns the number of leaf positions reachable from pos in exactly depth
// plies of legal play. Count(pos, 0) is 1 by convention (the position itself).
func Count(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.LegalMoves(make([]board.Move, 0, 64))
	if depth == 1 {
		return uint64(len(moves))
	}

	var total uint64
	for _, m := range moves {
		pos.Make(m)
		total += Count(pos, depth-1)
		pos.Unmake(m)
	}
	return total
}

// Divide returns the perft count at depth-1 for each legal root move, keyed by the
// move's UCI string. Useful for isolating a move-generation bug against a reference
// engine's per-move breakdown.
func Divide(pos *board.Position, depth int) map[string]uint64 {
	ret := make(map[string]uint64)
	if depth == 0 {
		return ret
	}

	moves := pos.LegalMoves(make([]board.Move, 0, 64))
	for _, m := range moves {
		pos.Make(m)
		ret[m.String()] = Count(pos, depth-1)
		pos.Unmake(m)
	}
	return ret
}
