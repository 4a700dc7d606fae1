// Package eval contains static position evaluation: material, piece-square tables
// and terminal (mate/stalemate/fifty-move) scoring.
package eval

import (
	"context"

	"github.com/kestrel-chess/engine/pkg/board"
)

// Evaluator is a static position evaluator, returning a score in centipawns from
// White's perspective. The caller (the search) applies the side-to-move sign for
// negamax.
type Evaluator interface {
	Evaluate(ctx context.Context, pos *board.Position) board.Score
}

// Material is the tapered material-plus-piece-square-table evaluator. It treats
// mate, stalemate and the fifty-move rule as terminal scores and otherwise sums
// nominal material with each piece's table value, using a PawnCache (if set) to
// skip recomputing the pawn-only contribution when the pawn structure is unchanged.
type Material struct {
	// Cache, if non-nil, memoizes the pawn-only contribution by pawn hash.
	Cache   *PawnCache
	Zobrist *board.ZobristTable
}

func (m Material) Evaluate(ctx context.Context, pos *board.Position) board.Score {
	return Evaluate(pos, m.Zobrist, m.Cache)
}

// Evaluate returns the static evaluation of pos from White's perspective. zobrist
// and cache are optional: when both are supplied, the pawn-only contribution is
// memoized by pawn hash; when either is nil, evaluation falls back to a full
// recompute every call.
func Evaluate(pos *board.Position, zobrist *board.ZobristTable, cache *PawnCache) board.Score {
	if len(pos.LegalMoves(make([]board.Move, 0, 1))) == 0 {
		switch {
		case pos.Turn() == board.Black && pos.IsChecked(board.Black):
			return board.MateScore - board.Score(pos.FullmoveClock())
		case pos.Turn() == board.White && pos.IsChecked(board.White):
			return -board.MateScore + board.Score(pos.FullmoveClock())
		default:
			return 0
		}
	}
	if pos.HalfmoveClock() >= 50 {
		return 0
	}

	late := isLateGame(pos)

	pawns, ok := lookupPawnScore(pos, zobrist, cache, late)
	if !ok {
		pawns = pawnScore(pos, late)
		storePawnScore(pos, zobrist, cache, late, pawns)
	}

	return pawns + nonPawnScore(pos, late)
}

func lookupPawnScore(pos *board.Position, zobrist *board.ZobristTable, cache *PawnCache, late bool) (board.Score, bool) {
	if zobrist == nil || cache == nil {
		return 0, false
	}
	return cache.lookup(pawnCacheKey(zobrist.PawnHash(pos), late))
}

func storePawnScore(pos *board.Position, zobrist *board.ZobristTable, cache *PawnCache, late bool, score board.Score) {
	if zobrist == nil || cache == nil {
		return
	}
	cache.store(pawnCacheKey(zobrist.PawnHash(pos), late), score)
}

// pawnCacheKey folds the tapering phase into the pawn hash, so entries stored for the
// early and late phase are kept apart because pawnScore takes the phase as an input.
// With the current tables the pawn score is the same in both phases: only the king
// has a separate late-game table.
func pawnCacheKey(hash board.ZobristHash, late bool) board.ZobristHash {
	if late {
		return hash ^ 1
	}
	return hash
}

// pawnScore sums material and piece-square value for pawns only, both sides.
func pawnScore(pos *board.Position, late bool) board.Score {
	var total board.Score
	for c := board.White; c <= board.Black; c++ {
		bb := pos.Piece(c, board.Pawn)
		for bb != 0 {
			sq := bb.PopLSB()
			total += c.Unit() * board.Pawn.Value()
			total += pieceSquareValue(c, board.Pawn, sq, late)
		}
	}
	return total
}

// nonPawnScore sums material and piece-square value for every piece but pawns.
func nonPawnScore(pos *board.Position, late bool) board.Score {
	var total board.Score
	for c := board.White; c <= board.Black; c++ {
		for p := board.Knight; p < board.NumPieces; p++ {
			bb := pos.Piece(c, p)
			for bb != 0 {
				sq := bb.PopLSB()
				total += c.Unit() * p.Value()
				total += pieceSquareValue(c, p, sq, late)
			}
		}
	}
	return total
}

// isLateGame reports whether the king should use its late-game table: both sides
// having queens keeps the game in the early/middle phase regardless of minors; with
// no queens on the board both sides must be down to at most one minor; otherwise the
// side still holding a queen must be down to at most one minor.
func isLateGame(pos *board.Position) bool {
	wq := pos.Piece(board.White, board.Queen) != 0
	bq := pos.Piece(board.Black, board.Queen) != 0
	minors := func(c board.Color) int {
		return pos.Piece(c, board.Knight).PopCount() + pos.Piece(c, board.Bishop).PopCount()
	}

	switch {
	case wq && bq:
		return false
	case !wq && !bq:
		return minors(board.White) <= 1 && minors(board.Black) <= 1
	case wq:
		return minors(board.White) <= 1
	default:
		return minors(board.Black) <= 1
	}
}
