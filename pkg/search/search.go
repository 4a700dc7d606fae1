// Package search implements iterative-deepening alpha-beta negamax search with
// quiescence extension, transposition and killer-move tables, principal-variation
// tracking, threefold-repetition detection and time management.
package search

import (
	"context"
	"math/rand"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// nodeCheckpointInterval is how often, in negamax node visits, the search drains its
// control channel, reports interim stats and checks the time budget.
const nodeCheckpointInterval = 100000

// Checkpoint is invoked roughly every nodeCheckpointInterval nodes. It should drain
// pending control messages (stop/quit/debug/ponderhit), report interim node/nps/
// hashfull stats, and check the soft time budget. It returns true if the search must
// stop immediately.
type Checkpoint func(nodes uint64) bool

// Search owns the mutable state of a single search: the position being searched, its
// incrementally maintained hash, the node counter, and the supporting tables. Per the
// single-dedicated-search-thread model, a Search is never touched by more than one
// goroutine at a time and needs no internal locking.
type Search struct {
	TT       *TranspositionTable
	Killers  *KillerTable
	History  *ZobristHistoryRing
	Zobrist  *board.ZobristTable
	Cache    *eval.PawnCache
	Rand     *rand.Rand
	Contempt board.Score

	// Noise, if non-zero, perturbs the static evaluation by a small amount so that
	// repeated self-play doesn't collapse onto the same line every game.
	Noise eval.Random

	// SearchMoves, if non-empty, restricts the root to this subset of legal moves.
	SearchMoves []board.Move

	// Checkpoint is called at the ~100,000-node cadence described above.
	Checkpoint Checkpoint

	pos     *board.Position
	rootPly int
	hash    board.ZobristHash
	nodes   uint64
	stop     bool
	buffers  [][]board.Move
	qbuffers [][]board.Move
}

// NewSearch constructs a Search ready to run against pos, which is owned by the
// returned Search for the duration (it is mutated via make/unmake during the run).
// rootPly is the absolute game ply of pos, used to key the history ring consistently
// with whatever game history preceded this position.
func NewSearch(pos *board.Position, rootPly int, zobrist *board.ZobristTable, tt *TranspositionTable, killers *KillerTable, history *ZobristHistoryRing) *Search {
	return &Search{
		TT:      tt,
		Killers: killers,
		History: history,
		Zobrist: zobrist,
		Rand:    rand.New(rand.NewSource(1)),
		pos:     pos,
		rootPly: rootPly,
		hash:    zobrist.Hash(pos),
	}
}

// Nodes returns the number of negamax/quiescence nodes visited so far.
func (s *Search) Nodes() uint64 {
	return s.nodes
}

// Stop requests that the search abandon its current iteration as soon as possible.
func (s *Search) Stop() {
	s.stop = true
}

func (s *Search) bufferAt(depth int) []board.Move {
	for len(s.buffers) <= depth {
		s.buffers = append(s.buffers, make([]board.Move, 0, 128))
	}
	return s.buffers[depth][:0]
}

func (s *Search) qbufferAt(depth int) []board.Move {
	for len(s.qbuffers) <= depth {
		s.qbuffers = append(s.qbuffers, make([]board.Move, 0, 64))
	}
	return s.qbuffers[depth][:0]
}

func filterSearchMoves(moves, allow []board.Move) []board.Move {
	n := 0
	for _, m := range moves {
		for _, a := range allow {
			if m.Equals(a) {
				moves[n] = m
				n++
				break
			}
		}
	}
	return moves[:n]
}

// evaluate returns the static evaluation of the current position from the side to
// move's perspective, ready to be used directly as a negamax value.
func (s *Search) evaluate(ctx context.Context) board.Score {
	score := eval.Evaluate(s.pos, s.Zobrist, s.Cache)
	if s.pos.Turn() == board.Black {
		score = -score
	}
	return score + s.Noise.Evaluate(ctx, s.pos)
}

// stepTowardRoot discounts a mate score by one ply as it is passed up one level of
// recursion, so that shallower mates always compare as more attractive than deeper
// ones found along a different line. Non-mate scores pass through unchanged.
func stepTowardRoot(s board.Score) board.Score {
	switch {
	case s > board.MateThreshold:
		return s - 1
	case s < -board.MateThreshold:
		return s + 1
	default:
		return s
	}
}

// negated returns -s, discounted one ply toward the root if s is a mate score. This is
// the standard negamax child-to-parent transform applied at every unwind step.
func negated(s board.Score) board.Score {
	return stepTowardRoot(-s)
}

// checkpointIfDue runs the periodic housekeeping described by Checkpoint, if due.
func (s *Search) checkpointIfDue(ctx context.Context) {
	if s.nodes%nodeCheckpointInterval != 0 {
		return
	}
	if s.Checkpoint != nil && s.Checkpoint(s.nodes) {
		s.stop = true
	}
	if contextx.IsCancelled(ctx) {
		s.stop = true
	}
}

// halted is a sentinel: value 0, no move, no legal PV. The caller must discard the
// enclosing iteration rather than treat this as a genuine drawn evaluation.
func (s *Search) halted() (board.Score, []board.Move) {
	return 0, nil
}

// Negamax searches to maxPly total plies from the root, starting plyFromRoot plies in,
// within window [alpha, beta]. followingPV, if non-empty, holds the remainder of the
// previous iteration's principal variation along the branch leading to this node; it
// is consulted as a move-ordering hint and narrowed to the matching child as the
// recursion descends.
func (s *Search) Negamax(ctx context.Context, plyFromRoot, maxPly int, alpha, beta board.Score, followingPV []board.Move) (board.Score, []board.Move) {
	s.nodes++
	s.checkpointIfDue(ctx)
	if s.stop {
		return s.halted()
	}

	ply := s.rootPly + plyFromRoot
	s.History.Record(ply, s.hash)
	if s.History.CountRepetitions(ply, s.pos.HalfmoveClock()) >= 3 {
		return DrawScore(plyFromRoot, s.Contempt), nil
	}

	remainingDraft := maxPly - plyFromRoot

	var ttMove board.Move
	if bound, draft, value, move, ok := s.TT.Read(s.hash); ok {
		ttMove = move
		if draft >= remainingDraft {
			switch bound {
			case LowerBound:
				if value > alpha {
					alpha = value
				}
			case UpperBound:
				if value < beta {
					beta = value
				}
			default: // ExactBound
				return value, nil
			}
			if alpha >= beta {
				return value, nil
			}
		}
	}

	buf := s.bufferAt(plyFromRoot)
	moves := s.pos.GenerateMoves(buf)
	if plyFromRoot == 0 && len(s.SearchMoves) > 0 {
		moves = filterSearchMoves(moves, s.SearchMoves)
	}

	if plyFromRoot == maxPly {
		hasNonQuiet := false
		for _, m := range moves {
			if !m.IsQuiet() {
				hasNonQuiet = true
				break
			}
		}
		if len(moves) > 0 && hasNonQuiet {
			return s.Quiescence(ctx, plyFromRoot, alpha, beta)
		}
		return s.evaluate(ctx), nil
	}

	var pvMove board.Move
	if len(followingPV) > 0 {
		pvMove = followingPV[0]
	}
	killerMove := s.Killers.At(remainingDraft)
	orderMoves(moves, pvMove, ttMove, killerMove, s.Rand)

	origAlpha := alpha
	hasLegalMove := false
	best := board.MinScore
	var bestMove board.Move
	var bestPV []board.Move

	for _, m := range moves {
		delta, _ := s.Zobrist.HashXor(s.pos, m)
		s.pos.Make(m)
		if s.pos.IsChecked(m.Turn()) {
			s.pos.Unmake(m)
			continue
		}
		hasLegalMove = true

		var childFollowingPV []board.Move
		if len(followingPV) > 0 && followingPV[0].Equals(m) {
			childFollowingPV = followingPV[1:]
		}

		prevHash := s.hash
		s.hash ^= delta
		childScore, childPV := s.Negamax(ctx, plyFromRoot+1, maxPly, -beta, -alpha, childFollowingPV)
		s.hash = prevHash
		s.pos.Unmake(m)

		if s.stop {
			return s.halted()
		}

		score := negated(childScore)
		if score > best {
			best = score
			bestMove = m
			bestPV = append([]board.Move{m}, childPV...)
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			if m.IsQuiet() {
				s.Killers.Record(remainingDraft, m)
			}
			break
		}
	}

	if !hasLegalMove {
		if s.pos.IsChecked(s.pos.Turn()) {
			return -board.MateScore, nil
		}
		return DrawScore(plyFromRoot, s.Contempt), nil
	}

	var bound Bound
	switch {
	case best <= origAlpha:
		bound = UpperBound
	case best >= beta:
		bound = LowerBound
	default:
		bound = ExactBound
	}
	s.TT.Write(s.hash, bound, remainingDraft, best, bestMove)

	return best, bestPV
}

// Quiescence resolves captures (and promotions/en passant) until the position is
// "quiet", returning a stand-pat-bounded score so the static evaluation at the leaves
// of the main search isn't blind to a hanging piece one ply deeper.
func (s *Search) Quiescence(ctx context.Context, plyFromQEntry int, alpha, beta board.Score) (board.Score, []board.Move) {
	s.nodes++
	s.checkpointIfDue(ctx)
	if s.stop {
		return s.halted()
	}

	standPat := s.evaluate(ctx)
	if standPat >= beta {
		return beta, nil
	}
	if standPat > alpha {
		alpha = standPat
	}

	buf := s.qbufferAt(plyFromQEntry)
	moves := s.pos.GenerateCaptures(buf)
	orderMoves(moves, 0, 0, 0, s.Rand)

	var bestPV []board.Move
	for _, m := range moves {
		delta, _ := s.Zobrist.HashXor(s.pos, m)
		s.pos.Make(m)
		if s.pos.IsChecked(m.Turn()) {
			s.pos.Unmake(m)
			continue
		}

		prevHash := s.hash
		s.hash ^= delta
		childScore, childPV := s.Quiescence(ctx, plyFromQEntry+1, -beta, -alpha)
		s.hash = prevHash
		s.pos.Unmake(m)

		if s.stop {
			return s.halted()
		}

		score := negated(childScore)
		if score >= beta {
			return beta, nil
		}
		if score > alpha {
			alpha = score
			bestPV = append([]board.Move{m}, childPV...)
		}
	}

	return alpha, bestPV
}
