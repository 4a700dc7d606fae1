package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/kestrel-chess/engine/pkg/board"
)

// PV represents the principal variation found by one iterative-deepening iteration.
type PV struct {
	Depth int           // maxPly searched from the root
	Moves []board.Move  // principal variation, root move first
	Score board.Score   // score of Moves[0], from the root side to move's perspective
	Nodes uint64        // nodes searched during this iteration
	Time  time.Duration // wall time spent on this iteration
	Hash  float64       // TT utilization [0;1] at the end of this iteration
}

func (p PV) String() string {
	var sb strings.Builder
	for i, m := range p.Moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), sb.String())
}

// BestMove returns the root move of the variation, or the zero move if none was found
// (no legal moves in the searched position).
func (p PV) BestMove() board.Move {
	if len(p.Moves) == 0 {
		return 0
	}
	return p.Moves[0]
}

// PonderMove returns the second move of the variation, the one the opponent is
// predicted to reply with, if the variation is long enough to contain one.
func (p PV) PonderMove() (board.Move, bool) {
	if len(p.Moves) < 2 {
		return 0, false
	}
	return p.Moves[1], true
}

// shiftPonder drops the first two plies of a prior PV -- the move just played and the
// opponent's predicted reply -- so the remainder can seed the next search's ordering
// when the prediction matched what the opponent actually played.
func shiftPonder(moves []board.Move) []board.Move {
	if len(moves) < 2 {
		return nil
	}
	return moves[2:]
}
