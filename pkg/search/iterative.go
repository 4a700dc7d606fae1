package search

import (
	"context"
	"time"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options holds the subset of `go` parameters that shape one iterative-deepening run.
type Options struct {
	// SearchMoves, if non-empty, restricts the root to these moves.
	SearchMoves []board.Move
	// Ponder is the previous search's principal variation, if any; shiftPonder drops its
	// first two plies and the rest seeds the PV ordering hint. It is not gated on
	// PonderHit.
	Ponder []board.Move
	// DepthLimit caps the number of plies searched, if present.
	DepthLimit lang.Optional[int]
	// NodeLimit, zero meaning none, caps the number of nodes searched.
	NodeLimit uint64
	// MoveTime, if set, is used directly as the time budget.
	MoveTime time.Duration
	// TimeControl, if present (and MoveTime is not), derives the time budget.
	TimeControl lang.Optional[TimeControl]
	// Infinite disables the time budget entirely; only Stop, DepthLimit or NodeLimit
	// end the search.
	Infinite bool
}

func (o Options) budget() (time.Duration, bool) {
	switch {
	case o.Infinite:
		return 0, false
	case o.MoveTime > 0:
		return o.MoveTime, true
	default:
		if tc, ok := o.TimeControl.V(); ok {
			return tc.Budget(), true
		}
		return 0, false
	}
}

// Iterative drives a Search through iterative deepening, from depth 1 upward, calling
// report after every completed iteration (and, via the Search's checkpoint, at the
// node cadence within an iteration too, if report is non-nil).
type Iterative struct {
	Search *Search
}

// Run searches pos (already installed into it.Search) to completion under opt, and
// returns the last fully completed iteration's principal variation. On an aborted
// iteration, the previous iteration's PV is what's returned -- an incomplete iteration
// never overwrites it, per the stop semantics of Negamax's sentinel return.
func (it *Iterative) Run(ctx context.Context, opt Options, report func(PV)) PV {
	it.Search.SearchMoves = opt.SearchMoves
	it.Search.Killers.Age()

	budget, useBudget := opt.budget()
	start := time.Now()

	var last PV
	lastPV := shiftPonder(opt.Ponder)
	depthLimit, hasDepthLimit := opt.DepthLimit.V()
	outer := it.Search.Checkpoint

	for maxPly := 1; !hasDepthLimit || maxPly <= depthLimit; maxPly++ {
		iterStart := time.Now()
		maxPlyCopy := maxPly

		it.Search.Checkpoint = func(nodes uint64) bool {
			if outer != nil && outer(nodes) {
				return true
			}
			if useBudget && time.Since(start) > budget {
				return true
			}
			if opt.NodeLimit > 0 && nodes >= opt.NodeLimit {
				return true
			}
			if report != nil {
				report(PV{Depth: maxPlyCopy, Nodes: nodes, Time: time.Since(iterStart), Hash: it.Search.TT.Used()})
			}
			return false
		}

		score, pv := it.Search.Negamax(ctx, 0, maxPly, board.MinScore, board.MaxScore, lastPV)
		if it.Search.stop {
			break // incomplete iteration: discard, keep the previous completed PV
		}

		last = PV{
			Depth: maxPly,
			Moves: pv,
			Score: score,
			Nodes: it.Search.Nodes(),
			Time:  time.Since(iterStart),
			Hash:  it.Search.TT.Used(),
		}
		lastPV = pv
		if report != nil {
			report(last)
		}

		if score.IsMateScore() {
			break // forced mate found within full-width search; exact result
		}
		if useBudget && time.Since(start) > budget/3 {
			break // unlikely to finish another iteration within budget
		}
	}
	return last
}
