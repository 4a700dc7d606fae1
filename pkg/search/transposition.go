package search

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/seekerror/logw"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// entry is a single transposition-table slot. recordedHash guards against false
// positives from the table's external collision domain (many positions share a key).
// draft is the remaining draft the score/move were computed to, not the ply from root:
// mate scores are never stored here, so draft alone is enough to judge reusability.
type entry struct {
	recordedHash board.ZobristHash
	draft        int
	value        board.Score
	bound        Bound
	move         board.Move
	valid        bool
}

// TranspositionTable is a fixed-capacity, direct-mapped cache from position hash to a
// previously computed search result. It is owned exclusively by the single search
// thread (spec section on the concurrency model): no locking, no atomics.
//
// Replacement is FIFO by insertion order: with one slot per bucket, any write simply
// evicts whatever currently occupies that slot, which is the literal degenerate case
// of "oldest entry is always what gets evicted".
type TranspositionTable struct {
	entries []entry
	mask    uint64
	used    int
}

// NewTranspositionTable allocates a table sized to roughly size bytes, rounded down to
// a power of two entry count.
func NewTranspositionTable(ctx context.Context, size uint64) *TranspositionTable {
	const entrySize = 40
	n := uint64(1) << (63 - bits.LeadingZeros64(size/entrySize+1))
	if n == 0 {
		n = 1
	}

	logw.Infof(ctx, "Allocating %vMB TT with %v entries", size>>20, n)

	return &TranspositionTable{
		entries: make([]entry, n),
		mask:    n - 1,
	}
}

func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.entries)) * 40
}

func (t *TranspositionTable) Used() float64 {
	return float64(t.used) / float64(len(t.entries))
}

// Read returns the bound, draft, score and best move recorded for hash, if any.
func (t *TranspositionTable) Read(hash board.ZobristHash) (Bound, int, board.Score, board.Move, bool) {
	e := &t.entries[uint64(hash)&t.mask]
	if !e.valid || e.recordedHash != hash {
		return 0, 0, 0, 0, false
	}
	return e.bound, e.draft, e.value, e.move, true
}

// Write stores an entry, unconditionally overwriting whatever previously occupied the
// bucket. Checkmate scores are rejected: they encode a distance from whatever root
// produced them and would be misinterpreted when read back from a different root.
func (t *TranspositionTable) Write(hash board.ZobristHash, bound Bound, draft int, value board.Score, move board.Move) {
	if value.IsMateScore() {
		return
	}

	e := &t.entries[uint64(hash)&t.mask]
	if !e.valid {
		t.used++
	}
	*e = entry{
		recordedHash: hash,
		draft:        draft,
		value:        value,
		bound:        bound,
		move:         move,
		valid:        true,
	}
}

// Clear empties the table, as on UciNewGame.
func (t *TranspositionTable) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.used = 0
}

func (t *TranspositionTable) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}
