package eval

import "github.com/kestrel-chess/engine/pkg/board"

// PawnCache is a direct-mapped, hash-keyed cache of the pawn-only evaluation
// contribution for a position. Entries are overwritten on index collision rather
// than chained: a pawn structure is cheap enough to recompute that a miss merely
// costs one pawnScore call, so there is no need for the probing or generation
// bookkeeping a full transposition table uses.
type PawnCache struct {
	entries []pawnCacheEntry
	mask    uint64
}

type pawnCacheEntry struct {
	hash  board.ZobristHash
	valid bool
	score board.Score
}

// NewPawnCache allocates a cache with 2^bits entries.
func NewPawnCache(bits uint) *PawnCache {
	n := uint64(1) << bits
	return &PawnCache{
		entries: make([]pawnCacheEntry, n),
		mask:    n - 1,
	}
}

func (c *PawnCache) lookup(hash board.ZobristHash) (board.Score, bool) {
	e := &c.entries[uint64(hash)&c.mask]
	if e.valid && e.hash == hash {
		return e.score, true
	}
	return 0, false
}

func (c *PawnCache) store(hash board.ZobristHash, score board.Score) {
	e := &c.entries[uint64(hash)&c.mask]
	e.hash = hash
	e.valid = true
	e.score = score
}
