package search

import (
	"math/rand"
	"sort"

	"github.com/kestrel-chess/engine/pkg/board"
)

// Tiers above any possible MVV-LVA score, so PV/TT/killer always sort ahead of capture
// ordering regardless of what the captured/capturing pieces are.
const (
	pvTier     = int64(1) << 48
	ttTier     = int64(1) << 47
	killerTier = int64(1) << 46
)

// orderMoves sorts moves in place: PV move first (if present), then the TT move (if
// present and distinct from PV), then the killer move (if present and distinct from
// both), then the remainder by descending MVV-LVA score. Ties within the MVV-LVA tier
// are broken by rnd, decorrelating otherwise-identical move orders across searches.
func orderMoves(moves []board.Move, pv, tt, killer board.Move, rnd *rand.Rand) {
	key := func(m board.Move) int64 {
		switch {
		case !pv.IsZero() && m.Equals(pv):
			return pvTier
		case !tt.IsZero() && m.Equals(tt):
			return ttTier
		case !killer.IsZero() && m.Equals(killer):
			return killerTier
		default:
			return int64(m.MVVLVAScore())<<10 | int64(rnd.Intn(1<<10))
		}
	}

	keys := make([]int64, len(moves))
	for i, m := range moves {
		keys[i] = key(m)
	}
	sort.Sort(&byKey{moves: moves, keys: keys})
}

type byKey struct {
	moves []board.Move
	keys  []int64
}

func (b *byKey) Len() int      { return len(b.moves) }
func (b *byKey) Swap(i, j int) { b.moves[i], b.moves[j] = b.moves[j], b.moves[i]; b.keys[i], b.keys[j] = b.keys[j], b.keys[i] }
func (b *byKey) Less(i, j int) bool { return b.keys[i] > b.keys[j] }
