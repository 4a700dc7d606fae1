package eval

import (
	"context"
	"math/rand"

	"github.com/kestrel-chess/engine/pkg/board"
)

// Random is a randomized noise generator, used to add a small amount of randomness
// to evaluations so repeated self-play doesn't always pick the same line. limit is
// the range, in centipawns, over which the noise is drawn: [-limit/2, limit-limit/2)
// in integer division, e.g. -20..19 for limit 40. The zero value always returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, pos *board.Position) board.Score {
	if n.limit <= 0 {
		return 0
	}
	return board.Score(n.rand.Intn(n.limit) - n.limit/2)
}
