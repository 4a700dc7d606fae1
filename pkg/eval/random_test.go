package eval_test

import (
	"context"
	"testing"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/board/fen"
	"github.com/kestrel-chess/engine/pkg/eval"
	"github.com/stretchr/testify/require"
)

func TestRandomZeroValueIsAlwaysZero(t *testing.T) {
	var r eval.Random
	pos := mustDecode(t, fen.Initial)
	require.EqualValues(t, 0, r.Evaluate(context.Background(), pos))
}

func TestRandomStaysWithinLimit(t *testing.T) {
	r := eval.NewRandom(40, 7)
	pos := mustDecode(t, fen.Initial)

	for i := 0; i < 100; i++ {
		n := r.Evaluate(context.Background(), pos)
		require.GreaterOrEqual(t, n, board.Score(-20))
		require.Less(t, n, board.Score(20))
	}
}

func TestRandomIsDeterministicForSeed(t *testing.T) {
	pos := mustDecode(t, fen.Initial)

	a := eval.NewRandom(50, 42)
	b := eval.NewRandom(50, 42)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Evaluate(context.Background(), pos), b.Evaluate(context.Background(), pos))
	}
}
