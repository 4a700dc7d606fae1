package search

import (
	"context"
	"testing"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/require"
)

func TestIterativeRunRespectsDepthLimit(t *testing.T) {
	s, _ := newSearchOn(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1", 0)
	it := &Iterative{Search: s}

	var depths []int
	pv := it.Run(context.Background(), Options{DepthLimit: lang.Some(1)}, func(p PV) { depths = append(depths, p.Depth) })

	require.Equal(t, 1, pv.Depth)
	require.NotEmpty(t, pv.Moves)
	for _, d := range depths {
		require.LessOrEqual(t, d, 1)
	}
}

func TestIterativeRunStopsOnMateFound(t *testing.T) {
	s, _ := newSearchOn(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1", 0)
	it := &Iterative{Search: s}

	pv := it.Run(context.Background(), Options{DepthLimit: lang.Some(20)}, nil)

	require.True(t, pv.Score.IsMateScore())
	require.Equal(t, board.A1, pv.Moves[0].From())
	require.Equal(t, board.A8, pv.Moves[0].To())
}
