package engine

import (
	"context"
	"testing"
	"time"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/board/fen"
	"github.com/kestrel-chess/engine/pkg/eval"
	"github.com/stretchr/testify/require"
)

func TestToSearchOptionsPicksOwnClockByTurn(t *testing.T) {
	whitePos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	d := &Driver{pos: whitePos}

	opt := d.toSearchOptions(GoParams{WhiteTime: 5 * time.Second, BlackTime: 9 * time.Second})
	tc, ok := opt.TimeControl.V()
	require.True(t, ok)
	require.Equal(t, 5*time.Second, tc.Time)

	blackPos, _, _, _, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	require.NoError(t, err)
	d = &Driver{pos: blackPos}

	opt = d.toSearchOptions(GoParams{WhiteTime: 5 * time.Second, BlackTime: 9 * time.Second})
	tc, ok = opt.TimeControl.V()
	require.True(t, ok)
	require.Equal(t, 9*time.Second, tc.Time)
}

func TestToSearchOptionsInfiniteSkipsTimeControl(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	d := &Driver{pos: pos}

	opt := d.toSearchOptions(GoParams{Infinite: true, WhiteTime: 5 * time.Second})
	_, ok := opt.TimeControl.V()
	require.False(t, ok)
	require.True(t, opt.Infinite)
}

func TestToSearchOptionsMateInSetsDepthLimit(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	d := &Driver{pos: pos}

	opt := d.toSearchOptions(GoParams{MateIn: 3})
	depth, ok := opt.DepthLimit.V()
	require.True(t, ok)
	require.Equal(t, 6, depth)
}

func TestWithNoiseConfiguresDriver(t *testing.T) {
	d := New("kestrel", "test", func(Report) {}, WithNoise(40, 1))
	want := eval.NewRandom(40, 1)
	require.Equal(t, want.Evaluate(context.Background(), d.pos), d.noise.Evaluate(context.Background(), d.pos))
}

func TestToSearchOptionsFiltersIllegalSearchMoves(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	d := &Driver{pos: pos}

	opt := d.toSearchOptions(GoParams{SearchMoves: []string{"e2e4", "e2e5"}})
	require.Len(t, opt.SearchMoves, 1)
	require.Equal(t, board.E2, opt.SearchMoves[0].From())
	require.Equal(t, board.E4, opt.SearchMoves[0].To())
}
