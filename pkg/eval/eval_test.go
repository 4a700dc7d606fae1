package eval_test

import (
	"testing"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/board/fen"
	"github.com/kestrel-chess/engine/pkg/eval"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Position {
	t.Helper()
	pos, _, _, _, err := fen.Decode(s)
	require.NoError(t, err)
	return pos
}

func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	require.EqualValues(t, 0, eval.Evaluate(pos, nil, nil))
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a queen.
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	score := eval.Evaluate(pos, nil, nil)
	require.Greater(t, score, board.Score(800))
}

func TestEvaluateCheckmate(t *testing.T) {
	// Fool's mate: Black has just delivered checkmate, White to move with no escape.
	pos := mustDecode(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	score := eval.Evaluate(pos, nil, nil)
	require.True(t, score.IsMateScore())
	require.Less(t, score, board.Score(0), "White is mated, score should favor Black")
}

func TestEvaluateStalemateIsDraw(t *testing.T) {
	// Classic stalemate: Black king boxed in with no legal move and not in check.
	pos := mustDecode(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.EqualValues(t, 0, eval.Evaluate(pos, nil, nil))
}

func TestEvaluateFiftyMoveIsDraw(t *testing.T) {
	// White is up a queen but the halfmove clock has already reached the limit.
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 50 80")
	require.EqualValues(t, 0, eval.Evaluate(pos, nil, nil))
}

func TestEvaluateWithPawnCacheMatchesUncached(t *testing.T) {
	z := board.NewZobristTable(1)
	cache := eval.NewPawnCache(8)

	positions := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, s := range positions {
		pos := mustDecode(t, s)
		want := eval.Evaluate(pos, nil, nil)
		got := eval.Evaluate(pos, z, cache)
		require.Equal(t, want, got, "cached and uncached evaluation diverged for %v", s)

		// Second call must hit the cache and still agree.
		got2 := eval.Evaluate(pos, z, cache)
		require.Equal(t, want, got2)
	}
}

func TestFindCaptureFindsDirectAttackers(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/3r4/8/8/3R4/4K3 w - - 0 1")
	attackers := eval.FindCapture(pos, board.White, board.D5)
	require.Len(t, attackers, 1)
	require.Equal(t, board.Rook, attackers[0].Piece)
	require.Equal(t, board.D2, attackers[0].Square)
}

func TestFindPinsDetectsAbsolutePin(t *testing.T) {
	// White rook on d1 pins the black knight on d5 against the black king on d8.
	pos := mustDecode(t, "3k4/8/8/3n4/8/8/8/3R1K2 w - - 0 1")
	pins := eval.FindPins(pos, board.Black, board.King)
	require.Len(t, pins, 1)
	require.Equal(t, board.D5, pins[0].Pinned)
	require.Equal(t, board.D1, pins[0].Attacker)
	require.Equal(t, board.D8, pins[0].Target)
}
