package board_test

import (
	"testing"

	"github.com/kestrel-chess/engine/internal/perft"
	"github.com/kestrel-chess/engine/pkg/board/fen"
	"github.com/stretchr/testify/require"
)

// Canonical perft node counts. See https://www.chessprogramming.org/Perft_Results.
func TestPerft(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		counts []uint64
	}{
		{
			"startpos",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			[]uint64{20, 400, 8902, 197281},
		},
		{
			"kiwipete",
			"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			[]uint64{48, 2039, 97862},
		},
		{
			"position3",
			"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			[]uint64{14, 191, 2812, 43238},
		},
		{
			"position4",
			"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			[]uint64{6, 264, 9467},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, _, _, _, err := fen.Decode(tt.fen)
			require.NoError(t, err)

			for depth, want := range tt.counts {
				got := perft.Count(pos, depth+1)
				require.Equalf(t, want, got, "perft(%v) at depth %v", tt.fen, depth+1)
			}
		})
	}
}
