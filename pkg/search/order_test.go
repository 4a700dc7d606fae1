package search

import (
	"math/rand"
	"testing"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/board/fen"
	"github.com/stretchr/testify/require"
)

func TestOrderMovesPrefersPVThenTTThenKiller(t *testing.T) {
	pv, tt, killer, other1, other2 := board.Move(1), board.Move(2), board.Move(3), board.Move(4), board.Move(5)
	moves := []board.Move{other2, killer, other1, tt, pv}

	orderMoves(moves, pv, tt, killer, rand.New(rand.NewSource(1)))

	require.Equal(t, pv, moves[0])
	require.Equal(t, tt, moves[1])
	require.Equal(t, killer, moves[2])
}

func TestOrderMovesCollapsesDuplicateHints(t *testing.T) {
	// TT move happens to equal the killer move: it must not appear twice at the front.
	shared, pv, other := board.Move(9), board.Move(1), board.Move(2)
	moves := []board.Move{other, shared, pv}

	orderMoves(moves, pv, shared, shared, rand.New(rand.NewSource(1)))

	require.Equal(t, pv, moves[0])
	require.Equal(t, shared, moves[1])
}

func TestOrderMovesSortsRemainderByMVVLVADescending(t *testing.T) {
	// White pawn on d3 can capture either the pawn on c4 or the rook on e4: same
	// attacker, different victims, so MVV-LVA must rank the rook capture first.
	pos, _, _, _, err := fen.Decode("4k3/8/8/8/2p1r3/3P4/8/4K3 w - - 0 1")
	require.NoError(t, err)

	moves := pos.GenerateCaptures(make([]board.Move, 0, 8))
	require.Len(t, moves, 2)

	var takesRook, takesPawn board.Move
	for _, m := range moves {
		switch m.To() {
		case board.E4:
			takesRook = m
		case board.C4:
			takesPawn = m
		}
	}
	require.NotZero(t, takesRook)
	require.NotZero(t, takesPawn)

	orderMoves(moves, 0, 0, 0, rand.New(rand.NewSource(1)))
	require.Equal(t, takesRook, moves[0], "capturing the rook must outrank capturing a pawn")
}
