package board_test

import (
	"math/rand"
	"testing"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/board/fen"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Position {
	t.Helper()
	pos, _, _, _, err := fen.Decode(s)
	require.NoError(t, err)
	return pos
}

// TestMakeUnmakeRoundTrip exercises invariant 1: for every position reachable in a
// random-play trace and every pseudo-legal move, unmake(make(m, P)) == P, bit-for-bit.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}

	r := rand.New(rand.NewSource(1))

	for _, start := range positions {
		pos := mustDecode(t, start)

		for ply := 0; ply < 40; ply++ {
			moves := pos.GenerateMoves(make([]board.Move, 0, 64))
			if len(moves) == 0 {
				break
			}
			m := moves[r.Intn(len(moves))]

			snapshot := *pos
			pos.Make(m)
			pos.Unmake(m)
			require.Equalf(t, snapshot, *pos, "unmake(make(%v)) changed position from %v", m, start)

			// Advance the trace along a legal continuation so later plies exercise
			// deeper positions; legality itself is tested elsewhere.
			legal := pos.LegalMoves(make([]board.Move, 0, 64))
			if len(legal) == 0 {
				break
			}
			pos.Make(legal[r.Intn(len(legal))])
		}
	}
}

// TestZobristConsistency exercises invariant 2: after any sequence of makes from the
// start position, the incrementally updated hash equals a from-scratch recompute,
// for both the full and pawn-only hashes.
func TestZobristConsistency(t *testing.T) {
	z := board.NewZobristTable(42)
	pos := mustDecode(t, fen.Initial)

	full := z.Hash(pos)
	pawn := z.PawnHash(pos)

	r := rand.New(rand.NewSource(7))
	for ply := 0; ply < 60; ply++ {
		moves := pos.LegalMoves(make([]board.Move, 0, 64))
		if len(moves) == 0 {
			break
		}
		m := moves[r.Intn(len(moves))]

		fullDelta, pawnDelta := z.HashXor(pos, m)
		pos.Make(m)
		full ^= fullDelta
		pawn ^= pawnDelta

		require.Equal(t, full, z.Hash(pos), "full hash diverged at ply %v", ply)
		require.Equal(t, pawn, z.PawnHash(pos), "pawn hash diverged at ply %v", ply)
	}
}

// TestLegalIsSubsetOfPseudoLegal exercises invariant 3.
func TestLegalIsSubsetOfPseudoLegal(t *testing.T) {
	pos := mustDecode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	pseudo := pos.GenerateMoves(make([]board.Move, 0, 64))
	legal := pos.LegalMoves(make([]board.Move, 0, 64))

	pseudoSet := make(map[board.Move]bool, len(pseudo))
	for _, m := range pseudo {
		pseudoSet[m] = true
	}
	for _, m := range legal {
		require.True(t, pseudoSet[m], "legal move %v is not pseudo-legal", m)

		pos.Make(m)
		inCheck := pos.IsChecked(m.Turn())
		pos.Unmake(m)
		require.False(t, inCheck, "legal move %v leaves mover in check", m)
	}
}

func TestCastlingGeneration(t *testing.T) {
	t.Run("allowed when clear and unattacked", func(t *testing.T) {
		pos := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		moves := pos.GenerateMoves(make([]board.Move, 0, 64))

		var sawKingSide, sawQueenSide bool
		for _, m := range moves {
			if m.Piece() == board.King && m.IsCastling() {
				switch m.To() {
				case board.G1:
					sawKingSide = true
				case board.C1:
					sawQueenSide = true
				}
			}
		}
		require.True(t, sawKingSide)
		require.True(t, sawQueenSide)
	})

	t.Run("blocked through check", func(t *testing.T) {
		pos := mustDecode(t, "4k3/8/8/8/8/5r2/8/R3K2R w KQ - 0 1") // rook attacks f1, the king's crossing square

		moves := pos.GenerateMoves(make([]board.Move, 0, 64))
		for _, m := range moves {
			if m.IsCastling() && m.To() == board.G1 {
				t.Fatalf("kingside castle generated through attacked path: %v", m)
			}
		}
	})
}

func TestEnPassantGeneration(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	moves := pos.GenerateMoves(make([]board.Move, 0, 64))

	var found bool
	for _, m := range moves {
		if m.IsEnPassant() {
			require.Equal(t, board.E5, m.From())
			require.Equal(t, board.D6, m.To())
			found = true
		}
	}
	require.True(t, found, "expected en passant capture to be generated")
}

func TestPromotionGeneration(t *testing.T) {
	pos := mustDecode(t, "8/3P1k2/8/8/8/8/6K1/8 w - - 0 1")
	moves := pos.GenerateMoves(make([]board.Move, 0, 64))

	promos := map[board.Piece]bool{}
	for _, m := range moves {
		if m.From() == board.D7 && m.To() == board.D8 {
			promos[m.Promotion()] = true
		}
	}
	require.Len(t, promos, 4)
	require.True(t, promos[board.Queen])
	require.True(t, promos[board.Rook])
	require.True(t, promos[board.Bishop])
	require.True(t, promos[board.Knight])
}

func TestHalfmoveClockResets(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/3p4/8/3P4/4K3 w - - 12 10")
	moves := pos.GenerateMoves(make([]board.Move, 0, 64))

	var push board.Move
	for _, m := range moves {
		if m.Piece() == board.Pawn && m.From() == board.D2 && m.To() == board.D3 {
			push = m
		}
	}
	require.False(t, push.IsZero())

	pos.Make(push)
	require.Equal(t, 0, pos.HalfmoveClock())
	pos.Unmake(push)
	require.Equal(t, 12, pos.HalfmoveClock())
}
