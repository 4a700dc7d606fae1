package eval

import (
	"sort"

	"github.com/kestrel-chess/engine/pkg/board"
)

// FindCapture returns the pieces of the given color that directly attack sq, using
// the full-board occupancy (so an attack through another piece of the same ray is
// correctly blocked). The search's move ordering does not call it; it ranks captures
// by MVV-LVA alone.
func FindCapture(pos *board.Position, side board.Color, sq board.Square) []board.Placement {
	var ret []board.Placement

	occ := pos.AllOccupied()
	for _, piece := range []board.Piece{board.King, board.Queen, board.Rook, board.Knight, board.Bishop} {
		bb := board.Attackboard(occ, sq, piece) & pos.Piece(side, piece)
		for bb != 0 {
			from := bb.PopLSB()
			ret = append(ret, board.Placement{Piece: piece, Color: side, Square: from})
		}
	}
	// A pawn of side attacks sq iff sq is one of the squares that side's pawns
	// capture onto from some origin -- equivalently, the squares the opponent's
	// pawns would capture onto from sq.
	bb := board.PawnCaptureboard(side.Opponent(), board.BitMask(sq)) & pos.Piece(side, board.Pawn)
	for bb != 0 {
		from := bb.PopLSB()
		ret = append(ret, board.Placement{Piece: board.Pawn, Color: side, Square: from})
	}

	return ret
}

// SortByNominalValue orders the placement list by material value, low to high.
func SortByNominalValue(pieces []board.Placement) []board.Placement {
	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].Piece.Value() < pieces[j].Piece.Value()
	})
	return pieces
}
