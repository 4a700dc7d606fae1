package eval

import "github.com/kestrel-chess/engine/pkg/board"

// Pin represents a pinned piece. A pinned piece cannot move off the attacker's ray
// without exposing target to capture, if the relative value of attacker/target is
// high enough to matter.
type Pin struct {
	Attacker, Pinned, Target board.Square
}

// FindPins returns all pins targeting the given piece kind of side.
func FindPins(pos *board.Position, side board.Color, piece board.Piece) []Pin {
	var ret []Pin

	occ := pos.AllOccupied()
	bb := pos.Piece(side, piece)
	for bb != 0 {
		target := bb.PopLSB()

		// Rook/Queen pins.
		rooks := board.RookAttackboard(occ, target)
		pins := rooks & pos.Occupancy(side)
		for pins != 0 {
			pinned := pins.PopLSB()

			attackers := pos.Piece(side.Opponent(), board.Queen) | pos.Piece(side.Opponent(), board.Rook)
			behind := board.RookAttackboard(occ&^board.BitMask(pinned), target) &^ rooks
			if candidate := behind & attackers; candidate != 0 {
				ret = append(ret, Pin{Attacker: candidate.LastPopSquare(), Pinned: pinned, Target: target})
			}
		}

		// Bishop/Queen pins.
		bishops := board.BishopAttackboard(occ, target)
		pins = bishops & pos.Occupancy(side)
		for pins != 0 {
			pinned := pins.PopLSB()

			attackers := pos.Piece(side.Opponent(), board.Queen) | pos.Piece(side.Opponent(), board.Bishop)
			behind := board.BishopAttackboard(occ&^board.BitMask(pinned), target) &^ bishops
			if candidate := behind & attackers; candidate != 0 {
				ret = append(ret, Pin{Attacker: candidate.LastPopSquare(), Pinned: pinned, Target: target})
			}
		}
	}

	return ret
}
