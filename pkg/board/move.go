package board

import "fmt"

// Move represents a not-necessarily-legal move packed into a 64-bit record, plus a
// separate 32-bit MVV-LVA ordering score. The packing is lossless: unmake needs
// nothing from the position that is not already carried in the move. Bit layout is
// private; treat Move as an opaque value outside this file.
type Move uint64

// Bit layout (LSB first). Total 53 bits used of 64.
const (
	moveFromShift    = 0  // 6 bits: source square
	moveToShift      = 6  // 6 bits: target square
	movePieceShift   = 12 // 3 bits: piece moved
	moveCaptureShift = 15 // 3 bits: piece captured (0 = none)
	movePromoShift   = 18 // 3 bits: promotion piece (0 = none)
	moveRightsShift  = 21 // 4 bits: castling rights lost by this move
	moveCastleShift  = 25 // 1 bit:  is a castling move
	moveEPCaptShift  = 26 // 1 bit:  is an en passant capture
	moveResetShift   = 27 // 1 bit:  resets the halfmove clock
	moveTurnShift    = 28 // 1 bit:  side to move at the time of the move
	movePrevEPShift  = 29 // 6 bits: previous en passant square (0 = none)
	moveNextEPShift  = 35 // 6 bits: next en passant square (0 = none)
	movePrevClkShift = 41 // 12 bits: previous halfmove clock

	mask1  = 0x1
	mask3  = 0x7
	mask4  = 0xf
	mask6  = 0x3f
	mask12 = 0xfff
)

// moveFields bundles the semantic fields used to construct a Move. All fields are
// filled in by the move generator (§4.4) so that unmake (§4.5) is self-contained.
type moveFields struct {
	From, To       Square
	Piece, Capture Piece
	Promotion      Piece
	RightsLost     Castling
	IsCastling     bool
	IsEnPassant    bool
	ResetsHalfmove bool
	Turn           Color
	PrevEP, NextEP Square
	PrevHalfmove   int
}

func newMove(f moveFields) Move {
	var m uint64
	m |= uint64(f.From) << moveFromShift
	m |= uint64(f.To) << moveToShift
	m |= uint64(f.Piece) << movePieceShift
	m |= uint64(f.Capture) << moveCaptureShift
	m |= uint64(f.Promotion) << movePromoShift
	m |= uint64(f.RightsLost) << moveRightsShift
	m |= b2u(f.IsCastling) << moveCastleShift
	m |= b2u(f.IsEnPassant) << moveEPCaptShift
	m |= b2u(f.ResetsHalfmove) << moveResetShift
	m |= uint64(f.Turn) << moveTurnShift
	m |= uint64(f.PrevEP) << movePrevEPShift
	m |= uint64(f.NextEP) << moveNextEPShift
	m |= uint64(f.PrevHalfmove&mask12) << movePrevClkShift
	return Move(m)
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func (m Move) From() Square     { return Square(uint64(m) >> moveFromShift & mask6) }
func (m Move) To() Square       { return Square(uint64(m) >> moveToShift & mask6) }
func (m Move) Piece() Piece     { return Piece(uint64(m) >> movePieceShift & mask3) }
func (m Move) Capture() Piece   { return Piece(uint64(m) >> moveCaptureShift & mask3) }
func (m Move) Promotion() Piece { return Piece(uint64(m) >> movePromoShift & mask3) }
func (m Move) RightsLost() Castling {
	return Castling(uint64(m) >> moveRightsShift & mask4)
}
func (m Move) IsCastling() bool  { return uint64(m)>>moveCastleShift&mask1 != 0 }
func (m Move) IsEnPassant() bool { return uint64(m)>>moveEPCaptShift&mask1 != 0 }
func (m Move) ResetsHalfmove() bool {
	return uint64(m)>>moveResetShift&mask1 != 0
}
func (m Move) Turn() Color { return Color(uint64(m) >> moveTurnShift & mask1) }
func (m Move) PrevEnPassant() (Square, bool) {
	sq := Square(uint64(m) >> movePrevEPShift & mask6)
	return sq, sq != ZeroSquare
}
func (m Move) NextEnPassant() (Square, bool) {
	sq := Square(uint64(m) >> moveNextEPShift & mask6)
	return sq, sq != ZeroSquare
}
func (m Move) PrevHalfmoveClock() int {
	return int(uint64(m) >> movePrevClkShift & mask12)
}

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Capture() != NoPiece
}

// IsQuiet reports whether the move is neither a capture nor a promotion: the kind
// of move eligible to be stored as a killer.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && m.Promotion() == NoPiece
}

// IsZero reports whether this is the zero-value Move, used as an absent-move sentinel.
func (m Move) IsZero() bool {
	return m == 0
}

// EnPassantCaptureSquare returns the square of the pawn captured en passant, valid
// only when IsEnPassant() is true: one square behind the target square.
func (m Move) EnPassantCaptureSquare() Square {
	to := m.To()
	if m.Turn() == White {
		return NewSquare(to.File(), to.Rank()-1)
	}
	return NewSquare(to.File(), to.Rank()+1)
}

// CastlingRookMove returns the rook's from/to squares for a castling move.
func (m Move) CastlingRookMove() (from, to Square) {
	switch m.To() {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	default:
		panic("not a castling move")
	}
}

// MVVLVAScore returns the MVV-LVA ordering score: (victim value << 8) - attacker value.
// Victims that are the king or "no piece" score 0 -- king captures are illegal, and the
// value is then irrelevant to ordering other than ranking below real captures.
func (m Move) MVVLVAScore() int32 {
	victim := m.Capture()
	var v Score
	if victim != NoPiece && victim != King {
		v = victim.Value()
	}
	return int32(v)<<8 - int32(m.Piece().Value())
}

// Equals reports whether two moves agree on from/to/promotion -- the UCI-visible
// identity of a move, ignoring packed bookkeeping fields that vary by context.
func (m Move) Equals(o Move) bool {
	return m.From() == o.From() && m.To() == o.To() && m.Promotion() == o.Promotion()
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or
// "a7a8q". The parsed move carries no contextual information (castling rights lost,
// en passant, etc); it is only valid for comparison against generated moves via Equals.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return 0, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return 0, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return 0, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	var promo Piece
	if len(runes) == 5 {
		p, ok := ParsePiece(runes[4])
		if !ok || p == Pawn || p == King {
			return 0, fmt.Errorf("invalid promotion: '%v'", str)
		}
		promo = p
	}

	return newMove(moveFields{From: from, To: to, Promotion: promo}), nil
}

func (m Move) String() string {
	if m.IsZero() {
		return "0000"
	}
	if m.Promotion() != NoPiece {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), m.Promotion())
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}
