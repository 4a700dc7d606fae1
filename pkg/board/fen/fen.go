// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kestrel-chess/engine/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode returns a new position and game status from a FEN description.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (*board.Position, board.Color, int, int, error) {
	// A FEN record contains six space-separated fields.

	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of sections in FEN: '%v'", fen)
	}

	// (1) Piece placement (from white's perspective): rank 8 first, slash-separated,
	// each rank described file a through file h. Digits 1..8 denote runs of empty
	// squares; two adjacent digits, or a rank that does not sum to 8 squares, are
	// rejected.

	rows := strings.Split(parts[0], "/")
	if len(rows) != int(board.NumRanks) {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of ranks in FEN: '%v'", fen)
	}

	var pieces []board.Placement
	for i, row := range rows {
		rank := board.Rank(int(board.NumRanks) - 1 - i)
		file := 0
		prevDigit := false
		for _, r := range row {
			switch {
			case unicode.IsDigit(r):
				if prevDigit {
					return nil, 0, 0, 0, fmt.Errorf("adjacent digits in FEN rank: '%v'", row)
				}
				prevDigit = true
				file += int(r - '0')

			case unicode.IsLetter(r):
				prevDigit = false
				color, piece, ok := parsePiece(r)
				if !ok {
					return nil, 0, 0, 0, fmt.Errorf("invalid piece '%v' in FEN: '%v'", r, fen)
				}
				if file >= int(board.NumFiles) {
					return nil, 0, 0, 0, fmt.Errorf("rank overflows in FEN: '%v'", row)
				}
				pieces = append(pieces, board.Placement{Square: board.NewSquare(board.File(file), rank), Color: color, Piece: piece})
				file++

			default:
				return nil, 0, 0, 0, fmt.Errorf("invalid character in FEN: '%v'", fen)
			}
		}
		if file != int(board.NumFiles) {
			return nil, 0, 0, 0, fmt.Errorf("rank does not sum to 8 in FEN: '%v'", row)
		}
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid active color in FEN: '%v'", fen)
	}

	// (3) Castling availability. "-" or one or more of "KQkq".

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid castling in FEN: '%v'", fen)
	}

	// (4) En passant target square, or "-".

	var ep board.Square
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("invalid en passant in FEN: '%v'", fen)
		}
		ep = sq
	}

	// (5) Halfmove clock: halfmoves since the last pawn advance or capture.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return nil, 0, 0, 0, fmt.Errorf("invalid halfmove in FEN: '%v'", fen)
	}

	// (6) Fullmove number: starts at 1, incremented after Black's move.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 0 {
		return nil, 0, 0, 0, fmt.Errorf("invalid full moves in FEN: '%v'", fen)
	}

	pos, err := board.NewPosition(pieces, active, castling, ep, np, fm)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid position in FEN: '%v': %w", fen, err)
	}
	return pos, active, np, fm, nil
}

// Encode encodes the position and game data in FEN notation.
func Encode(pos *board.Position, c board.Color, noprogress, fullmoves int) string {
	var sb strings.Builder
	for i := 0; i < int(board.NumRanks); i++ {
		rank := board.Rank(int(board.NumRanks) - 1 - i)
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, rank))
			if !ok {
				blanks++
				continue
			}

			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}

		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < int(board.NumRanks)-1 {
			sb.WriteString("/")
		}
	}

	turn := printColor(c)
	castling := printCastling(pos.Castling())

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, castling, ep, noprogress, fullmoves)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}

	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	if unicode.IsUpper(r) {
		p, ok := board.ParsePiece(r)
		return board.White, p, ok
	}
	p, ok := board.ParsePiece(r)
	return board.Black, p, ok
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
