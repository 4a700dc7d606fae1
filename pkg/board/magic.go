package board

// Magic multiplier tables for rook/bishop sliding attacks. Square s's relevant-occupancy
// mask picks out the squares (excluding edges) whose occupancy can affect the slider's
// attack set from s; multiplying the masked occupancy by the square's magic constant and
// shifting right by (64 - relevantBits) produces a perfect hash into a 2^relevantBits
// attack table. The multipliers below are fixed constants taken from existing magic
// tables; this module contains no generator for them, and they are not regenerated at
// engine start.
//
// Square numbering here (A1=0 .. H8=63, file varies fastest) matches the layout these
// constants were generated against.

var bishopMagics = [64]uint64{
	0x11410121040100, 0x2084820928010, 0xa010208481080040, 0x214240082000610,
	0x4d104000400480, 0x1012010804408, 0x42044101452000c, 0x2844804050104880,
	0x814204290a0a00, 0x10280688224500, 0x1080410101010084, 0x10020a108408004,
	0x2482020210c80080, 0x480104a0040400, 0x411006404200810, 0x1024010908024292,
	0x1004401001011a, 0x810006081220080, 0x1040404206004100, 0x58080000820041ce,
	0x3406000422010890, 0x1a004100520210, 0x202a000048040400, 0x225004441180110,
	0x8064240102240, 0x1424200404010402, 0x1041100041024200, 0x8082002012008200,
	0x1010008104000, 0x8808004000806000, 0x380a000080c400, 0x31040100042d0101,
	0x110109008082220, 0x4010880204201, 0x4006462082100300, 0x4002010040140041,
	0x40090200250880, 0x2010100c40c08040, 0x12800ac01910104, 0x10b20051020100,
	0x210894104828c000, 0x50440220004800, 0x1002011044180800, 0x4220404010410204,
	0x1002204a2020401, 0x21021001000210, 0x4880081009402, 0xc208088c088e0040,
	0x4188464200080, 0x3810440618022200, 0xc020310401040420, 0x2000008208800e0,
	0x4c910240020, 0x425100a8602a0, 0x20c4206a0c030510, 0x4c10010801184000,
	0x200202020a026200, 0x6000004400841080, 0xc14004121082200, 0x400324804208800,
	0x1802200040504100, 0x1820000848488820, 0x8620682a908400, 0x8010600084204240,
}

var rookMagics = [64]uint64{
	0x2080008040002010, 0x40200010004000, 0x100090010200040, 0x2080080010000480,
	0x880040080080102, 0x8200106200042108, 0x410041000408b200, 0x100009a00402100,
	0x5800800020804000, 0x848404010002000, 0x101001820010041, 0x10a0040100420080,
	0x8a02002006001008, 0x926000844110200, 0x8000800200800100, 0x28060001008c2042,
	0x10818002204000, 0x10004020004001, 0x110002008002400, 0x11a020010082040,
	0x2001010008000410, 0x42010100080400, 0x4004040008020110, 0x820000840041,
	0x400080208000, 0x2080200040005000, 0x8000200080100080, 0x4400080180500080,
	0x4900080080040080, 0x4004004480020080, 0x8006000200040108, 0xc481000100006396,
	0x1000400080800020, 0x201004400040, 0x10008010802000, 0x204012000a00,
	0x800400800802, 0x284000200800480, 0x3000403000200, 0x840a6000514,
	0x4080c000228012, 0x10002000444010, 0x620001000808020, 0xc210010010009,
	0x100c001008010100, 0xc10020004008080, 0x20100802040001, 0x808008305420014,
	0xc010800840043080, 0x208401020890100, 0x10b0081020028280, 0x6087001001220900,
	0xc080011000500, 0x9810200040080, 0x2000010882100400, 0x2000050880540200,
	0x800020104200810a, 0x6220250242008016, 0x9180402202900a, 0x40210500100009,
	0x6000814102026, 0x410100080a040013, 0x10405008022d1184, 0x1000009400410822,
}

var bishopRelevantBits = [64]uint{
	6, 5, 5, 5, 5, 5, 5, 6,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5,
	6, 5, 5, 5, 5, 5, 5, 6,
}

var rookRelevantBits = [64]uint{
	12, 11, 11, 11, 11, 11, 11, 12,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	12, 11, 11, 11, 11, 11, 11, 12,
}

var (
	bishopMask [NumSquares]Bitboard
	rookMask   [NumSquares]Bitboard

	bishopAttackTable [NumSquares][]Bitboard
	rookAttackTable   [NumSquares][]Bitboard
)

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		bishopMask[sq] = slidingRelevantOccupancy(sq, bishopDirs)
		rookMask[sq] = slidingRelevantOccupancy(sq, rookDirs)

		bishopAttackTable[sq] = make([]Bitboard, 1<<bishopRelevantBits[sq])
		rookAttackTable[sq] = make([]Bitboard, 1<<rookRelevantBits[sq])

		fillMagicTable(sq, bishopMask[sq], bishopMagics[sq], bishopRelevantBits[sq], bishopDirs, bishopAttackTable[sq])
		fillMagicTable(sq, rookMask[sq], rookMagics[sq], rookRelevantBits[sq], rookDirs, rookAttackTable[sq])
	}
}

type direction struct{ df, dr int }

var (
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// slidingRelevantOccupancy returns the mask of squares (excluding board edges) whose
// occupancy affects the slider's attacks from sq, ray-traced along dirs.
func slidingRelevantOccupancy(sq Square, dirs []direction) Bitboard {
	var mask Bitboard
	f, r := int(sq.File()), int(sq.Rank())
	for _, d := range dirs {
		cf, cr := f+d.df, r+d.dr
		for onBoardInterior(cf, cr) {
			mask |= BitMask(NewSquare(File(cf), Rank(cr)))
			cf += d.df
			cr += d.dr
		}
	}
	return mask
}

func onBoardInterior(f, r int) bool {
	return f >= 1 && f <= 6 && r >= 1 && r <= 6
}

func onBoard(f, r int) bool {
	return f >= 0 && f <= 7 && r >= 0 && r <= 7
}

// slidingAttacks ray-traces the slider's attacks from sq against a concrete occupancy,
// including the first blocker (if any) but no squares beyond it.
func slidingAttacks(sq Square, occ Bitboard, dirs []direction) Bitboard {
	var attacks Bitboard
	f, r := int(sq.File()), int(sq.Rank())
	for _, d := range dirs {
		cf, cr := f+d.df, r+d.dr
		for onBoard(cf, cr) {
			target := NewSquare(File(cf), Rank(cr))
			attacks |= BitMask(target)
			if occ.IsSet(target) {
				break
			}
			cf += d.df
			cr += d.dr
		}
	}
	return attacks
}

// fillMagicTable populates table, indexed by the magic hash of every occupancy subset
// of mask, with the corresponding ray-traced attack set.
func fillMagicTable(sq Square, mask Bitboard, magic uint64, bits uint, dirs []direction, table []Bitboard) {
	n := mask.PopCount()
	for i := 0; i < 1<<n; i++ {
		occ := indexToOccupancy(i, mask)
		hash := (uint64(occ) * magic) >> (64 - bits)
		table[hash] = slidingAttacks(sq, occ, dirs)
	}
}

// indexToOccupancy maps an integer in [0, 2^popcount(mask)) to the corresponding subset
// of mask's set bits.
func indexToOccupancy(index int, mask Bitboard) Bitboard {
	var occ Bitboard
	bits := mask
	for i := 0; bits != 0; i++ {
		sq := bits.PopLSB()
		if index&(1<<i) != 0 {
			occ |= BitMask(sq)
		}
	}
	return occ
}

// RookAttackboard returns all potential moves/attacks for a Rook at the given square,
// given the full-board occupancy.
func RookAttackboard(occ Bitboard, sq Square) Bitboard {
	masked := occ & rookMask[sq]
	hash := (uint64(masked) * rookMagics[sq]) >> (64 - rookRelevantBits[sq])
	return rookAttackTable[sq][hash]
}

// BishopAttackboard returns all potential moves/attacks for a Bishop at the given
// square, given the full-board occupancy.
func BishopAttackboard(occ Bitboard, sq Square) Bitboard {
	masked := occ & bishopMask[sq]
	hash := (uint64(masked) * bishopMagics[sq]) >> (64 - bishopRelevantBits[sq])
	return bishopAttackTable[sq][hash]
}
