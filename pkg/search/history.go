package search

import "github.com/kestrel-chess/engine/pkg/board"

// historyRingSize bounds the ring; a game running past this many half-moves is not a
// realistic concern for a single search.
const historyRingSize = 5000

// ZobristHistoryRing logs the full hash of the position reached after every half-move
// of the game, indexed by absolute ply from the game's start -- not by plyFromRoot
// within a particular search, since a search must detect repetitions against the real
// game history as well as against positions reached earlier in its own tree.
type ZobristHistoryRing struct {
	hashes [historyRingSize]board.ZobristHash
}

func (h *ZobristHistoryRing) Record(ply int, hash board.ZobristHash) {
	h.hashes[ply%historyRingSize] = hash
}

func (h *ZobristHistoryRing) At(ply int) board.ZobristHash {
	return h.hashes[ply%historyRingSize]
}

// CountRepetitions walks back from currentPly in steps of two (same side to move) down
// to max(0, currentPly-halfmoveClock) and counts occurrences of the hash at currentPly,
// itself included. It stops early once the count reaches three: threefold repetition.
func (h *ZobristHistoryRing) CountRepetitions(currentPly, halfmoveClock int) int {
	hash := h.At(currentPly)

	floor := currentPly - halfmoveClock
	if floor < 0 {
		floor = 0
	}

	count := 1
	for p := currentPly - 2; p >= floor; p -= 2 {
		if h.At(p) == hash {
			count++
			if count >= 3 {
				return count
			}
		}
	}
	return count
}

// DrawScore returns the draw score seen by the side to move at the given plyFromRoot,
// biased by a small contempt term so the search avoids steering into an unfavorable
// draw by repetition. plyFromRoot even means the side to move now is the side on move
// at the root; the sign flips every ply per the usual negamax convention.
func DrawScore(plyFromRoot int, contempt board.Score) board.Score {
	if plyFromRoot%2 == 0 {
		return contempt
	}
	return -contempt
}
