package search

import "github.com/kestrel-chess/engine/pkg/board"

// maxKillerDraft bounds the remaining-draft index; searches deeper than this share the
// last slot, which only matters for depths well beyond any practical time control.
const maxKillerDraft = 128

// KillerTable records, per remaining draft to leaves, the quiet move that most recently
// caused a beta cutoff at that draft. The orderer places it right after the TT move.
type KillerTable struct {
	moves [maxKillerDraft]board.Move
}

func clampDraft(draft int) int {
	if draft < 0 {
		return 0
	}
	if draft >= maxKillerDraft {
		return maxKillerDraft - 1
	}
	return draft
}

// At returns the killer move recorded for the given remaining draft, if any.
func (k *KillerTable) At(draft int) board.Move {
	return k.moves[clampDraft(draft)]
}

// Record stores move as the killer for the given remaining draft.
func (k *KillerTable) Record(draft int, move board.Move) {
	k.moves[clampDraft(draft)] = move
}

// Age shifts every entry two drafts shallower, reflecting that the game has advanced by
// up to two plies since the table was last used. Called once at the start of a search.
func (k *KillerTable) Age() {
	var aged [maxKillerDraft]board.Move
	for draft := 2; draft < maxKillerDraft; draft++ {
		aged[draft-2] = k.moves[draft]
	}
	k.moves = aged
}
