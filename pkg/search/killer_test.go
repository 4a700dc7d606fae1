package search

import (
	"testing"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/stretchr/testify/require"
)

func TestKillerTableRecordAndAt(t *testing.T) {
	var k KillerTable
	require.EqualValues(t, 0, k.At(3))

	m := board.Move(42)
	k.Record(3, m)
	require.Equal(t, m, k.At(3))
	require.EqualValues(t, 0, k.At(4), "killers are per-draft, not shared across drafts")
}

func TestKillerTableAgeShiftsByTwoDrafts(t *testing.T) {
	var k KillerTable
	m5, m7 := board.Move(5), board.Move(7)
	k.Record(5, m5)
	k.Record(7, m7)

	k.Age()

	require.Equal(t, m5, k.At(3), "draft 5 killer ages into draft 3")
	require.Equal(t, m7, k.At(5), "draft 7 killer ages into draft 5")
	require.EqualValues(t, 0, k.At(7), "draft 7 is empty: nothing was recorded at draft 9")
}

func TestKillerTableClampsOutOfRangeDraft(t *testing.T) {
	var k KillerTable
	m := board.Move(1)
	k.Record(-1, m)
	require.Equal(t, m, k.At(0))

	k.Record(maxKillerDraft+50, m)
	require.Equal(t, m, k.At(maxKillerDraft-1))
}
