package engine

import (
	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/search"
)

func toInfoReport(p search.PV) ReportInfo {
	info := ReportInfo{
		Depth:    p.Depth,
		Time:     p.Time,
		Nodes:    p.Nodes,
		HashFull: p.Hash,
		MultiPV:  1,
	}
	if p.Time > 0 {
		info.Nps = uint64(float64(p.Nodes) / p.Time.Seconds())
	}
	if p.Score.IsMateScore() {
		info.IsMate = true
		info.ScoreMate = mateMoves(p.Score)
	} else {
		info.ScoreCP = int(p.Score)
	}
	for _, m := range p.Moves {
		info.PV = append(info.PV, m.String())
	}
	return info
}

func toBestMoveReport(p search.PV) ReportBestMove {
	best := p.BestMove()
	r := ReportBestMove{Move: best.String()}
	if ponder, ok := p.PonderMove(); ok {
		r.Ponder = ponder.String()
		r.HasPonder = true
	}
	return r
}

// mateMoves converts a mate-distance score into a signed mate-in-N-moves count, N
// moves rather than plies and negative when the side to move is the one being mated.
func mateMoves(s board.Score) int {
	if s > 0 {
		return int((board.MateScore - s + 1) / 2)
	}
	return -int((board.MateScore + s + 1) / 2)
}
