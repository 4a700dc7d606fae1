package engine

import "time"

// Report is the outbound driver vocabulary: Id/UciOk/ReadyOk, Info, BestMove, Debug.
// Reports are delivered synchronously, from the search thread, to the callback given
// to New; the callback must be safe to invoke from that thread.
type Report interface {
	isReport()
}

// ReportId answers CmdUci with the engine's identity.
type ReportId struct {
	Name, Author string
}

// ReportUciOk answers CmdUci, sent once Id has been delivered.
type ReportUciOk struct{}

// ReportReadyOk answers CmdIsReady.
type ReportReadyOk struct{}

// ReportInfo carries interim or final search statistics for the active Go, emitted at
// the node-checkpoint cadence and once more per completed iteration.
type ReportInfo struct {
	Depth, SelDepth int
	Time            time.Duration
	Nodes           uint64
	Nps             uint64
	HashFull        float64
	MultiPV         int
	PV              []string

	// Score is reported either as a centipawn value or, when IsMate is true, as a
	// mate-in-N-moves count (negative if the side to move is being mated).
	ScoreCP      int
	ScoreMate    int
	IsMate       bool
	LowerBound   bool
	UpperBound   bool

	CurrMove string
	Strings  []string
}

// ReportBestMove is emitted exactly once per CmdGo, after the search terminates by
// depth limit, move time, node limit or CmdStop.
type ReportBestMove struct {
	Move       string
	Ponder     string
	HasPonder  bool
}

// ReportDebug carries a human-readable diagnostic string, emitted only while debug
// mode (CmdDebug{On: true}) is active.
type ReportDebug struct {
	Text string
}

func (ReportId) isReport()       {}
func (ReportUciOk) isReport()    {}
func (ReportReadyOk) isReport()  {}
func (ReportInfo) isReport()     {}
func (ReportBestMove) isReport() {}
func (ReportDebug) isReport()    {}
