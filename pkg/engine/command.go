package engine

import "time"

// Command is the inbound driver vocabulary: UciNewGame, Debug, PositionFrom, Go,
// Stop, PonderHit and Quit. It is sent on the Driver's single inbound queue and
// always processed in the order received.
type Command interface {
	isCommand()
}

// CmdUci requests the engine identify itself (Id) and confirm UCI mode (UciOk).
type CmdUci struct{}

// CmdDebug toggles emission of Debug reports.
type CmdDebug struct {
	On bool
}

// CmdIsReady requests a ReadyOk report once all prior commands have been processed.
type CmdIsReady struct{}

// CmdUciNewGame marks that the next Go begins a new game: tables are cleared before
// that search starts rather than carrying over stale entries from a prior game.
type CmdUciNewGame struct{}

// CmdPositionFrom sets the position to fen (or board/fen.Initial if fen is empty, the
// `startpos` case) and replays moves, in UCI coordinate notation, on top of it. Ignored
// while a search is active.
type CmdPositionFrom struct {
	FEN   string
	Moves []string
}

// CmdGo starts a search with the given parameters. Ignored while a search is active.
type CmdGo struct {
	Params GoParams
}

// CmdStop aborts the active search; the last completed iteration's move is reported.
type CmdStop struct{}

// CmdPonderHit records that the opponent played the predicted ponder move. The driver
// only reports it as a debug line; a search started with Ponder keeps running without
// a time budget until Stop or Quit.
type CmdPonderHit struct{}

// CmdQuit stops any active search and ends the driver's run loop.
type CmdQuit struct{}

func (CmdUci) isCommand()         {}
func (CmdDebug) isCommand()       {}
func (CmdIsReady) isCommand()     {}
func (CmdUciNewGame) isCommand()  {}
func (CmdPositionFrom) isCommand() {}
func (CmdGo) isCommand()          {}
func (CmdStop) isCommand()        {}
func (CmdPonderHit) isCommand()   {}
func (CmdQuit) isCommand()        {}

// GoParams carries the subset of `go` parameters spec section 6.3 names, all optional
// except where the search requires a termination condition to eventually be reached
// (an Infinite search with no DepthLimit/NodeLimit only ends on Stop or Quit).
type GoParams struct {
	// SearchMoves, if non-empty, restricts the root to these UCI moves.
	SearchMoves []string
	// Ponder starts the search in pondering mode: a BestMove is still produced when the
	// search ends, but the caller is expected to have sent PonderHit before relying on it.
	Ponder bool

	WhiteTime, BlackTime           time.Duration
	WhiteIncrement, BlackIncrement time.Duration
	MovesToGo                      int

	DepthLimit int
	NodeLimit  uint64
	MateIn     int
	MoveTime   time.Duration
	Infinite   bool
}
