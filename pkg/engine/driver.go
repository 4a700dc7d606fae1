// Package engine implements the search driver: a single dedicated search thread
// reading a typed inbound command queue and writing typed reports to a callback,
// per the Idle/Searching state machine. It owns no text protocol -- UCI and any
// other textual front end are external collaborators built on this vocabulary.
package engine

import (
	"context"
	"fmt"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/board/fen"
	"github.com/kestrel-chess/engine/pkg/eval"
	"github.com/kestrel-chess/engine/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Option configures a Driver at construction.
type Option func(*Driver)

// WithHash sets the transposition table size, in megabytes.
func WithHash(mb uint) Option {
	return func(d *Driver) {
		d.hashMB = mb
	}
}

// WithContempt sets the score, in centipawns from the side-to-move's perspective,
// assigned to a draw by repetition or a stalemate found in the search. Fifty-move
// draws take the static evaluation's score of 0 instead.
func WithContempt(contempt board.Score) Option {
	return func(d *Driver) {
		d.contempt = contempt
	}
}

// WithZobristSeed overrides the default (zero) Zobrist random seed.
func WithZobristSeed(seed int64) Option {
	return func(d *Driver) {
		d.seed = seed
	}
}

// WithPawnCacheBits sets the pawn evaluation cache size to 2^bits entries. Zero
// (the default) disables the pawn cache.
func WithPawnCacheBits(bits uint) Option {
	return func(d *Driver) {
		d.pawnCacheBits = bits
	}
}

// WithNoise perturbs the static evaluation by up to +/-limit/2 centipawns, drawn
// from seed, so that repeated self-play doesn't collapse onto the same line every
// game. Zero (the default) disables it.
func WithNoise(limit int, seed int64) Option {
	return func(d *Driver) {
		d.noise = eval.NewRandom(limit, seed)
	}
}

// Driver is the engine's single dedicated search thread: it owns the Position,
// tables and history ring exclusively while running, and is the only consumer and
// producer of its inbound/outbound channels.
type Driver struct {
	name, author string
	report       func(Report)

	hashMB        uint
	contempt      board.Score
	seed          int64
	pawnCacheBits uint
	noise         eval.Random

	zobrist *board.ZobristTable
	tt      *search.TranspositionTable
	killers *search.KillerTable
	history *search.ZobristHistoryRing
	cache   *eval.PawnCache

	pos     *board.Position
	rootPly int
	lastPV  []board.Move

	debug   bool
	newGame bool

	cmds chan Command
}

// New constructs a Driver. report is invoked synchronously from the driver's single
// goroutine (Run) for every outbound message; it must not block indefinitely.
func New(name, author string, report func(Report), opts ...Option) *Driver {
	d := &Driver{
		name:   name,
		author: author,
		report: report,
		cmds:   make(chan Command, 16),
	}
	for _, fn := range opts {
		fn(d)
	}
	if d.hashMB == 0 {
		d.hashMB = 16
	}

	d.zobrist = board.NewZobristTable(d.seed)
	d.killers = &search.KillerTable{}
	d.history = &search.ZobristHistoryRing{}
	d.tt = search.NewTranspositionTable(context.Background(), uint64(d.hashMB)<<20)
	if d.pawnCacheBits > 0 {
		d.cache = eval.NewPawnCache(d.pawnCacheBits)
	}

	pos, _, _, _, _ := fen.Decode(fen.Initial)
	d.pos = pos

	return d
}

// Send enqueues cmd on the driver's single inbound queue. Safe to call from any
// goroutine; Run is the only consumer.
func (d *Driver) Send(cmd Command) {
	d.cmds <- cmd
}

// Run processes commands until CmdQuit is received or ctx is cancelled. It never
// returns early for any other reason: this is the engine's one dedicated thread.
func (d *Driver) Run(ctx context.Context) {
	for {
		select {
		case cmd, ok := <-d.cmds:
			if !ok {
				return
			}
			if quit := d.dispatchIdle(ctx, cmd); quit {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// dispatchIdle handles one command received while Idle (blocking receive). It
// returns true if the driver should stop running.
func (d *Driver) dispatchIdle(ctx context.Context, cmd Command) bool {
	switch c := cmd.(type) {
	case CmdUci:
		d.report(ReportId{Name: fmt.Sprintf("%v %v", d.name, version), Author: d.author})
		d.report(ReportUciOk{})
	case CmdDebug:
		d.debug = c.On
	case CmdIsReady:
		d.report(ReportReadyOk{})
	case CmdUciNewGame:
		d.newGame = true
	case CmdPositionFrom:
		if err := d.setPosition(c.FEN, c.Moves); err != nil {
			logw.Errorf(ctx, "Invalid position: %v", err)
			d.debugf("invalid position: %v", err)
		}
	case CmdGo:
		return d.runSearch(ctx, c.Params)
	case CmdStop, CmdPonderHit:
		// No active search to act on; legal no-ops while Idle.
	case CmdQuit:
		return true
	}
	return false
}

func (d *Driver) debugf(format string, args ...any) {
	if d.debug {
		d.report(ReportDebug{Text: fmt.Sprintf(format, args...)})
	}
}

// setPosition replays moves (UCI coordinate notation) from fenStr (board/fen.Initial
// if empty) and rebuilds the history ring to match, so repetition detection reflects
// the full game given, not just the search tree explored from here.
func (d *Driver) setPosition(fenStr string, moves []string) error {
	position := fenStr
	if position == "" {
		position = fen.Initial
	}
	pos, _, _, _, err := fen.Decode(position)
	if err != nil {
		return fmt.Errorf("invalid fen %q: %w", fenStr, err)
	}

	history := &search.ZobristHistoryRing{}
	history.Record(0, d.zobrist.Hash(pos))

	ply := 0
	buf := make([]board.Move, 0, 64)
	for _, uci := range moves {
		candidate, err := board.ParseMove(uci)
		if err != nil {
			return fmt.Errorf("invalid move %q: %w", uci, err)
		}

		found := false
		for _, m := range pos.LegalMoves(buf[:0]) {
			if m.Equals(candidate) {
				pos.Make(m)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("illegal move %q", uci)
		}

		ply++
		history.Record(ply, d.zobrist.Hash(pos))
	}

	d.pos = pos
	d.rootPly = ply
	d.history = history
	d.lastPV = nil
	return nil
}

// runSearch drains CmdUciNewGame's effect, runs a search to completion, and emits
// the resulting BestMove report. It returns true if a CmdQuit arrived mid-search.
func (d *Driver) runSearch(ctx context.Context, params GoParams) bool {
	if d.newGame {
		d.tt.Clear()
		d.killers = &search.KillerTable{}
		d.newGame = false
	}

	clone := *d.pos
	s := search.NewSearch(&clone, d.rootPly, d.zobrist, d.tt, d.killers, d.history)
	s.Cache = d.cache
	s.Contempt = d.contempt
	s.Noise = d.noise

	var stop, quitting bool
	s.Checkpoint = func(uint64) bool {
		d.drainWhileSearching(&stop, &quitting)
		return stop
	}

	opt := d.toSearchOptions(params)
	it := &search.Iterative{Search: s}
	pv := it.Run(ctx, opt, func(p search.PV) { d.report(toInfoReport(p)) })

	d.lastPV = pv.Moves
	d.report(toBestMoveReport(pv))

	return quitting
}

// drainWhileSearching implements the Searching state's non-blocking poll at each
// node checkpoint: Stop/Quit/Debug/PonderHit/UciNewGame are honored; PositionFrom,
// Go, Uci and IsReady are ignored per spec while a search is active.
func (d *Driver) drainWhileSearching(stop, quitting *bool) {
	for {
		select {
		case cmd := <-d.cmds:
			switch c := cmd.(type) {
			case CmdStop:
				*stop = true
			case CmdQuit:
				*stop = true
				*quitting = true
			case CmdDebug:
				d.debug = c.On
			case CmdUciNewGame:
				d.newGame = true
			case CmdPonderHit:
				d.debugf("ponderhit")
			default:
				// CmdPositionFrom, CmdGo, CmdUci, CmdIsReady ignored while searching.
			}
		default:
			return
		}
	}
}

func (d *Driver) toSearchOptions(p GoParams) search.Options {
	opt := search.Options{
		NodeLimit: p.NodeLimit,
		MoveTime:  p.MoveTime,
		Infinite:  p.Infinite || p.Ponder,
	}
	if p.DepthLimit > 0 {
		opt.DepthLimit = lang.Some(p.DepthLimit)
	}
	if p.MateIn > 0 {
		if _, ok := opt.DepthLimit.V(); !ok {
			opt.DepthLimit = lang.Some(2 * p.MateIn)
		}
	}
	if len(p.SearchMoves) > 0 {
		opt.SearchMoves = parseSearchMoves(d.pos, p.SearchMoves)
	}
	if len(d.lastPV) > 0 {
		opt.Ponder = d.lastPV
	}
	if !opt.Infinite && opt.MoveTime == 0 {
		ownTime, ownInc := p.WhiteTime, p.WhiteIncrement
		if d.pos.Turn() == board.Black {
			ownTime, ownInc = p.BlackTime, p.BlackIncrement
		}
		if ownTime > 0 {
			opt.TimeControl = lang.Some(search.TimeControl{Time: ownTime, Increment: ownInc})
		}
	}
	return opt
}

func parseSearchMoves(pos *board.Position, uci []string) []board.Move {
	var out []board.Move
	legal := pos.LegalMoves(make([]board.Move, 0, 64))
	for _, s := range uci {
		candidate, err := board.ParseMove(s)
		if err != nil {
			continue
		}
		for _, m := range legal {
			if m.Equals(candidate) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
