// Package uci is a thin text-protocol adapter over pkg/engine's typed Command/Report
// driver. It owns no search state of its own; it only translates UCI protocol lines
// to and from engine.Command/engine.Report.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kestrel-chess/engine/pkg/engine"
	"github.com/seekerror/logw"
)

const ProtocolName = "uci"

// Driver reads UCI lines from in and writes UCI lines to the returned channel,
// driving a freshly constructed engine.Driver underneath.
type Driver struct {
	e   *engine.Driver
	out chan<- string
}

// NewDriver constructs the engine core and a UCI front end over it, and starts both
// the engine's run loop and the line-processing loop. Closing in, or cancelling ctx,
// ends the line-processing loop, which then closes the returned channel; only
// cancelling ctx (or a "quit" line) also ends the engine's run loop.
func NewDriver(ctx context.Context, name, author string, in <-chan string, opts ...engine.Option) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{out: out}
	d.e = engine.New(name, author, d.emit, opts...)

	go d.e.Run(ctx)
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer close(d.out)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "UCI input closed")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				continue
			}
			cmd, args := strings.ToLower(parts[0]), parts[1:]

			switch cmd {
			case "uci":
				d.e.Send(engine.CmdUci{})
			case "isready":
				d.e.Send(engine.CmdIsReady{})
			case "debug":
				d.e.Send(engine.CmdDebug{On: len(args) == 0 || args[0] != "off"})
			case "ucinewgame":
				d.e.Send(engine.CmdUciNewGame{})
			case "setoption":
				// No engine-level UCI options are exposed yet; silently accepted.
			case "position":
				fenStr, moves := parsePosition(args)
				d.e.Send(engine.CmdPositionFrom{FEN: fenStr, Moves: moves})
			case "go":
				d.e.Send(engine.CmdGo{Params: parseGoParams(args)})
			case "stop":
				d.e.Send(engine.CmdStop{})
			case "ponderhit":
				d.e.Send(engine.CmdPonderHit{})
			case "quit":
				d.e.Send(engine.CmdQuit{})
				return
			default:
				logw.Warningf(ctx, "Unknown UCI command '%v': %v", cmd, args)
			}

		case <-ctx.Done():
			return
		}
	}
}

// emit is the engine.Driver's report callback: it runs on the engine's own search
// thread, so it must not block.
func (d *Driver) emit(r engine.Report) {
	switch v := r.(type) {
	case engine.ReportId:
		d.out <- fmt.Sprintf("id name %v", v.Name)
		d.out <- fmt.Sprintf("id author %v", v.Author)
	case engine.ReportUciOk:
		d.out <- "uciok"
	case engine.ReportReadyOk:
		d.out <- "readyok"
	case engine.ReportInfo:
		d.out <- printInfo(v)
	case engine.ReportBestMove:
		d.out <- printBestMove(v)
	case engine.ReportDebug:
		d.out <- fmt.Sprintf("info string %v", v.Text)
	}
}

func printInfo(v engine.ReportInfo) string {
	parts := []string{"info", fmt.Sprintf("depth %v", v.Depth)}
	if v.IsMate {
		parts = append(parts, fmt.Sprintf("score mate %v", v.ScoreMate))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", v.ScoreCP))
	}
	if v.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", v.Nodes))
	}
	if v.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", v.Time.Milliseconds()))
	}
	if v.Nps > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", v.Nps))
	}
	parts = append(parts, fmt.Sprintf("hashfull %v", int(1000*v.HashFull)))
	if len(v.PV) > 0 {
		parts = append(parts, "pv")
		parts = append(parts, v.PV...)
	}
	return strings.Join(parts, " ")
}

func printBestMove(v engine.ReportBestMove) string {
	if v.HasPonder {
		return fmt.Sprintf("bestmove %v ponder %v", v.Move, v.Ponder)
	}
	return fmt.Sprintf("bestmove %v", v.Move)
}

// parsePosition splits "[fen <6 fields> | startpos] [moves ...]" into the FEN string
// (empty meaning startpos) and the trailing UCI move list.
func parsePosition(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}

	i := 0
	fenStr := ""
	switch args[0] {
	case "startpos":
		i = 1
	case "fen":
		i = 1
		for i < len(args) && args[i] != "moves" {
			i++
		}
		fenStr = strings.Join(args[1:i], " ")
	}

	if i < len(args) && args[i] == "moves" {
		return fenStr, args[i+1:]
	}
	return fenStr, nil
}

var goKeywords = map[string]bool{
	"searchmoves": true, "ponder": true, "wtime": true, "btime": true,
	"winc": true, "binc": true, "movestogo": true, "depth": true,
	"nodes": true, "mate": true, "movetime": true, "infinite": true,
}

// parseGoParams parses the `go` subcommand arguments (spec §6.3's Go params).
// Unrecognized tokens are ignored, matching the teacher's tolerant UCI parsing.
func parseGoParams(args []string) engine.GoParams {
	var p engine.GoParams
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !goKeywords[args[i+1]] {
				i++
				p.SearchMoves = append(p.SearchMoves, args[i])
			}
		case "ponder":
			p.Ponder = true
		case "infinite":
			p.Infinite = true
		case "wtime":
			i++
			p.WhiteTime = millis(args, i)
		case "btime":
			i++
			p.BlackTime = millis(args, i)
		case "winc":
			i++
			p.WhiteIncrement = millis(args, i)
		case "binc":
			i++
			p.BlackIncrement = millis(args, i)
		case "movetime":
			i++
			p.MoveTime = millis(args, i)
		case "movestogo":
			i++
			p.MovesToGo = intArg(args, i)
		case "depth":
			i++
			p.DepthLimit = intArg(args, i)
		case "mate":
			i++
			p.MateIn = intArg(args, i)
		case "nodes":
			i++
			p.NodeLimit = uint64(intArg(args, i))
		}
	}
	return p
}

func intArg(args []string, i int) int {
	if i >= len(args) {
		return 0
	}
	n, _ := strconv.Atoi(args[i])
	return n
}

func millis(args []string, i int) time.Duration {
	return time.Duration(intArg(args, i)) * time.Millisecond
}
