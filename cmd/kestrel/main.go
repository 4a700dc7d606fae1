package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kestrel-chess/engine/pkg/board"
	"github.com/kestrel-chess/engine/pkg/engine"
	"github.com/kestrel-chess/engine/pkg/engine/uci"
)

var (
	hash     = flag.Uint("hash", 16, "Transposition table size in MB")
	contempt = flag.Int("contempt", 0, "Draw score in centipawns from the side to move's perspective")
	pawnBits = flag.Uint("pawncache", 16, "Pawn evaluation cache size, in bits (2^n entries); zero disables it")
	seed     = flag.Int64("seed", 0, "Zobrist random seed")
	noise    = flag.Int("noise", 0, "Evaluation noise range in centipawns; zero disables it")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: kestrel [options]

kestrel is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := []engine.Option{
		engine.WithHash(*hash),
		engine.WithContempt(board.Score(*contempt)),
		engine.WithZobristSeed(*seed),
	}
	if *pawnBits > 0 {
		opts = append(opts, engine.WithPawnCacheBits(*pawnBits))
	}
	if *noise > 0 {
		opts = append(opts, engine.WithNoise(*noise, *seed))
	}

	in := engine.ReadStdinLines(ctx)
	_, out := uci.NewDriver(ctx, "kestrel", "kestrel-chess", in, opts...)
	engine.WriteStdoutLines(ctx, out)
}
