// Command chess is a line-oriented REPL over the engine: play moves, ask
// the AI for moves, run perft, import and export FEN, save and load games.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/engine"
	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/game"
	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/storage"
)

func main() {
	repl := newREPL()
	defer repl.close()
	repl.run()
}

type repl struct {
	game  *game.Game
	store *storage.Storage // opened lazily on first save/load
}

func newREPL() *repl {
	g := game.New()
	g.Engine().OnInfo = func(info engine.SearchInfo) {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.String()
		}
		fmt.Printf("info depth %d score %d nodes %d time %d pv %s\n",
			info.Depth, info.Score, info.Nodes, info.Time.Milliseconds(),
			strings.Join(pv, " "))
	}
	return &repl{game: g}
}

func (r *repl) close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			log.Printf("closing store: %v", err)
		}
	}
}

func (r *repl) run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		command := strings.ToLower(parts[0])
		args := parts[1:]

		switch command {
		case "new":
			r.game.Reset()
			fmt.Print(r.game.Position())
		case "move":
			if len(args) != 1 {
				fmt.Println("ERROR: usage: move <from><to>[promotion]")
				continue
			}
			r.handleMove(args[0])
		case "undo":
			if err := r.game.UndoMove(); err != nil {
				fmt.Println("ERROR: No moves to undo")
				continue
			}
			fmt.Print(r.game.Position())
		case "ai":
			depth := 3
			if len(args) > 0 {
				if d, err := strconv.Atoi(args[0]); err == nil && d >= 1 {
					depth = d
				}
			}
			r.handleSearch(engine.SearchLimits{Depth: depth}, true)
		case "go":
			limits, err := parseGoArgs(args)
			if err != nil {
				fmt.Printf("ERROR: %v\n", err)
				continue
			}
			r.handleSearch(limits, false)
		case "fen":
			if len(args) == 0 {
				fmt.Println("ERROR: FEN required")
				continue
			}
			if err := r.game.LoadFEN(strings.Join(args, " ")); err != nil {
				fmt.Printf("ERROR: %v\n", err)
				continue
			}
			fmt.Print(r.game.Position())
		case "export":
			fmt.Println(r.game.ExportFEN())
		case "eval":
			fmt.Printf("%d\n", r.game.Evaluate())
		case "perft":
			if len(args) == 0 {
				fmt.Println("ERROR: Perft depth required")
				continue
			}
			d, err := strconv.Atoi(args[0])
			if err != nil || d < 1 {
				fmt.Println("ERROR: Invalid perft depth")
				continue
			}
			start := time.Now()
			nodes := r.game.Perft(d)
			fmt.Printf("perft(%d) = %d (%.2fs)\n", d, nodes, time.Since(start).Seconds())
		case "display", "show":
			fmt.Print(r.game.Position())
		case "save":
			if len(args) != 1 {
				fmt.Println("ERROR: usage: save <name>")
				continue
			}
			r.handleSave(args[0])
		case "load":
			if len(args) != 1 {
				fmt.Println("ERROR: usage: load <name>")
				continue
			}
			r.handleLoad(args[0])
		case "games":
			r.handleGames()
		case "help":
			printHelp()
		case "quit", "exit":
			return
		default:
			fmt.Println("ERROR: Unknown command (try 'help')")
		}
	}
}

func (r *repl) handleMove(uci string) {
	if err := r.game.MakeMove(uci); err != nil {
		switch {
		case errors.Is(err, game.ErrMalformedInput):
			fmt.Println("ERROR: Invalid move format")
		case errors.Is(err, game.ErrIllegalMove):
			fmt.Println("ERROR: Illegal move")
		default:
			fmt.Printf("ERROR: %v\n", err)
		}
		return
	}

	fmt.Print(r.game.Position())
	r.announceResult()
}

func (r *repl) handleSearch(limits engine.SearchLimits, play bool) {
	if r.game.Result() != game.InProgress {
		fmt.Println("ERROR: Game is over")
		return
	}

	result := r.game.SearchTimed(limits)
	if result.BestMove == board.NoMove {
		fmt.Println("ERROR: No legal moves available")
		return
	}

	fmt.Printf("bestmove %s (score %d, depth %d, %d nodes)\n",
		result.BestMove, result.Score, result.Depth, result.Nodes)

	if play {
		if err := r.game.PlayResult(result); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			return
		}
		fmt.Print(r.game.Position())
		r.announceResult()
	}
}

func (r *repl) announceResult() {
	switch r.game.Result() {
	case game.WhiteWins:
		fmt.Println("White wins by checkmate!")
	case game.BlackWins:
		fmt.Println("Black wins by checkmate!")
	case game.Draw:
		fmt.Println("Draw!")
	}
}

func (r *repl) openStore() bool {
	if r.store != nil {
		return true
	}
	s, err := storage.OpenDefault()
	if err != nil {
		fmt.Printf("ERROR: cannot open game store: %v\n", err)
		return false
	}
	r.store = s
	return true
}

func (r *repl) handleSave(name string) {
	if !r.openStore() {
		return
	}
	err := r.store.SaveGame(&storage.SavedGame{
		Name:   name,
		FEN:    r.game.ExportFEN(),
		Moves:  r.game.MoveHistory(),
		Result: r.game.Result().String(),
	})
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return
	}
	fmt.Printf("saved %s\n", name)
}

func (r *repl) handleLoad(name string) {
	if !r.openStore() {
		return
	}
	saved, err := r.store.LoadGame(name)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return
	}
	if err := r.game.LoadFEN(saved.FEN); err != nil {
		fmt.Printf("ERROR: saved game is corrupt: %v\n", err)
		return
	}
	fmt.Print(r.game.Position())
}

func (r *repl) handleGames() {
	if !r.openStore() {
		return
	}
	names, err := r.store.ListGames()
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return
	}
	if len(names) == 0 {
		fmt.Println("no saved games")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

// parseGoArgs reads UCI-style time controls: "go movetime 1000",
// "go wtime 60000 btime 60000 winc 1000 binc 1000", "go depth 6".
// "infinite" is rejected: the search runs on the REPL goroutine, so an
// unbounded search could never be stopped.
func parseGoArgs(args []string) (engine.SearchLimits, error) {
	var limits engine.SearchLimits

	i := 0
	next := func() (int, error) {
		i++
		if i >= len(args) {
			return 0, fmt.Errorf("missing value for %s", args[i-1])
		}
		return strconv.Atoi(args[i])
	}

	for ; i < len(args); i++ {
		var err error
		var v int
		switch strings.ToLower(args[i]) {
		case "movetime":
			if v, err = next(); err == nil {
				limits.MoveTime = time.Duration(v) * time.Millisecond
			}
		case "wtime":
			if v, err = next(); err == nil {
				limits.Time[0] = time.Duration(v) * time.Millisecond
			}
		case "btime":
			if v, err = next(); err == nil {
				limits.Time[1] = time.Duration(v) * time.Millisecond
			}
		case "winc":
			if v, err = next(); err == nil {
				limits.Inc[0] = time.Duration(v) * time.Millisecond
			}
		case "binc":
			if v, err = next(); err == nil {
				limits.Inc[1] = time.Duration(v) * time.Millisecond
			}
		case "depth":
			if v, err = next(); err == nil {
				limits.Depth = v
			}
		case "infinite":
			err = fmt.Errorf("infinite search is not supported, use movetime or depth")
		default:
			err = fmt.Errorf("unknown option %s", args[i])
		}
		if err != nil {
			return limits, err
		}
	}

	if limits.MoveTime == 0 && limits.Time[0] == 0 && limits.Time[1] == 0 && limits.Depth == 0 {
		return limits, fmt.Errorf("no search limit given, use movetime, wtime/btime or depth")
	}

	return limits, nil
}

func printHelp() {
	fmt.Println(`Commands:
  new                 start a new game
  move <uci>          play a move (e2e4, e7e8q)
  undo                take back the last move
  ai [depth]          let the engine play a move (default depth 3)
  go <limits>         search only: movetime/wtime/btime/winc/binc/depth
  fen <fen>           load a position
  export              print the current position as FEN
  eval                static evaluation in centipawns
  perft <n>           count move tree leaves to depth n
  display             show the board
  save <name>         save the game
  load <name>         load a saved game
  games               list saved games
  quit                exit`)
}
