// Package game exposes the engine as a command-level facade: one Game owns
// a position, its move history and an engine instance.
package game

import (
	"github.com/pkg/errors"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/engine"
)

// Sentinel errors. Callers match with errors.Is.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrIllegalMove    = errors.New("illegal move")
	ErrNoMoveToUndo   = errors.New("no move to undo")
)

// Result describes the game-theoretic state of the current position.
type Result int

const (
	InProgress Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// historyEntry records what is needed to take a move back.
type historyEntry struct {
	move board.Move
	undo board.Undo
}

// Game is the facade over position, rules and search.
type Game struct {
	pos     *board.Position
	eng     *engine.Engine
	history []historyEntry
}

// New creates a game at the starting position with a default engine.
func New() *Game {
	return &Game{
		pos: board.NewPosition(),
		eng: engine.NewEngine(),
	}
}

// NewWithHash creates a game whose engine uses the given hash size in MB.
func NewWithHash(sizeMB int) *Game {
	return &Game{
		pos: board.NewPosition(),
		eng: engine.NewEngineWithHash(sizeMB),
	}
}

// Reset returns the game to the starting position. The engine's hash table
// is kept; stale entries age out through the replacement policy.
func (g *Game) Reset() {
	g.pos = board.NewPosition()
	g.history = g.history[:0]
}

// Engine returns the underlying engine, for configuration such as OnInfo.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Position returns the current position. Callers must treat it as read-only.
func (g *Game) Position() *board.Position {
	return g.pos
}

// LoadFEN replaces the current position. A malformed FEN leaves the game
// untouched.
func (g *Game) LoadFEN(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return errors.Wrapf(ErrMalformedInput, "parse FEN: %v", err)
	}
	g.pos = pos
	g.history = g.history[:0]
	return nil
}

// ExportFEN returns the current position in FEN.
func (g *Game) ExportFEN() string {
	return g.pos.ToFEN()
}

// MakeMove applies a move given in coordinate notation (e2e4, e7e8q).
// Malformed or illegal input returns a typed error and leaves the position
// unchanged.
func (g *Game) MakeMove(uci string) error {
	m, err := board.ParseMove(uci, g.pos)
	if err != nil {
		return errors.Wrapf(ErrMalformedInput, "parse move %q: %v", uci, err)
	}

	if !g.pos.GenerateLegalMoves().Contains(m) {
		return errors.Wrapf(ErrIllegalMove, "%s in %s", uci, g.pos.ToFEN())
	}

	undo := g.pos.MakeMove(m)
	g.history = append(g.history, historyEntry{move: m, undo: undo})
	return nil
}

// UndoMove takes back the last move made through MakeMove.
func (g *Game) UndoMove() error {
	if len(g.history) == 0 {
		return ErrNoMoveToUndo
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.pos.UnmakeMove(last.move, last.undo)
	return nil
}

// MoveHistory returns the moves played so far in coordinate notation.
func (g *Game) MoveHistory() []string {
	moves := make([]string, len(g.history))
	for i, h := range g.history {
		moves[i] = h.move.String()
	}
	return moves
}

// SearchDepth finds the best move at a fixed depth.
func (g *Game) SearchDepth(depth int) engine.SearchResult {
	return g.eng.Search(g.pos, engine.SearchLimits{Depth: depth})
}

// SearchTimed finds the best move under the given time limits.
func (g *Game) SearchTimed(limits engine.SearchLimits) engine.SearchResult {
	return g.eng.Search(g.pos, limits)
}

// PlayResult applies the best move of a finished search.
func (g *Game) PlayResult(result engine.SearchResult) error {
	if result.BestMove == board.NoMove {
		return errors.Wrap(ErrIllegalMove, "no move available")
	}
	return g.MakeMove(result.BestMove.String())
}

// Perft counts leaf nodes of the move tree, for movegen verification.
func (g *Game) Perft(depth int) int64 {
	return engine.Perft(g.pos, depth)
}

// Evaluate returns the static evaluation of the current position from the
// side to move's perspective, in centipawns.
func (g *Game) Evaluate() int {
	return engine.Evaluate(g.pos)
}

// Result reports whether the game has ended and how.
func (g *Game) Result() Result {
	if g.pos.IsCheckmate() {
		if g.pos.SideToMove == board.White {
			return BlackWins
		}
		return WhiteWins
	}
	if g.pos.IsStalemate() || g.pos.IsDraw() {
		return Draw
	}
	return InProgress
}

// Stop aborts a search running in another goroutine.
func (g *Game) Stop() {
	g.eng.Stop()
}
