package engine

import (
	"time"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

// SearchResult holds the outcome of a search: the best move of the last
// fully completed depth with its score and statistics.
type SearchResult struct {
	BestMove board.Move
	Score    int
	Depth    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
}

// SearchInfo is passed to the OnInfo callback after each completed depth.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// Engine drives iterative deepening searches over a transposition table
// that persists between calls.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher

	// OnInfo, if set, is called after every completed iteration.
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with the default transposition table size.
func NewEngine() *Engine {
	return NewEngineWithHash(DefaultHashSizeMB)
}

// NewEngineWithHash creates an engine with the given hash size in MB.
func NewEngineWithHash(sizeMB int) *Engine {
	tt := NewTranspositionTable(sizeMB)
	return &Engine{
		tt:       tt,
		searcher: NewSearcher(tt),
	}
}

// SetUseTT enables or disables the transposition table. Searches with the
// table off are slower but must find the same moves and scores.
func (e *Engine) SetUseTT(use bool) {
	e.searcher.UseTT = use
}

// Stop aborts a running search. The search keeps the best move from the
// last fully completed depth.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// ClearHash empties the transposition table.
func (e *Engine) ClearHash() {
	e.tt.Clear()
}

// Search runs iterative deepening on the position under the given limits.
// Depths run 1, 2, 3, ... and the result always reflects the deepest fully
// completed iteration; a depth cut short by time contributes nothing.
func (e *Engine) Search(pos *board.Position, limits SearchLimits) SearchResult {
	tm := NewTimeManager(limits, pos.SideToMove, pos.FullMoveNumber)

	e.tt.NewSearch()
	e.searcher.Reset()

	// Depth 1 always runs to completion so even an expired clock yields a
	// move. The time manager only governs depths 2 and up.
	e.searcher.SetStopCheck(nil)

	var result SearchResult
	result.BestMove = board.NoMove

	for depth := 1; depth <= MaxPly; depth++ {
		move, score := e.searcher.Search(pos, depth)

		if e.searcher.Stopped() {
			break
		}
		e.searcher.SetStopCheck(tm.ShouldStop)

		result = SearchResult{
			BestMove: move,
			Score:    score,
			Depth:    depth,
			Nodes:    e.searcher.Nodes(),
			Time:     tm.Elapsed(),
			PV:       e.extractPV(pos, move, depth),
		}

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: result.Nodes,
				Time:  result.Time,
				PV:    result.PV,
			})
		}

		// A forced mate does not get better with more depth.
		if score >= MateScore-MaxPly || score <= -(MateScore-MaxPly) {
			break
		}

		tm.ReportIteration(score, move)
		if !tm.ShouldContinueIteration(depth) {
			break
		}
	}

	return result
}

// extractPV reconstructs the principal variation by walking best moves out
// of the transposition table on a scratch copy of the position. A seen set
// stops the walk on repetition cycles, and every move is verified legal so
// an index collision can never produce a corrupt line.
func (e *Engine) extractPV(pos *board.Position, bestMove board.Move, depth int) []board.Move {
	if bestMove == board.NoMove {
		return nil
	}

	pv := []board.Move{bestMove}
	scratch := pos.Clone()
	scratch.MakeMove(bestMove)

	seen := map[uint64]bool{pos.Hash: true}

	for len(pv) < depth {
		if seen[scratch.Hash] {
			break
		}
		seen[scratch.Hash] = true

		entry, ok := e.tt.Probe(scratch.Hash)
		if !ok || entry.BestMove == board.NoMove {
			break
		}
		if !scratch.GenerateLegalMoves().Contains(entry.BestMove) {
			break
		}

		pv = append(pv, entry.BestMove)
		scratch.MakeMove(entry.BestMove)
	}

	return pv
}

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(pos *board.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		nodes += Perft(pos, depth-1)
		pos.UnmakeMove(m, undo)
	}
	return nodes
}
