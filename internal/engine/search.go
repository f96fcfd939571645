package engine

import (
	"sync/atomic"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
	DrawScore = 0
)

// How many nodes between cooperative stop checks.
const stopCheckInterval = 1024

// Searcher performs a negamax alpha-beta search over a single shared
// Position. All move application follows strict make/undo nesting, so the
// position handed to Search is unchanged when it returns.
type Searcher struct {
	tt  *TranspositionTable
	pos *board.Position

	// UseTT disables all table probes and stores when false. The search
	// must return identical moves and scores either way, only slower.
	UseTT bool

	nodes     uint64
	stopFlag  atomic.Bool
	checkStop func() bool // optional external stop condition (time manager)
	stopped   bool        // search aborted, partial results invalid
}

// NewSearcher creates a new searcher using the given transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt, UseTT: true}
}

// Stop signals the search to stop at the next check interval.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset prepares the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.stopped = false
	s.nodes = 0
}

// SetStopCheck installs an external stop condition, polled at the same
// interval as Stop.
func (s *Searcher) SetStopCheck(f func() bool) {
	s.checkStop = f
}

// Nodes returns the number of nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Stopped reports whether the last search was aborted before completing.
func (s *Searcher) Stopped() bool {
	return s.stopped
}

// Search runs an alpha-beta search to the given depth and returns the best
// move with its score from the side to move's perspective. The root never
// takes a transposition table cutoff, so a best move is always produced
// unless the search is aborted or the position has no legal moves.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	s.pos = pos

	ttMove := board.NoMove
	if s.UseTT {
		if entry, ok := s.tt.Probe(pos.Hash); ok {
			ttMove = entry.BestMove
		}
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if pos.InCheck() {
			return board.NoMove, -MateScore
		}
		return board.NoMove, DrawScore
	}

	scores := ScoreMoves(pos, moves, ttMove)

	alpha, beta := -Infinity, Infinity
	bestMove := board.NoMove
	bestScore := -Infinity

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		m := moves.Get(i)

		undo := pos.MakeMove(m)
		score := -s.negamax(depth-1, 1, -beta, -alpha)
		pos.UnmakeMove(m, undo)

		if s.stopped {
			break
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}

	if s.UseTT && !s.stopped && bestMove != board.NoMove {
		s.tt.Store(pos.Hash, depth, AdjustScoreToTT(bestScore, 0), TTExact, bestMove)
	}

	return bestMove, bestScore
}

func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	if s.nodes%stopCheckInterval == 0 && s.shouldStop() {
		s.stopped = true
		return 0
	}
	s.nodes++

	// Draws end the line before any recursion.
	if s.pos.IsDraw() {
		return DrawScore
	}

	alphaOrig := alpha
	ttMove := board.NoMove

	if s.UseTT {
		if entry, ok := s.tt.Probe(s.pos.Hash); ok {
			ttMove = entry.BestMove
			if int(entry.Depth) >= depth {
				score := AdjustScoreFromTT(int(entry.Score), ply)
				switch entry.Flag {
				case TTExact:
					return score
				case TTLowerBound:
					if score > alpha {
						alpha = score
					}
				case TTUpperBound:
					if score < beta {
						beta = score
					}
				}
				if alpha >= beta {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return Evaluate(s.pos)
	}

	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if s.pos.InCheck() {
			// Mated here: worse the closer to the root.
			return -MateScore + ply
		}
		return DrawScore
	}

	scores := ScoreMoves(s.pos, moves, ttMove)
	bestScore := -Infinity
	bestMove := board.NoMove

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		m := moves.Get(i)

		undo := s.pos.MakeMove(m)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		s.pos.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	if s.UseTT {
		flag := TTExact
		if bestScore <= alphaOrig {
			flag = TTUpperBound
		} else if bestScore >= beta {
			flag = TTLowerBound
		}
		s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	}

	return bestScore
}

func (s *Searcher) shouldStop() bool {
	if s.stopFlag.Load() {
		return true
	}
	return s.checkStop != nil && s.checkStop()
}
