package engine

import (
	"time"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

// SearchLimits contains the time control parameters for a search. Zero
// values mean "not set": a zero Depth with no time fields behaves like an
// infinite search that the caller must stop.
type SearchLimits struct {
	Time     [2]time.Duration // remaining time for each color
	Inc      [2]time.Duration // increment per move for each color
	MoveTime time.Duration    // fixed time per move (overrides clock fields)
	Depth    int              // maximum search depth
	Infinite bool             // search until stopped
}

// TimeManager decides how long a search may run. It is purely passive: the
// search polls ShouldStop and ShouldContinueIteration, and nothing here
// spawns timers or goroutines.
type TimeManager struct {
	limits    SearchLimits
	startTime time.Time

	allocated time.Duration // soft target for this move (0 = unlimited)
	maximum   time.Duration // hard limit for this move (0 = unlimited)

	lastScore       int
	haveLastScore   bool
	lastBestMove    board.Move
	bestMoveChanges int
}

// NewTimeManager creates a time manager for one search. moveNumber is the
// game's full-move number, used to estimate how many moves remain.
func NewTimeManager(limits SearchLimits, us board.Color, moveNumber int) *TimeManager {
	tm := &TimeManager{
		limits:    limits,
		startTime: time.Now(),
	}

	switch {
	case limits.MoveTime > 0:
		tm.allocated = limits.MoveTime
		tm.maximum = limits.MoveTime
	case limits.Infinite || limits.Time[us] == 0:
		// Depth-only or infinite: no time budget.
	default:
		tm.allocated, tm.maximum = allocateTime(limits.Time[us], limits.Inc[us], moveNumber)
	}

	return tm
}

// allocateTime splits the remaining clock into a per-move budget.
// Returns the soft allocation and the hard maximum.
func allocateTime(remaining, increment time.Duration, moveNumber int) (time.Duration, time.Duration) {
	// Estimate moves remaining: assume a 50-move game, but never plan for
	// fewer than 20 moves so the clock is not burned in the late middlegame.
	estimatedMoves := 30
	if moveNumber >= 20 {
		estimatedMoves = 50 - moveNumber
		if estimatedMoves < 20 {
			estimatedMoves = 20
		}
	}

	base := remaining/time.Duration(estimatedMoves) + increment

	// Never plan to spend more than half the clock on one move.
	if half := remaining / 2; base > half {
		base = half
	}

	// Hard ceiling for emergencies: 80% of the remaining clock.
	maximum := remaining * 80 / 100

	return base, maximum
}

// Elapsed returns the time elapsed since the search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// ShouldStop returns true if the hard time limit has been reached. Called
// from inside the search at node-count intervals.
func (tm *TimeManager) ShouldStop() bool {
	if tm.maximum == 0 {
		return false
	}
	return tm.Elapsed() >= tm.maximum
}

// ShouldContinueIteration returns true if a search at the next depth should
// be started after completing currentDepth.
func (tm *TimeManager) ShouldContinueIteration(currentDepth int) bool {
	if tm.limits.Depth > 0 && currentDepth >= tm.limits.Depth {
		return false
	}

	if tm.allocated > 0 {
		elapsed := tm.Elapsed()

		// Iterative deepening roughly quadruples the work per depth, so a
		// next iteration started with less than 3/4 of the budget left
		// would likely be cut off before finishing.
		if elapsed*4 >= tm.allocated {
			return false
		}

		threshold := tm.allocated
		if tm.bestMoveChanges > 2 {
			// Unstable search: grant 30% more time.
			threshold = threshold * 13 / 10
		}
		if elapsed >= threshold {
			return false
		}
	}

	return true
}

// ReportIteration feeds the result of a completed depth back into the time
// manager so it can detect instability.
func (tm *TimeManager) ReportIteration(score int, bestMove board.Move) {
	if tm.haveLastScore {
		diff := score - tm.lastScore
		if diff < 0 {
			diff = -diff
		}
		if diff > 50 {
			tm.bestMoveChanges++
		}
	}
	tm.lastScore = score
	tm.haveLastScore = true

	if tm.lastBestMove != board.NoMove && bestMove != board.NoMove && tm.lastBestMove != bestMove {
		tm.bestMoveChanges++
	}
	tm.lastBestMove = bestMove
}

// AllocatedTime returns the soft per-move budget, or zero if unlimited.
func (tm *TimeManager) AllocatedTime() time.Duration {
	return tm.allocated
}

// MaximumTime returns the hard per-move limit, or zero if unlimited.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximum
}
