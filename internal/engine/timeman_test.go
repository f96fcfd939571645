package engine

import (
	"testing"
	"time"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

func TestTimeAllocation(t *testing.T) {
	// 60s remaining, 1s increment, move 10: 30 moves planned, so
	// 60000/30 + 1000 = 3s base and a 48s hard ceiling.
	base, max := allocateTime(60*time.Second, time.Second, 10)
	if base != 3*time.Second {
		t.Errorf("base = %v, want 3s", base)
	}
	if max != 48*time.Second {
		t.Errorf("max = %v, want 48s", max)
	}

	// Late in the game the estimate shrinks but never below 20 moves.
	base, _ = allocateTime(40*time.Second, 0, 45)
	if base != 2*time.Second {
		t.Errorf("base at move 45 = %v, want 2s", base)
	}

	// A huge increment is capped at half the remaining clock.
	base, _ = allocateTime(time.Second, 10*time.Second, 10)
	if base != 500*time.Millisecond {
		t.Errorf("capped base = %v, want 500ms", base)
	}
}

func TestMoveTimeControl(t *testing.T) {
	tm := NewTimeManager(SearchLimits{MoveTime: time.Second}, board.White, 10)

	if tm.AllocatedTime() != time.Second || tm.MaximumTime() != time.Second {
		t.Errorf("allocated/maximum = %v/%v, want 1s/1s", tm.AllocatedTime(), tm.MaximumTime())
	}
	if tm.ShouldStop() {
		t.Error("should not stop immediately")
	}
}

func TestDepthControl(t *testing.T) {
	tm := NewTimeManager(SearchLimits{Depth: 5}, board.White, 10)

	if tm.AllocatedTime() != 0 {
		t.Errorf("depth-only search allocated %v", tm.AllocatedTime())
	}
	if tm.ShouldStop() {
		t.Error("depth-only search must never time out")
	}
	if !tm.ShouldContinueIteration(3) {
		t.Error("should continue below the depth limit")
	}
	if tm.ShouldContinueIteration(5) {
		t.Error("should stop at the depth limit")
	}
}

func TestInfiniteControl(t *testing.T) {
	tm := NewTimeManager(SearchLimits{Infinite: true}, board.Black, 30)

	if tm.ShouldStop() {
		t.Error("infinite search must never time out")
	}
	if !tm.ShouldContinueIteration(60) {
		t.Error("infinite search continues at any depth")
	}
}

func TestInstabilityTracking(t *testing.T) {
	tm := NewTimeManager(SearchLimits{MoveTime: 5 * time.Second}, board.White, 10)

	e2e4 := board.NewMove(board.E2, board.E4)
	d2d4 := board.NewMove(board.D2, board.D4)

	tm.ReportIteration(100, e2e4)
	if tm.bestMoveChanges != 0 {
		t.Errorf("changes after first report = %d, want 0", tm.bestMoveChanges)
	}

	// Same move, small score drift: stable.
	tm.ReportIteration(130, e2e4)
	if tm.bestMoveChanges != 0 {
		t.Errorf("changes after stable report = %d, want 0", tm.bestMoveChanges)
	}

	// New best move: one change.
	tm.ReportIteration(140, d2d4)
	if tm.bestMoveChanges != 1 {
		t.Errorf("changes after move flip = %d, want 1", tm.bestMoveChanges)
	}

	// Score swing above 50 centipawns counts as well.
	tm.ReportIteration(300, d2d4)
	if tm.bestMoveChanges != 2 {
		t.Errorf("changes after score swing = %d, want 2", tm.bestMoveChanges)
	}
}
