package engine

import (
	"testing"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

func TestEvaluateStartingPositionBalanced(t *testing.T) {
	pos := board.NewPosition()
	if score := Evaluate(pos); score != 0 {
		t.Errorf("starting position evaluates to %d, want 0", score)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is a queen up.
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if score := Evaluate(pos); score < QueenValue/2 {
		t.Errorf("queen-up evaluation = %d, want clearly positive", score)
	}
}

func TestEvaluateSideToMovePerspective(t *testing.T) {
	// The same board from Black's point of view must flip sign.
	white, err := board.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	black, err := board.ParseFEN("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if ws, bs := Evaluate(white), Evaluate(black); ws != -bs {
		t.Errorf("perspective not symmetric: white %d, black %d", ws, bs)
	}
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	// Mirrored positions with colors swapped must evaluate identically
	// from the mover's perspective.
	a, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	b, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if sa, sb := Evaluate(a), Evaluate(b); sa != sb {
		t.Errorf("mirror asymmetry: %d vs %d", sa, sb)
	}
}

func TestEvaluateCenterBonus(t *testing.T) {
	edge, err := board.ParseFEN("4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	center, err := board.ParseFEN("4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if es, cs := Evaluate(edge), Evaluate(center); cs <= es {
		t.Errorf("knight on d4 (%d) should beat knight on a1 (%d)", cs, es)
	}
}
