package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/engine"
)

func TestNewGameStartsAtInitialPosition(t *testing.T) {
	g := New()
	assert.Equal(t, board.StartFEN, g.ExportFEN())
	assert.Equal(t, InProgress, g.Result())
}

func TestMakeAndUndoMove(t *testing.T) {
	g := New()

	require.NoError(t, g.MakeMove("e2e4"))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", g.ExportFEN())

	require.NoError(t, g.MakeMove("e7e5"))
	assert.Equal(t, []string{"e2e4", "e7e5"}, g.MoveHistory())

	require.NoError(t, g.UndoMove())
	require.NoError(t, g.UndoMove())
	assert.Equal(t, board.StartFEN, g.ExportFEN())

	err := g.UndoMove()
	assert.ErrorIs(t, err, ErrNoMoveToUndo)
}

func TestMakeMoveRejectsMalformedInput(t *testing.T) {
	g := New()

	for _, input := range []string{"", "e2", "e2e9", "zz11", "e2e4x"} {
		err := g.MakeMove(input)
		assert.ErrorIs(t, err, ErrMalformedInput, "input %q", input)
	}

	// Rejected input must not disturb the position.
	assert.Equal(t, board.StartFEN, g.ExportFEN())
}

func TestMakeMoveRejectsIllegalMoves(t *testing.T) {
	g := New()

	for _, uci := range []string{"e2e5", "e1e2", "b8c6", "a7a6"} {
		err := g.MakeMove(uci)
		assert.ErrorIs(t, err, ErrIllegalMove, "move %s", uci)
	}
	assert.Equal(t, board.StartFEN, g.ExportFEN())
}

func TestLoadFENKeepsGameOnFailure(t *testing.T) {
	g := New()
	require.NoError(t, g.MakeMove("d2d4"))
	before := g.ExportFEN()

	err := g.LoadFEN("this is not a FEN")
	require.ErrorIs(t, err, ErrMalformedInput)
	assert.Equal(t, before, g.ExportFEN())

	require.NoError(t, g.LoadFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"))
	assert.Empty(t, g.MoveHistory())
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g := New()
	require.NoError(t, g.LoadFEN("8/5P2/8/8/8/k7/8/4K3 w - - 0 1"))

	require.NoError(t, g.MakeMove("f7f8"))
	assert.Equal(t, board.NewPiece(board.Queen, board.White),
		g.Position().PieceAt(board.F8))
}

func TestResultDetection(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want Result
	}{
		{"checkmated black", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", WhiteWins},
		{"checkmated white", "k7/8/8/8/8/8/6PP/r6K w - - 0 1", BlackWins},
		{"stalemate", "k7/8/1Q6/8/8/8/8/4K3 b - - 0 1", Draw},
		{"fifty moves", "4k3/8/8/8/8/8/8/4K2R w K - 100 80", Draw},
		{"ongoing", board.StartFEN, InProgress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			require.NoError(t, g.LoadFEN(tc.fen))
			assert.Equal(t, tc.want, g.Result())
		})
	}
}

func TestSearchDepthReturnsLegalMove(t *testing.T) {
	g := New()
	result := g.SearchDepth(3)

	require.NotEqual(t, board.NoMove, result.BestMove)
	assert.Equal(t, 3, result.Depth)
	require.NoError(t, g.PlayResult(result))
	assert.Len(t, g.MoveHistory(), 1)
}

func TestSearchTimedReturnsWithinLimits(t *testing.T) {
	g := New()
	require.NoError(t, g.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"))

	result := g.SearchTimed(engine.SearchLimits{Depth: 3})
	assert.NotEqual(t, board.NoMove, result.BestMove)
}

func TestErrorWrappingPreservesSentinel(t *testing.T) {
	g := New()
	err := g.MakeMove("nonsense")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.Contains(t, err.Error(), "nonsense")
}
