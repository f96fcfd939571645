package engine

import (
	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

// Move ordering priorities
const (
	ttMoveScore   = 1000000 // TT move gets highest priority
	captureBase   = 100000  // Captures, refined by MVV-LVA
	promotionBase = 90000   // Non-capture promotions
	castlingScore = 80000   // Castling before other quiet moves
)

// scoreMove returns the ordering score for a single move. Captures use
// MVV-LVA: most valuable victim first, least valuable attacker breaking the
// tie (victim times ten minus attacker).
func scoreMove(pos *board.Position, m board.Move, ttMove board.Move) int {
	if m == ttMove && ttMove != board.NoMove {
		return ttMoveScore
	}

	if m.IsCapture(pos) {
		attacker := pos.PieceAt(m.From()).Type()
		victim := board.Pawn
		if !m.IsEnPassant() {
			victim = pos.PieceAt(m.To()).Type()
		}
		return captureBase + pieceValues[victim]*10 - pieceValues[attacker]
	}

	if m.IsPromotion() {
		return promotionBase + pieceValues[m.Promotion()]
	}

	if m.IsCastling() {
		return castlingScore
	}

	return 0
}

// ScoreMoves assigns ordering scores to every move in the list.
func ScoreMoves(pos *board.Position, moves *board.MoveList, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = scoreMove(pos, moves.Get(i), ttMove)
	}
	return scores
}

// PickMove selects the best remaining move and swaps it to the given index.
// Equal scores are broken by coordinate notation so the search visits moves
// in a reproducible order regardless of generation order.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] ||
			(scores[j] == scores[best] && moves.Get(j).String() < moves.Get(best).String()) {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}
