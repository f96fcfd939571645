// Package engine implements the chess AI: evaluation, alpha-beta search,
// transposition table and iterative deepening.
package engine

import (
	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Piece values array for quick lookup
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

const (
	centerBonus        = 10 // Occupying d4, e4, d5 or e5
	pawnAdvanceBonus   = 5  // Per rank a pawn has advanced
	mobilityWeight     = 3  // Per pseudo-legal move of advantage
	kingShelterBonus   = 20 // King tucked on the back rank flank
	kingExposedPenalty = 20
)

// Piece-Square Tables for positional evaluation. Written with rank 8 in the
// first row, so White looks up through Mirror and Black directly.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var psts = [...][64]int{
	pawnPST, knightPST, bishopPST, rookPST, queenPST, kingMidgamePST,
}

// Evaluate returns the static evaluation from the side to move's
// perspective, in centipawns. Material plus positional terms: piece-square
// tables, center occupation, pawn advancement, mobility and king shelter.
func Evaluate(pos *board.Position) int {
	score := 0 // from White's perspective until the final flip
	endgame := isEndgame(pos)

	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}

		c := piece.Color()
		pt := piece.Type()
		value := pieceValues[pt]

		pstSq := sq
		if c == board.White {
			pstSq = sq.Mirror()
		}
		if pt == board.King && endgame {
			value += kingEndgamePST[pstSq]
		} else {
			value += psts[pt][pstSq]
		}

		if sq == board.D4 || sq == board.E4 || sq == board.D5 || sq == board.E5 {
			value += centerBonus
		}

		switch pt {
		case board.Pawn:
			value += sq.RelativeRank(c) * pawnAdvanceBonus
		case board.King:
			if !endgame {
				file := sq.File()
				if sq.RelativeRank(c) == 0 && (file <= 2 || file >= 5) {
					value += kingShelterBonus
				} else {
					value -= kingExposedPenalty
				}
			}
		}

		if c == board.White {
			score += value
		} else {
			score -= value
		}
	}

	score += mobilityWeight * (mobility(pos, board.White) - mobility(pos, board.Black))

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

// mobility counts pseudo-legal moves. Legal filtering would cost a
// make/unmake per move and barely changes the differential.
func mobility(pos *board.Position, c board.Color) int {
	ml := board.NewMoveList()
	pos.GeneratePseudoLegalMoves(c, ml)
	return ml.Len()
}

// isEndgame reports whether few enough pieces remain that the king should
// activate rather than shelter.
func isEndgame(pos *board.Position) bool {
	pieces, queens := 0, 0
	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		switch piece.Type() {
		case board.Pawn, board.King:
		case board.Queen:
			pieces++
			queens++
		default:
			pieces++
		}
	}
	return pieces <= 4 || (pieces <= 6 && queens == 0)
}
