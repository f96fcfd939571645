package board

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// castlingMask[sq] holds the rights that survive a move touching sq.
// Covers both moving the king/rook and capturing a rook on its home square.
var castlingMask [64]CastlingRights

func init() {
	for sq := A1; sq <= H8; sq++ {
		castlingMask[sq] = AllCastling
	}
	castlingMask[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	castlingMask[H1] &^= WhiteKingSideCastle
	castlingMask[A1] &^= WhiteQueenSideCastle
	castlingMask[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
	castlingMask[H8] &^= BlackKingSideCastle
	castlingMask[A8] &^= BlackQueenSideCastle
}

// Position represents a complete chess position.
type Position struct {
	// Mailbox board: NoPiece for empty squares.
	squares [64]Piece

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1

	// Zobrist hash, maintained incrementally through make/unmake
	Hash uint64

	// King positions (cached for check detection)
	KingSquare [2]Square

	// Hashes of all prior positions since construction/FEN load,
	// oldest first. Used for repetition detection.
	hashHistory []uint64
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Clone creates a deep copy of the position.
func (p *Position) Clone() *Position {
	newPos := *p
	newPos.hashHistory = append([]uint64(nil), p.hashHistory...)
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.squares[sq] == NoPiece
}

// setPiece places a piece on a square (does not update hash).
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	p.squares[sq] = piece
	if piece.Type() == King {
		p.KingSquare[piece.Color()] = sq
	}
}

// rookCastleSquares returns the rook's from/to squares for a castling move,
// keyed by the king's destination.
func rookCastleSquares(kingTo Square) (Square, Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	default: // C8
		return A8, D8
	}
}

// MakeMove applies a move to the position and returns the state needed to
// take it back. The move must be at least pseudo-legal; legality filtering
// is the move generator's job. The Zobrist hash is updated incrementally.
func (p *Position) MakeMove(m Move) Undo {
	undo := Undo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
	}
	p.hashHistory = append(p.hashHistory, p.Hash)

	from, to := m.From(), m.To()
	piece := p.squares[from]
	us := piece.Color()

	// Remove the captured piece. For en passant the victim sits on the
	// mover's own rank, not on the target square.
	capSq := to
	if m.IsEnPassant() {
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
	}
	if captured := p.squares[capSq]; captured != NoPiece {
		undo.CapturedPiece = captured
		p.squares[capSq] = NoPiece
		p.Hash ^= ZobristPiece(captured, capSq)
	}

	// Move the piece, promoting if requested.
	p.squares[from] = NoPiece
	p.Hash ^= ZobristPiece(piece, from)

	placed := piece
	if m.IsPromotion() {
		placed = NewPiece(m.Promotion(), us)
	}
	p.squares[to] = placed
	p.Hash ^= ZobristPiece(placed, to)

	if piece.Type() == King {
		p.KingSquare[us] = to
	}

	// Castling also moves the rook.
	if m.IsCastling() {
		rookFrom, rookTo := rookCastleSquares(to)
		rook := p.squares[rookFrom]
		p.squares[rookFrom] = NoPiece
		p.squares[rookTo] = rook
		p.Hash ^= ZobristPiece(rook, rookFrom)
		p.Hash ^= ZobristPiece(rook, rookTo)
	}

	// Castling rights
	newRights := p.CastlingRights & castlingMask[from] & castlingMask[to]
	if newRights != p.CastlingRights {
		p.Hash ^= ZobristCastling(p.CastlingRights)
		p.Hash ^= ZobristCastling(newRights)
		p.CastlingRights = newRights
	}

	// En passant target
	if p.EnPassant != NoSquare {
		p.Hash ^= ZobristEnPassant(p.EnPassant.File())
	}
	p.EnPassant = NoSquare
	if piece.Type() == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
		p.Hash ^= ZobristEnPassant(p.EnPassant.File())
	}

	// Clocks
	if piece.Type() == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	// Side to move
	p.SideToMove = us.Other()
	p.Hash ^= zobristSideToMove

	return undo
}

// UnmakeMove takes back a move made with MakeMove. Every field, the hash
// included, is restored to its exact prior value.
func (p *Position) UnmakeMove(m Move, undo Undo) {
	p.hashHistory = p.hashHistory[:len(p.hashHistory)-1]

	from, to := m.From(), m.To()
	us := p.SideToMove.Other() // the side that moved

	piece := p.squares[to]
	if m.IsPromotion() {
		piece = NewPiece(Pawn, us)
	}
	p.squares[to] = NoPiece
	p.squares[from] = piece

	if piece.Type() == King {
		p.KingSquare[us] = from
	}

	if m.IsCastling() {
		rookFrom, rookTo := rookCastleSquares(to)
		rook := p.squares[rookTo]
		p.squares[rookTo] = NoPiece
		p.squares[rookFrom] = rook
	}

	if undo.CapturedPiece != NoPiece {
		capSq := to
		if m.IsEnPassant() {
			if us == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		p.squares[capSq] = undo.CapturedPiece
	}

	if us == Black {
		p.FullMoveNumber--
	}
	p.SideToMove = us
	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare[p.SideToMove], p.SideToMove.Other())
}

// HistoryLen returns the number of positions recorded since construction.
func (p *Position) HistoryLen() int {
	return len(p.hashHistory)
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	s += fmt.Sprintf("Hash: %016x\n", p.Hash)
	return s
}

// Validate checks the position invariants, collecting every violation.
// A failure here is a programming error, not a user error.
func (p *Position) Validate() error {
	var result *multierror.Error

	var kings [2]int
	for sq := A1; sq <= H8; sq++ {
		piece := p.squares[sq]
		if piece == NoPiece {
			continue
		}
		if piece.Type() == King {
			kings[piece.Color()]++
			if p.KingSquare[piece.Color()] != sq {
				result = multierror.Append(result, fmt.Errorf("cached %s king square %s does not match board (%s)",
					piece.Color(), p.KingSquare[piece.Color()], sq))
			}
		}
		if piece.Type() == Pawn && (sq.Rank() == 0 || sq.Rank() == 7) {
			result = multierror.Append(result, fmt.Errorf("pawn on back rank at %s", sq))
		}
	}

	if kings[White] != 1 {
		result = multierror.Append(result, fmt.Errorf("white must have exactly one king, has %d", kings[White]))
	}
	if kings[Black] != 1 {
		result = multierror.Append(result, fmt.Errorf("black must have exactly one king, has %d", kings[Black]))
	}

	if want := p.ComputeHash(); p.Hash != want {
		result = multierror.Append(result, fmt.Errorf("incremental hash %016x drifted from recomputed %016x", p.Hash, want))
	}

	return result.ErrorOrNil()
}

// Material returns the material balance (positive favors white).
func (p *Position) Material() int {
	score := 0
	for sq := A1; sq <= H8; sq++ {
		piece := p.squares[sq]
		if piece == NoPiece || piece.Type() == King {
			continue
		}
		if piece.Color() == White {
			score += piece.Value()
		} else {
			score -= piece.Value()
		}
	}
	return score
}
