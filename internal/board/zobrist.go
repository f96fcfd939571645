package board

// Zobrist hash keys for position hashing: 768 piece keys, one side-to-move
// key, four castling-right keys and eight en-passant-file keys. The table is
// generated once at init from a fixed-seed xorshift64 PRNG, so every run
// (and every conforming implementation) produces identical keys. Generation
// order is part of that contract: pieces, then side, then castling, then
// en passant.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristSideToMove uint64           // XOR when black to move
	zobristCastling   [4]uint64        // one key per castling right
	zobristEnPassant  [8]uint64        // one key per file
)

const zobristSeed = 0x123456789ABCDEF0

func init() {
	initZobrist()
}

// xorshift64 PRNG for reproducible Zobrist keys.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state << 13
	p.state ^= p.state >> 7
	p.state ^= p.state << 17
	return p.state
}

func initZobrist() {
	rng := newPRNG(zobristSeed)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()

	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}

	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(p Piece, sq Square) uint64 {
	return zobristPiece[p.Color()][p.Type()][sq]
}

// ZobristSideToMove returns the Zobrist key toggled when black is to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// ZobristCastling returns the combined Zobrist key for a set of castling
// rights: one key XORed in per right held.
func ZobristCastling(cr CastlingRights) uint64 {
	var key uint64
	for i := 0; i < 4; i++ {
		if cr&(1<<i) != 0 {
			key ^= zobristCastling[i]
		}
	}
	return key
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// ComputeHash computes the Zobrist hash for the position from scratch.
// Used at construction and FEN load; after that the hash is maintained
// incrementally by MakeMove/UnmakeMove.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for sq := A1; sq <= H8; sq++ {
		if piece := p.squares[sq]; piece != NoPiece {
			hash ^= ZobristPiece(piece, sq)
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	hash ^= ZobristCastling(p.CastlingRights)

	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	return hash
}
