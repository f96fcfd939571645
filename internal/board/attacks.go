package board

// Precomputed attack tables. Knight and king attacks are plain square sets;
// sliding pieces use per-direction rays ordered outward from the origin
// square, so generation and attack scans can stop at the first blocker.

// Ray directions, indexed into rayAttacks.
const (
	dirNorth = iota
	dirSouth
	dirEast
	dirWest
	dirNorthEast
	dirNorthWest
	dirSouthEast
	dirSouthWest
	numDirections
)

var dirOffsets = [numDirections][2]int{
	{0, 1},   // north
	{0, -1},  // south
	{1, 0},   // east
	{-1, 0},  // west
	{1, 1},   // north-east
	{-1, 1},  // north-west
	{1, -1},  // south-east
	{-1, -1}, // south-west
}

var (
	rookDirections   = [4]int{dirNorth, dirSouth, dirEast, dirWest}
	bishopDirections = [4]int{dirNorthEast, dirNorthWest, dirSouthEast, dirSouthWest}
)

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var (
	knightAttacks [64][]Square
	kingAttacks   [64][]Square
	rayAttacks    [64][numDirections][]Square

	// pawnAttackers[c][sq] lists the squares from which a pawn of color c
	// attacks sq. Used by IsSquareAttacked.
	pawnAttackers [2][64][]Square
)

func init() {
	initAttackTables()
}

func initAttackTables() {
	for sq := A1; sq <= H8; sq++ {
		file := sq.File()
		rank := sq.Rank()

		for _, off := range knightOffsets {
			if t, ok := offsetSquare(file, rank, off[0], off[1]); ok {
				knightAttacks[sq] = append(knightAttacks[sq], t)
			}
		}

		for _, off := range kingOffsets {
			if t, ok := offsetSquare(file, rank, off[0], off[1]); ok {
				kingAttacks[sq] = append(kingAttacks[sq], t)
			}
		}

		for dir := 0; dir < numDirections; dir++ {
			df, dr := dirOffsets[dir][0], dirOffsets[dir][1]
			f, r := file+df, rank+dr
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				rayAttacks[sq][dir] = append(rayAttacks[sq][dir], NewSquare(f, r))
				f += df
				r += dr
			}
		}

		// A white pawn attacks sq from one rank below; a black pawn from
		// one rank above.
		for _, df := range [2]int{-1, 1} {
			if t, ok := offsetSquare(file, rank, df, -1); ok {
				pawnAttackers[White][sq] = append(pawnAttackers[White][sq], t)
			}
			if t, ok := offsetSquare(file, rank, df, 1); ok {
				pawnAttackers[Black][sq] = append(pawnAttackers[Black][sq], t)
			}
		}
	}
}

func offsetSquare(file, rank, df, dr int) (Square, bool) {
	f, r := file+df, rank+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) []Square {
	return knightAttacks[sq]
}

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) []Square {
	return kingAttacks[sq]
}

// Ray returns the squares along a direction from sq, nearest first.
func Ray(sq Square, dir int) []Square {
	return rayAttacks[sq][dir]
}
