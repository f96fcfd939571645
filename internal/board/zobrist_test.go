package board

import "testing"

// TestHashDeterministic checks that the same position always hashes to the
// same value, and that independently parsed copies agree.
func TestHashDeterministic(t *testing.T) {
	a, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if a.Hash != b.Hash {
		t.Errorf("same position hashed differently: %016x vs %016x", a.Hash, b.Hash)
	}
	if a.Hash != a.ComputeHash() {
		t.Errorf("stored hash %016x disagrees with scratch computation %016x", a.Hash, a.ComputeHash())
	}
}

// TestHashComponents checks that side to move, castling rights and the en
// passant file each contribute to the hash.
func TestHashComponents(t *testing.T) {
	base, _ := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	cases := []struct {
		name string
		fen  string
	}{
		{"side to move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"},
		{"castling rights", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w Qkq - 0 1"},
		{"no castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1"},
	}

	for _, tc := range cases {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: failed to parse FEN: %v", tc.name, err)
		}
		if pos.Hash == base.Hash {
			t.Errorf("%s: hash did not change", tc.name)
		}
	}
}

// TestIncrementalHashMatchesScratch walks the move tree to depth 3 and
// verifies that the incrementally maintained hash equals a from-scratch
// computation at every node.
func TestIncrementalHashMatchesScratch(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	var walk func(depth int)
	walk = func(depth int) {
		if got := pos.ComputeHash(); pos.Hash != got {
			t.Fatalf("incremental hash %016x != scratch hash %016x at\n%s", pos.Hash, got, pos)
		}
		if depth == 0 {
			return
		}
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			walk(depth - 1)
			pos.UnmakeMove(m, undo)
		}
	}
	walk(3)
}

// TestHashTranspositionConverges checks that different move orders reaching
// the same position produce the same hash.
func TestHashTranspositionConverges(t *testing.T) {
	playUCI := func(pos *Position, moves ...string) {
		t.Helper()
		for _, uci := range moves {
			m, err := ParseMove(uci, pos)
			if err != nil {
				t.Fatalf("parse %s: %v", uci, err)
			}
			pos.MakeMove(m)
		}
	}

	a := NewPosition()
	playUCI(a, "g1f3", "g8f6", "b1c3", "b8c6")

	b := NewPosition()
	playUCI(b, "b1c3", "b8c6", "g1f3", "g8f6")

	if a.Hash != b.Hash {
		t.Errorf("transposed positions hashed differently: %016x vs %016x", a.Hash, b.Hash)
	}
}
