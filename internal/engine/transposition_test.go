package engine

import (
	"testing"

	"github.com/evaisse/the-great-analysis-challenge-sub001/internal/board"
)

func TestTTSizePowerOfTwo(t *testing.T) {
	tt := NewTranspositionTable(16)

	if tt.Size() == 0 {
		t.Fatal("table has no entries")
	}
	if tt.Size()&(tt.Size()-1) != 0 {
		t.Errorf("entry count %d is not a power of two", tt.Size())
	}

	// 16MB at 16 bytes per entry is exactly 2^20 entries.
	if tt.Size() != 1<<20 {
		t.Errorf("16MB table has %d entries, want %d", tt.Size(), 1<<20)
	}
}

func TestRoundDownToPowerOf2(t *testing.T) {
	cases := []struct{ in, want uint64 }{
		{1, 1},
		{2, 2},
		{3, 2},
		{1023, 512},
		{1024, 1024},
		{1025, 1024},
	}
	for _, tc := range cases {
		if got := roundDownToPowerOf2(tc.in); got != tc.want {
			t.Errorf("roundDownToPowerOf2(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTTStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0x1234567890ABCDEF)
	m := board.NewMove(board.E2, board.E4)

	if _, ok := tt.Probe(hash); ok {
		t.Fatal("probe of empty table should miss")
	}

	tt.Store(hash, 5, 42, TTExact, m)

	entry, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("probe after store should hit")
	}
	if entry.BestMove != m || entry.Score != 42 || entry.Depth != 5 || entry.Flag != TTExact {
		t.Errorf("wrong entry: %+v", entry)
	}

	// A different hash mapping to the same slot must not verify.
	collision := hash + tt.Size()
	if _, ok := tt.Probe(collision); ok {
		t.Error("index collision returned a foreign entry")
	}
}

func TestTTReplacement(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0xDEADBEEF)
	deep := board.NewMove(board.E2, board.E4)
	shallow := board.NewMove(board.D2, board.D4)

	// A shallower entry must not evict a deeper one within one search.
	tt.Store(hash, 8, 10, TTExact, deep)
	tt.Store(hash, 3, 20, TTExact, shallow)

	entry, ok := tt.Probe(hash)
	if !ok || entry.Depth != 8 || entry.BestMove != deep {
		t.Errorf("shallow store evicted deeper entry: %+v", entry)
	}

	// Equal depth replaces.
	tt.Store(hash, 8, 30, TTLowerBound, shallow)
	entry, _ = tt.Probe(hash)
	if entry.Score != 30 || entry.Flag != TTLowerBound {
		t.Errorf("equal-depth store did not replace: %+v", entry)
	}

	// After a generation bump, any store replaces, however shallow.
	tt.NewSearch()
	tt.Store(hash, 1, 40, TTExact, shallow)
	entry, _ = tt.Probe(hash)
	if entry.Depth != 1 || entry.Score != 40 {
		t.Errorf("old-generation entry survived: %+v", entry)
	}
}

func TestTTClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0xABCD, 4, 7, TTExact, board.NewMove(board.E2, board.E4))

	tt.Clear()

	if _, ok := tt.Probe(0xABCD); ok {
		t.Error("entry survived Clear")
	}
}

func TestMateScoreAdjustment(t *testing.T) {
	// A mate found 3 plies below a node at ply 2 is stored relative to the
	// root and must read back relative to the probing node.
	score := MateScore - 5
	stored := AdjustScoreToTT(score, 2)
	if got := AdjustScoreFromTT(stored, 2); got != score {
		t.Errorf("round trip at same ply: got %d, want %d", got, score)
	}

	// Probed at a different ply, the distance to mate shifts accordingly.
	if got := AdjustScoreFromTT(stored, 4); got != score-2 {
		t.Errorf("probe at deeper ply: got %d, want %d", got, score-2)
	}

	// Ordinary scores pass through untouched.
	if got := AdjustScoreToTT(100, 7); got != 100 {
		t.Errorf("eval score adjusted on store: %d", got)
	}
	if got := AdjustScoreFromTT(-250, 7); got != -250 {
		t.Errorf("eval score adjusted on probe: %d", got)
	}
}
