package main

import (
	"testing"
	"time"
)

func TestParseGoArgs(t *testing.T) {
	limits, err := parseGoArgs([]string{"movetime", "1000"})
	if err != nil {
		t.Fatalf("movetime: %v", err)
	}
	if limits.MoveTime != time.Second {
		t.Errorf("MoveTime = %v, want 1s", limits.MoveTime)
	}

	limits, err = parseGoArgs([]string{"wtime", "60000", "btime", "30000", "winc", "1000", "binc", "500"})
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if limits.Time[0] != time.Minute || limits.Time[1] != 30*time.Second {
		t.Errorf("Time = %v, want [1m 30s]", limits.Time)
	}
	if limits.Inc[0] != time.Second || limits.Inc[1] != 500*time.Millisecond {
		t.Errorf("Inc = %v, want [1s 500ms]", limits.Inc)
	}

	limits, err = parseGoArgs([]string{"depth", "6"})
	if err != nil {
		t.Fatalf("depth: %v", err)
	}
	if limits.Depth != 6 {
		t.Errorf("Depth = %d, want 6", limits.Depth)
	}
}

func TestParseGoArgsRejectsBadInput(t *testing.T) {
	cases := [][]string{
		{"movetime"},          // missing value
		{"depth", "x"},        // non-numeric value
		{"lowtime", "1000"},   // unknown option
		{"infinite"},          // no stop path in this front end
		{},                    // no limit at all
	}

	for _, args := range cases {
		if _, err := parseGoArgs(args); err == nil {
			t.Errorf("parseGoArgs(%v) should have failed", args)
		}
	}
}
