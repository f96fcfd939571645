package board

// IsDrawByRepetition returns true if the current position has occurred at
// least three times. Only positions within the half-move clock window can
// repeat, since a pawn move or capture changes the board irreversibly.
func (p *Position) IsDrawByRepetition() bool {
	count := 1 // current occurrence

	window := p.HalfMoveClock
	if window > len(p.hashHistory) {
		window = len(p.hashHistory)
	}

	for i := len(p.hashHistory) - 1; i >= len(p.hashHistory)-window; i-- {
		if p.hashHistory[i] == p.Hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// IsDrawByFiftyMoves returns true if 100 half-moves have passed without a
// pawn move or capture.
func (p *Position) IsDrawByFiftyMoves() bool {
	return p.HalfMoveClock >= 100
}

// IsDraw returns true if the position is drawn by repetition or by the
// fifty-move rule. Stalemate is detected separately via IsStalemate.
func (p *Position) IsDraw() bool {
	return p.IsDrawByFiftyMoves() || p.IsDrawByRepetition()
}
