package board

// GeneratePseudoLegalMoves generates all pseudo-legal moves for the given
// color: every move that follows each piece's movement rules, without
// checking whether it leaves the own king in check.
func (p *Position) GeneratePseudoLegalMoves(c Color, ml *MoveList) {
	for sq := A1; sq <= H8; sq++ {
		piece := p.squares[sq]
		if piece == NoPiece || piece.Color() != c {
			continue
		}

		switch piece.Type() {
		case Pawn:
			p.generatePawnMoves(sq, c, ml)
		case Knight:
			p.generateJumpMoves(sq, c, knightAttacks[sq], ml)
		case Bishop:
			p.generateSlidingMoves(sq, c, bishopDirections[:], ml)
		case Rook:
			p.generateSlidingMoves(sq, c, rookDirections[:], ml)
		case Queen:
			p.generateSlidingMoves(sq, c, rookDirections[:], ml)
			p.generateSlidingMoves(sq, c, bishopDirections[:], ml)
		case King:
			p.generateJumpMoves(sq, c, kingAttacks[sq], ml)
			p.generateCastlingMoves(sq, c, ml)
		}
	}
}

func (p *Position) generatePawnMoves(from Square, c Color, ml *MoveList) {
	var forward int
	var startRank, promoRank int
	if c == White {
		forward, startRank, promoRank = 8, 1, 7
	} else {
		forward, startRank, promoRank = -8, 6, 0
	}

	// Pushes
	one := Square(int(from) + forward)
	if one.IsValid() && p.IsEmpty(one) {
		if one.Rank() == promoRank {
			addPromotions(from, one, ml)
		} else {
			ml.Add(NewMove(from, one))
		}

		if from.Rank() == startRank {
			two := Square(int(from) + 2*forward)
			if p.IsEmpty(two) {
				ml.Add(NewMove(from, two))
			}
		}
	}

	// Captures (including en passant)
	for _, df := range [2]int{-1, 1} {
		to, ok := offsetSquare(from.File(), from.Rank(), df, forward/8)
		if !ok {
			continue
		}

		if target := p.squares[to]; target != NoPiece && target.Color() != c {
			if to.Rank() == promoRank {
				addPromotions(from, to, ml)
			} else {
				ml.Add(NewMove(from, to))
			}
		} else if to == p.EnPassant && p.EnPassant != NoSquare {
			ml.Add(NewEnPassant(from, to))
		}
	}
}

func addPromotions(from, to Square, ml *MoveList) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generateJumpMoves handles knights and the king's single steps.
func (p *Position) generateJumpMoves(from Square, c Color, targets []Square, ml *MoveList) {
	for _, to := range targets {
		target := p.squares[to]
		if target == NoPiece || target.Color() != c {
			ml.Add(NewMove(from, to))
		}
	}
}

func (p *Position) generateSlidingMoves(from Square, c Color, dirs []int, ml *MoveList) {
	for _, dir := range dirs {
		for _, to := range rayAttacks[from][dir] {
			target := p.squares[to]
			if target == NoPiece {
				ml.Add(NewMove(from, to))
				continue
			}
			if target.Color() != c {
				ml.Add(NewMove(from, to))
			}
			break
		}
	}
}

func (p *Position) generateCastlingMoves(from Square, c Color, ml *MoveList) {
	home := E1
	if c == Black {
		home = E8
	}
	if from != home {
		return
	}

	them := c.Other()

	// King side: squares between king and rook empty, rook in place, king
	// neither in check nor crossing an attacked square.
	if p.CastlingRights.CanCastle(c, true) &&
		p.IsEmpty(home+1) && p.IsEmpty(home+2) &&
		p.squares[home+3] == NewPiece(Rook, c) &&
		!p.IsSquareAttacked(home, them) &&
		!p.IsSquareAttacked(home+1, them) &&
		!p.IsSquareAttacked(home+2, them) {
		ml.Add(NewCastling(home, home+2))
	}

	// Queen side: b-file square must be empty but may be attacked.
	if p.CastlingRights.CanCastle(c, false) &&
		p.IsEmpty(home-1) && p.IsEmpty(home-2) && p.IsEmpty(home-3) &&
		p.squares[home-4] == NewPiece(Rook, c) &&
		!p.IsSquareAttacked(home, them) &&
		!p.IsSquareAttacked(home-1, them) &&
		!p.IsSquareAttacked(home-2, them) {
		ml.Add(NewCastling(home, home-2))
	}
}

// IsSquareAttacked returns true if sq is attacked by any piece of the given
// color. Used for check detection and castling safety.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	// Pawns
	for _, from := range pawnAttackers[by][sq] {
		if p.squares[from] == NewPiece(Pawn, by) {
			return true
		}
	}

	// Knights
	for _, from := range knightAttacks[sq] {
		if p.squares[from] == NewPiece(Knight, by) {
			return true
		}
	}

	// King
	for _, from := range kingAttacks[sq] {
		if p.squares[from] == NewPiece(King, by) {
			return true
		}
	}

	// Sliders: walk each ray to its first blocker.
	rook := NewPiece(Rook, by)
	bishop := NewPiece(Bishop, by)
	queen := NewPiece(Queen, by)

	for _, dir := range rookDirections {
		for _, from := range rayAttacks[sq][dir] {
			piece := p.squares[from]
			if piece == NoPiece {
				continue
			}
			if piece == rook || piece == queen {
				return true
			}
			break
		}
	}

	for _, dir := range bishopDirections {
		for _, from := range rayAttacks[sq][dir] {
			piece := p.squares[from]
			if piece == NoPiece {
				continue
			}
			if piece == bishop || piece == queen {
				return true
			}
			break
		}
	}

	return false
}

// GenerateLegalMoves generates all legal moves for the side to move:
// pseudo-legal moves filtered by applying each one and rejecting those that
// leave the own king attacked.
func (p *Position) GenerateLegalMoves() *MoveList {
	us := p.SideToMove
	pseudo := NewMoveList()
	p.GeneratePseudoLegalMoves(us, pseudo)

	legal := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		if !p.IsSquareAttacked(p.KingSquare[us], us.Other()) {
			legal.Add(m)
		}
		p.UnmakeMove(m, undo)
	}
	return legal
}

// HasLegalMoves returns true if the side to move has at least one legal
// move. Cheaper than GenerateLegalMoves when only existence matters.
func (p *Position) HasLegalMoves() bool {
	us := p.SideToMove
	pseudo := NewMoveList()
	p.GeneratePseudoLegalMoves(us, pseudo)

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		safe := !p.IsSquareAttacked(p.KingSquare[us], us.Other())
		p.UnmakeMove(m, undo)
		if safe {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no legal moves but is not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
