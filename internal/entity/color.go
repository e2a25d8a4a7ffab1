package entity

type Color string

const (
	White Color = "WHITE"
	Black Color = "BLACK"
)

// Man - returns the base piece of the color.
func (that Color) Man() Piece {
	if that == White {
		return WhiteMan
	}
	return BlackMan
}

// King - returns the promoted piece of the color.
func (that Color) King() Piece {
	if that == White {
		return WhiteKing
	}
	return BlackKing
}

// Owns - reports whether the piece is the man or the king of the color.
func (that Color) Owns(piece Piece) bool {
	return piece == that.Man() || piece == that.King()
}

func (that Color) Opponent() Color {
	if that == White {
		return Black
	}
	return White
}

// Forward - row direction in which the men of the color advance.
func (that Color) Forward() int {
	if that == White {
		return -1
	}
	return 1
}

// PromotionRow - back rank of the opponent, where a man becomes a king.
func (that Color) PromotionRow() int {
	if that == White {
		return 0
	}
	return BoardSize - 1
}

func (that Color) String() string {
	return string(that)
}
