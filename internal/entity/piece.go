package entity

// Piece is the content of a single board cell, encoded the way it is sent on the wire.
type Piece byte

const (
	Empty     Piece = '0'
	WhiteMan  Piece = 'w'
	WhiteKing Piece = 'W'
	BlackMan  Piece = 'b'
	BlackKing Piece = 'B'
)

func (that Piece) IsKing() bool {
	return that == WhiteKing || that == BlackKing
}

func (that Piece) IsEmpty() bool {
	return that == Empty
}
