package entity

import "strings"

const BoardSize = 8

// Board is an 8x8 grid; row 0 is rank 8 as printed to the players.
type Board struct {
	Cells [BoardSize][BoardSize]Piece
}

// NewBoard - returns the opening layout: black on rows 0-2, white on rows 5-7.
func NewBoard() *Board {
	board := &Board{}
	for row := range board.Cells {
		for col := range board.Cells[row] {
			board.Cells[row][col] = Empty

			if (row+col)%2 == 0 {
				continue
			}

			switch {
			case row < 3:
				board.Cells[row][col] = BlackMan
			case row > 4:
				board.Cells[row][col] = WhiteMan
			}
		}
	}

	return board
}

// ParseBoard - builds a board from its 64-character encoding, row 0 first.
func ParseBoard(encoded string) (*Board, bool) {
	if len(encoded) != BoardSize*BoardSize {
		return nil, false
	}

	board := &Board{}
	for i := 0; i < len(encoded); i++ {
		piece := Piece(encoded[i])
		switch piece {
		case Empty, WhiteMan, WhiteKing, BlackMan, BlackKing:
		default:
			return nil, false
		}
		board.Cells[i/BoardSize][i%BoardSize] = piece
	}

	return board, true
}

func (that *Board) At(pos Position) Piece {
	return that.Cells[pos.Row][pos.Col]
}

func (that *Board) Set(pos Position, piece Piece) {
	that.Cells[pos.Row][pos.Col] = piece
}

// Count - number of pieces, men and kings, owned by the color.
func (that *Board) Count(color Color) int {
	count := 0
	for _, row := range that.Cells {
		for _, cell := range row {
			if color.Owns(cell) {
				count++
			}
		}
	}

	return count
}

// Clone - deep copy, used to play a jump chain on a scratch board.
func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}

// String - the 64-character wire encoding, row by row.
func (that *Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for _, row := range that.Cells {
		for _, cell := range row {
			sb.WriteByte(byte(cell))
		}
	}

	return sb.String()
}
