package entity

import (
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
)

// Position is a board cell in array coordinates: row 0 is rank 8, column 0 is file a.
type Position struct {
	Row int
	Col int
}

// ParsePosition - maps a token like "c3" to array coordinates.
func ParsePosition(token string) (Position, error) {
	if len(token) != 2 {
		return Position{}, fmt.Errorf("%w: %q", apperror.ErrMalformedCoordinate, token)
	}

	rank, err := strconv.Atoi(token[1:2])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q", apperror.ErrMalformedCoordinate, token)
	}

	pos := Position{Row: BoardSize - rank, Col: int(token[0]) - 'a'}
	if !pos.InBounds() {
		return Position{}, fmt.Errorf("%w: %q", apperror.ErrMalformedCoordinate, token)
	}

	return pos, nil
}

// ParsePath - parses every token; a single malformed token invalidates the whole path.
func ParsePath(tokens []string) ([]Position, error) {
	path := make([]Position, 0, len(tokens))
	for _, token := range tokens {
		pos, err := ParsePosition(token)
		if err != nil {
			return nil, err
		}
		path = append(path, pos)
	}

	return path, nil
}

func (that Position) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Position) Offset(rows, cols int) Position {
	return Position{Row: that.Row + rows, Col: that.Col + cols}
}

// Between - the cell halfway to other; meaningful for two-row jumps.
func (that Position) Between(other Position) Position {
	return Position{Row: (that.Row + other.Row) / 2, Col: (that.Col + other.Col) / 2}
}

// String - renders the position back to its file/rank token.
func (that Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+that.Col, BoardSize-that.Row)
}
