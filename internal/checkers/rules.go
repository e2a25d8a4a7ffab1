package checkers

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

var (
	ErrPathTooShort        = errors.New("move needs a start and a destination")
	ErrNotOwnPiece         = errors.New("no own piece on the square")
	ErrWrongDirection      = errors.New("piece cannot move in that direction")
	ErrDestinationOccupied = errors.New("destination is occupied")
	ErrNothingToCapture    = errors.New("no opponent piece to capture")
	ErrStepAfterSimpleMove = errors.New("simple move cannot be chained")
	ErrChainIncomplete     = errors.New("jump chain can be continued")
)

type direction struct {
	rows int
	cols int
}

// MakeMove - validates the path for the color and, when it is legal, applies it to the board.
func MakeMove(board *entity.Board, color entity.Color, path []entity.Position) error {
	if err := ValidateMove(board, color, path); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	applyMove(board, color, path)

	return nil
}

// ValidateMove - checks a simple move or a jump chain without touching the board.
func ValidateMove(board *entity.Board, color entity.Color, path []entity.Position) error {
	if len(path) < 2 {
		return ErrPathTooShort
	}

	if !color.Owns(board.At(path[0])) {
		return ErrNotOwnPiece
	}

	if abs(path[1].Row-path[0].Row) == 2 {
		return validateJumpChain(board, color, path)
	}

	return validateSimpleMove(board, color, path)
}

func validateSimpleMove(board *entity.Board, color entity.Color, path []entity.Position) error {
	if len(path) != 2 {
		return ErrStepAfterSimpleMove
	}

	from, to := path[0], path[1]
	if !canReach(board.At(from), color, from, to, 1) {
		return ErrWrongDirection
	}

	if !board.At(to).IsEmpty() {
		return ErrDestinationOccupied
	}

	return nil
}

// validateJumpChain - plays the chain on a scratch board so that every step sees earlier captures.
func validateJumpChain(board *entity.Board, color entity.Color, path []entity.Position) error {
	scratch := board.Clone()

	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		if err := validateJump(scratch, color, from, to); err != nil {
			return fmt.Errorf("jump %s-%s: %w", from, to, err)
		}

		scratch.Set(from.Between(to), entity.Empty)
		scratch.Set(to, scratch.At(from))
		scratch.Set(from, entity.Empty)
	}

	if canContinue(scratch, color, path[len(path)-1]) {
		return ErrChainIncomplete
	}

	return nil
}

func validateJump(board *entity.Board, color entity.Color, from, to entity.Position) error {
	piece := board.At(from)
	if !color.Owns(piece) {
		return ErrNotOwnPiece
	}

	if !canReach(piece, color, from, to, 2) {
		return ErrWrongDirection
	}

	if !color.Opponent().Owns(board.At(from.Between(to))) {
		return ErrNothingToCapture
	}

	if !board.At(to).IsEmpty() {
		return ErrDestinationOccupied
	}

	return nil
}

// canContinue - reports whether the piece on the landing square has one more jump.
func canContinue(board *entity.Board, color entity.Color, from entity.Position) bool {
	for _, dir := range directions(board.At(from), color) {
		to := from.Offset(2*dir.rows, 2*dir.cols)
		if to.InBounds() && validateJump(board, color, from, to) == nil {
			return true
		}
	}

	return false
}

// canReach - a man only goes forward, a king goes along any diagonal.
func canReach(piece entity.Piece, color entity.Color, from, to entity.Position, distance int) bool {
	rows, cols := to.Row-from.Row, to.Col-from.Col
	if abs(cols) != distance {
		return false
	}

	if piece.IsKing() {
		return abs(rows) == distance
	}

	return rows == color.Forward()*distance
}

func directions(piece entity.Piece, color entity.Color) []direction {
	forward := color.Forward()
	if !piece.IsKing() {
		return []direction{{forward, -1}, {forward, 1}}
	}

	return []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
}

// applyMove - removes the captured pieces and promotes on the final landing square only.
func applyMove(board *entity.Board, color entity.Color, path []entity.Position) {
	piece := board.At(path[0])

	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		if abs(to.Row-from.Row) == 2 {
			board.Set(from.Between(to), entity.Empty)
		}
	}

	board.Set(path[0], entity.Empty)

	last := path[len(path)-1]
	if last.Row == color.PromotionRow() {
		piece = color.King()
	}
	board.Set(last, piece)
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}

// HasLost - a side with no pieces left or an exhausted clock has lost the game.
func HasLost(board *entity.Board, color entity.Color, remaining time.Duration) bool {
	return board.Count(color) == 0 || remaining <= 0
}
