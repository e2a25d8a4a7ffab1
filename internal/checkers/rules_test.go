package checkers

import (
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyBoard(t *testing.T) *entity.Board {
	t.Helper()

	board, ok := entity.ParseBoard(strings.Repeat(string(entity.Empty), entity.BoardSize*entity.BoardSize))
	require.True(t, ok)

	return board
}

func boardWith(t *testing.T, pieces map[string]entity.Piece) *entity.Board {
	t.Helper()

	board := emptyBoard(t)
	for token, piece := range pieces {
		board.Set(at(t, token), piece)
	}

	return board
}

func at(t *testing.T, token string) entity.Position {
	t.Helper()

	pos, err := entity.ParsePosition(token)
	require.NoError(t, err)

	return pos
}

func path(t *testing.T, tokens ...string) []entity.Position {
	t.Helper()

	positions, err := entity.ParsePath(tokens)
	require.NoError(t, err)

	return positions
}

func TestMakeMove_SimpleMove(t *testing.T) {
	t.Run("Man steps forward onto an empty square", func(t *testing.T) {
		// Given: the opening layout
		board := entity.NewBoard()

		// When: white moves c3-d4
		err := MakeMove(board, entity.White, path(t, "c3", "d4"))

		// Then: the man is on d4 and c3 is empty
		require.NoError(t, err)
		assert.Equal(t, entity.WhiteMan, board.At(at(t, "d4")))
		assert.Equal(t, entity.Empty, board.At(at(t, "c3")))
		assert.Equal(t, 12, board.Count(entity.White))
	})

	t.Run("Black man steps towards row 7", func(t *testing.T) {
		board := entity.NewBoard()

		err := MakeMove(board, entity.Black, path(t, "d6", "e5"))

		require.NoError(t, err)
		assert.Equal(t, entity.BlackMan, board.At(at(t, "e5")))
	})

	t.Run("Man cannot step backward", func(t *testing.T) {
		// Given: a white man in the centre
		board := boardWith(t, map[string]entity.Piece{"d4": entity.WhiteMan})
		before := board.String()

		// When: it steps back towards rank 1
		err := MakeMove(board, entity.White, path(t, "d4", "c3"))

		// Then: the move is rejected and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, ErrWrongDirection)
		assert.Equal(t, before, board.String())
	})

	t.Run("King steps in any diagonal direction", func(t *testing.T) {
		for _, target := range []string{"c3", "e3", "c5", "e5"} {
			board := boardWith(t, map[string]entity.Piece{"d4": entity.WhiteKing})

			err := MakeMove(board, entity.White, path(t, "d4", target))

			require.NoError(t, err, target)
			assert.Equal(t, entity.WhiteKing, board.At(at(t, target)), target)
		}
	})

	t.Run("Occupied destination is rejected", func(t *testing.T) {
		// Given: a white man facing a black man
		board := boardWith(t, map[string]entity.Piece{"c3": entity.WhiteMan, "d4": entity.BlackMan})

		// When: white steps onto the black man
		err := MakeMove(board, entity.White, path(t, "c3", "d4"))

		// Then: the step is rejected
		require.ErrorIs(t, err, ErrDestinationOccupied)
	})

	t.Run("Simple move cannot carry more squares", func(t *testing.T) {
		board := entity.NewBoard()

		err := MakeMove(board, entity.White, path(t, "c3", "d4", "e5"))

		require.ErrorIs(t, err, ErrStepAfterSimpleMove)
		assert.Equal(t, entity.NewBoard(), board)
	})

	t.Run("Straight or long steps are rejected", func(t *testing.T) {
		board := boardWith(t, map[string]entity.Piece{"d4": entity.WhiteKing})

		for _, target := range []string{"d5", "e4", "g7"} {
			err := MakeMove(board, entity.White, path(t, "d4", target))
			require.ErrorIs(t, err, ErrWrongDirection, target)
		}
	})
}

func TestMakeMove_Ownership(t *testing.T) {
	t.Run("Cannot move an opponent piece", func(t *testing.T) {
		board := entity.NewBoard()

		err := MakeMove(board, entity.White, path(t, "d6", "e5"))

		require.ErrorIs(t, err, ErrNotOwnPiece)
	})

	t.Run("Cannot move from an empty square", func(t *testing.T) {
		board := entity.NewBoard()

		err := MakeMove(board, entity.White, path(t, "d4", "e5"))

		require.ErrorIs(t, err, ErrNotOwnPiece)
	})

	t.Run("Needs a start and a destination", func(t *testing.T) {
		board := entity.NewBoard()

		require.ErrorIs(t, MakeMove(board, entity.White, path(t, "c3")), ErrPathTooShort)
		require.ErrorIs(t, MakeMove(board, entity.White, nil), ErrPathTooShort)
	})
}

func TestMakeMove_Jumps(t *testing.T) {
	t.Run("Single jump removes the captured piece", func(t *testing.T) {
		// Given: a white man with a black man diagonally ahead and an empty square behind it
		board := boardWith(t, map[string]entity.Piece{"c3": entity.WhiteMan, "d4": entity.BlackMan})

		// When: white jumps c3-e5
		err := MakeMove(board, entity.White, path(t, "c3", "e5"))

		// Then: the black man is captured
		require.NoError(t, err)
		assert.Equal(t, entity.WhiteMan, board.At(at(t, "e5")))
		assert.Equal(t, entity.Empty, board.At(at(t, "d4")))
		assert.Equal(t, entity.Empty, board.At(at(t, "c3")))
		assert.Equal(t, 0, board.Count(entity.Black))
	})

	t.Run("Jump over an own piece or an empty square is rejected", func(t *testing.T) {
		board := boardWith(t, map[string]entity.Piece{"c3": entity.WhiteMan, "d4": entity.WhiteMan})
		require.ErrorIs(t, MakeMove(board, entity.White, path(t, "c3", "e5")), ErrNothingToCapture)

		board = boardWith(t, map[string]entity.Piece{"c3": entity.WhiteMan})
		require.ErrorIs(t, MakeMove(board, entity.White, path(t, "c3", "e5")), ErrNothingToCapture)
	})

	t.Run("Jump onto an occupied square is rejected", func(t *testing.T) {
		board := boardWith(t, map[string]entity.Piece{
			"c3": entity.WhiteMan,
			"d4": entity.BlackMan,
			"e5": entity.BlackMan,
		})

		err := MakeMove(board, entity.White, path(t, "c3", "e5"))

		require.ErrorIs(t, err, ErrDestinationOccupied)
	})

	t.Run("Man cannot jump backward but a king can", func(t *testing.T) {
		// Given: a black man behind a white piece on e5
		pieces := map[string]entity.Piece{"e5": entity.WhiteMan, "d4": entity.BlackMan}

		// When: the white man jumps backward
		board := boardWith(t, pieces)
		err := MakeMove(board, entity.White, path(t, "e5", "c3"))

		// Then: it is rejected
		require.ErrorIs(t, err, ErrWrongDirection)

		// When: a white king makes the same jump
		pieces["e5"] = entity.WhiteKing
		board = boardWith(t, pieces)
		err = MakeMove(board, entity.White, path(t, "e5", "c3"))

		// Then: it is accepted
		require.NoError(t, err)
		assert.Equal(t, entity.WhiteKing, board.At(at(t, "c3")))
		assert.Equal(t, entity.Empty, board.At(at(t, "d4")))
	})

	t.Run("Chain must be completed", func(t *testing.T) {
		// Given: two black men that can be captured one after another
		pieces := map[string]entity.Piece{
			"c3": entity.WhiteMan,
			"d4": entity.BlackMan,
			"f6": entity.BlackMan,
		}
		board := boardWith(t, pieces)
		before := board.String()

		// When: white stops after the first jump
		err := MakeMove(board, entity.White, path(t, "c3", "e5"))

		// Then: the move is rejected and nothing changes
		require.ErrorIs(t, err, ErrChainIncomplete)
		assert.Equal(t, before, board.String())

		// When: white completes the chain
		err = MakeMove(board, entity.White, path(t, "c3", "e5", "g7"))

		// Then: both black men are captured
		require.NoError(t, err)
		assert.Equal(t, entity.WhiteMan, board.At(at(t, "g7")))
		assert.Equal(t, 0, board.Count(entity.Black))
		assert.Equal(t, 1, board.Count(entity.White))
	})

	t.Run("Man continuation only looks forward", func(t *testing.T) {
		// Given: after c3-e5 a black man on f4 sits behind the white man
		board := boardWith(t, map[string]entity.Piece{
			"c3": entity.WhiteMan,
			"d4": entity.BlackMan,
			"f4": entity.BlackMan,
		})

		// When: white jumps once
		err := MakeMove(board, entity.White, path(t, "c3", "e5"))

		// Then: the backward capture does not force a continuation
		require.NoError(t, err)
		assert.Equal(t, entity.BlackMan, board.At(at(t, "f4")))
	})

	t.Run("King continuation looks in every direction", func(t *testing.T) {
		// Given: the same position with a white king
		board := boardWith(t, map[string]entity.Piece{
			"c3": entity.WhiteKing,
			"d4": entity.BlackMan,
			"f4": entity.BlackMan,
		})

		// When: the king stops after the first jump
		err := MakeMove(board, entity.White, path(t, "c3", "e5"))

		// Then: it has to take f4 as well
		require.ErrorIs(t, err, ErrChainIncomplete)
		require.NoError(t, MakeMove(board, entity.White, path(t, "c3", "e5", "g3")))
		assert.Equal(t, 0, board.Count(entity.Black))
	})

	t.Run("Chain steps see earlier captures", func(t *testing.T) {
		// Given: a king that jumps a piece and comes back over the same square
		board := boardWith(t, map[string]entity.Piece{
			"c3": entity.WhiteKing,
			"d4": entity.BlackMan,
		})

		// When: it tries to capture d4 twice
		err := MakeMove(board, entity.White, path(t, "c3", "e5", "c3"))

		// Then: the second jump has nothing to capture
		require.ErrorIs(t, err, ErrNothingToCapture)
		assert.Equal(t, entity.BlackMan, board.At(at(t, "d4")))
	})

	t.Run("King chain may land back on its start square", func(t *testing.T) {
		// Given: four black men around a white king
		board := boardWith(t, map[string]entity.Piece{
			"c3": entity.WhiteKing,
			"d4": entity.BlackMan,
			"f4": entity.BlackMan,
			"f2": entity.BlackMan,
			"d2": entity.BlackMan,
		})

		// When: the king jumps a full circle
		err := MakeMove(board, entity.White, path(t, "c3", "e5", "g3", "e1", "c3"))

		// Then: the vacated start square is a valid landing and every man is taken
		require.NoError(t, err)
		assert.Equal(t, entity.WhiteKing, board.At(at(t, "c3")))
		assert.Equal(t, 0, board.Count(entity.Black))
		assert.Equal(t, 1, board.Count(entity.White))
	})

	t.Run("Only the chosen piece is forced to capture", func(t *testing.T) {
		// Given: white could capture with c3 but moves another man
		board := boardWith(t, map[string]entity.Piece{
			"c3": entity.WhiteMan,
			"d4": entity.BlackMan,
			"g3": entity.WhiteMan,
		})

		// When: white plays a quiet move elsewhere
		err := MakeMove(board, entity.White, path(t, "g3", "h4"))

		// Then: it is accepted
		require.NoError(t, err)
	})
}

func TestMakeMove_Promotion(t *testing.T) {
	t.Run("White man becomes a king on row 0", func(t *testing.T) {
		board := boardWith(t, map[string]entity.Piece{"a7": entity.WhiteMan})

		require.NoError(t, MakeMove(board, entity.White, path(t, "a7", "b8")))

		assert.Equal(t, entity.WhiteKing, board.At(at(t, "b8")))
	})

	t.Run("Black man becomes a king on row 7", func(t *testing.T) {
		board := boardWith(t, map[string]entity.Piece{"c2": entity.BlackMan})

		require.NoError(t, MakeMove(board, entity.Black, path(t, "c2", "d1")))

		assert.Equal(t, entity.BlackKing, board.At(at(t, "d1")))
	})

	t.Run("Jump landing on the back rank promotes", func(t *testing.T) {
		board := boardWith(t, map[string]entity.Piece{"b6": entity.WhiteMan, "c7": entity.BlackMan})

		require.NoError(t, MakeMove(board, entity.White, path(t, "b6", "d8")))

		assert.Equal(t, entity.WhiteKing, board.At(at(t, "d8")))
		assert.Equal(t, entity.Empty, board.At(at(t, "c7")))
	})

	t.Run("Man is not promoted before reaching the back rank", func(t *testing.T) {
		board := boardWith(t, map[string]entity.Piece{"a5": entity.WhiteMan})

		require.NoError(t, MakeMove(board, entity.White, path(t, "a5", "b6")))

		assert.Equal(t, entity.WhiteMan, board.At(at(t, "b6")))
	})
}

func TestHasLost(t *testing.T) {
	board := boardWith(t, map[string]entity.Piece{"c3": entity.WhiteMan})

	assert.False(t, HasLost(board, entity.White, time.Minute))
	assert.True(t, HasLost(board, entity.White, 0))
	assert.True(t, HasLost(board, entity.Black, time.Minute))
}
