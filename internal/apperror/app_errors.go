package apperror

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrColorTaken        = errors.New("color is already taken")
	ErrUnknownColor      = errors.New("color id does not belong to the room")
	ErrSnapshotNotFound  = errors.New("snapshot not found")

	ErrGameNotPlaying      = errors.New("game is not in progress")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrIllegalMove         = errors.New("illegal move")
	ErrMalformedCoordinate = errors.New("malformed coordinate")

	ErrDrawAlreadyRequested = errors.New("draw is already requested")
	ErrDrawNotRequested     = errors.New("draw is not requested")
	ErrAlreadyDrawn         = errors.New("game is already drawn")
)
