package entity

type GameState string

const (
	StateWaiting  GameState = "WAITING"
	StatePlaying  GameState = "PLAYING"
	StateDraw     GameState = "DRAW"
	StateWhiteWon GameState = "WHITE_WON"
	StateBlackWon GameState = "BLACK_WON"
)

func (that GameState) IsPlaying() bool {
	return that == StatePlaying
}

// IsFinished - the game reached a draw or a win.
func (that GameState) IsFinished() bool {
	return that == StateDraw || that == StateWhiteWon || that == StateBlackWon
}

// WonBy - the winning state for the color.
func WonBy(color Color) GameState {
	if color == White {
		return StateWhiteWon
	}
	return StateBlackWon
}
