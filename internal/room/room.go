package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

const DefaultClock = 10 * time.Minute

type Settings struct {
	// Clock - initial time of each color.
	Clock time.Duration
	// Now - wall clock source, replaced in tests.
	Now func() time.Time
}

// Room is a single match. Every exported method runs under the room lock.
type Room struct {
	mu sync.Mutex

	id       string
	colorIDs map[entity.Color]string

	online   map[entity.Color]bool
	started  bool
	closed   bool
	turn     entity.Color
	timeLeft map[entity.Color]time.Duration
	wantDraw map[entity.Color]bool
	board    *entity.Board

	lastTimeUpdate time.Time
	now            func() time.Time
}

// New - creates a room with a fresh id, fresh color ids and the opening layout; nobody is present yet.
func New(settings Settings) *Room {
	if settings.Clock <= 0 {
		settings.Clock = DefaultClock
	}

	if settings.Now == nil {
		settings.Now = time.Now
	}

	return &Room{
		id: uuid.NewString(),
		colorIDs: map[entity.Color]string{
			entity.White: uuid.NewString(),
			entity.Black: uuid.NewString(),
		},
		online:   map[entity.Color]bool{},
		turn:     entity.White,
		timeLeft: map[entity.Color]time.Duration{entity.White: settings.Clock, entity.Black: settings.Clock},
		wantDraw: map[entity.Color]bool{},
		board:    entity.NewBoard(),
		now:      settings.Now,
	}
}

func (that *Room) ID() string {
	return that.id
}

// ColorID - the credential of the color; immutable after creation.
func (that *Room) ColorID(color entity.Color) string {
	return that.colorIDs[color]
}

// Join - marks the color of colorID present. The game starts the first time both colors are present.
func (that *Room) Join(roomID, colorID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed || roomID != that.id {
		return apperror.ErrRoomNotFound
	}

	color, err := that.colorOf(colorID)
	if err != nil {
		return err
	}

	if that.online[color] {
		return fmt.Errorf("%s: %w", color, apperror.ErrColorTaken)
	}

	that.online[color] = true

	if !that.started && that.online[entity.White] && that.online[entity.Black] {
		that.started = true
		that.lastTimeUpdate = that.now()
	}

	return nil
}

// Leave - marks the color absent and reports whether the room is now empty and closed for good.
func (that *Room) Leave(colorID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	color, err := that.colorOf(colorID)
	if err != nil || that.closed {
		return false
	}

	that.online[color] = false

	if !that.online[entity.White] && !that.online[entity.Black] {
		that.closed = true
	}

	return that.closed
}

// Move - debits the clock, then validates and applies the move for the color in turn.
func (that *Room) Move(colorID string, tokens []string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	color, err := that.colorOf(colorID)
	if err != nil {
		return err
	}

	that.updateTime()

	if !that.state().IsPlaying() {
		return apperror.ErrGameNotPlaying
	}

	if color != that.turn {
		return apperror.ErrNotYourTurn
	}

	path, err := entity.ParsePath(tokens)
	if err != nil {
		return err
	}

	if err = checkers.MakeMove(that.board, color, path); err != nil {
		return err
	}

	that.turn = color.Opponent()

	return nil
}

func (that *Room) RequestDraw(colorID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	color, err := that.colorOf(colorID)
	if err != nil {
		return err
	}

	if that.wantDraw[color] {
		return apperror.ErrDrawAlreadyRequested
	}

	that.wantDraw[color] = true

	return nil
}

// CancelDraw - withdraws the color's draw request unless both colors already agreed.
func (that *Room) CancelDraw(colorID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	color, err := that.colorOf(colorID)
	if err != nil {
		return err
	}

	if that.wantDraw[entity.White] && that.wantDraw[entity.Black] {
		return apperror.ErrAlreadyDrawn
	}

	if !that.wantDraw[color] {
		return apperror.ErrDrawNotRequested
	}

	that.wantDraw[color] = false

	return nil
}

// State - evaluates the game without debiting the clock.
func (that *Room) State() entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state()
}

// Snapshot - debits the clock of the color in turn and captures the whole room.
func (that *Room) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.updateTime()

	return Snapshot{
		State:          that.state(),
		PlayerTurn:     that.turn,
		WhiteWantsDraw: that.wantDraw[entity.White],
		BlackWantsDraw: that.wantDraw[entity.Black],
		BlackTime:      that.timeLeft[entity.Black].Milliseconds(),
		WhiteTime:      that.timeLeft[entity.White].Milliseconds(),
		WhiteOnline:    that.online[entity.White],
		BlackOnline:    that.online[entity.Black],
		Board:          that.board.String(),
	}
}

func (that *Room) colorOf(colorID string) (entity.Color, error) {
	for color, id := range that.colorIDs {
		if id == colorID {
			return color, nil
		}
	}

	return "", apperror.ErrUnknownColor
}

func (that *Room) state() entity.GameState {
	switch {
	case !that.started:
		return entity.StateWaiting
	case that.wantDraw[entity.White] && that.wantDraw[entity.Black]:
		return entity.StateDraw
	case checkers.HasLost(that.board, entity.Black, that.timeLeft[entity.Black]):
		return entity.StateWhiteWon
	case checkers.HasLost(that.board, entity.White, that.timeLeft[entity.White]):
		return entity.StateBlackWon
	default:
		return entity.StatePlaying
	}
}

// updateTime - charges the time elapsed since the last update to the color in turn, never below zero.
// Clocks are frozen once the game is over.
func (that *Room) updateTime() {
	if !that.started || that.state().IsFinished() {
		return
	}

	now := that.now()

	left := that.timeLeft[that.turn] - now.Sub(that.lastTimeUpdate)
	if left < 0 {
		left = 0
	}

	that.timeLeft[that.turn] = left
	that.lastTimeUpdate = now
}
