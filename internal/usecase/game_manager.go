package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/rocketscienceinc/checkers-backend/internal/room"
)

type roomRepo interface {
	Create(room *room.Room) error
	GetByID(id string) (*room.Room, error)
	DeleteByID(id string)
	Count() int
}

type snapshotRepo interface {
	Save(ctx context.Context, roomID string, snapshot room.Snapshot) error
	DeleteByID(ctx context.Context, roomID string) error
}

// CreatedRoom - the credentials handed to the creator; EnemyColorID is meant for the opponent.
type CreatedRoom struct {
	RoomID        string
	PlayerColorID string
	EnemyColorID  string
}

type GameManager struct {
	logger *slog.Logger

	roomRepo     roomRepo
	snapshotRepo snapshotRepo

	settings room.Settings
}

// NewGameManager - snapshotRepo may be nil, then nothing is mirrored.
func NewGameManager(logger *slog.Logger, roomRepo roomRepo, snapshotRepo snapshotRepo, settings room.Settings) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		roomRepo:     roomRepo,
		snapshotRepo: snapshotRepo,

		settings: settings,
	}
}

// CreateRoom - registers a new room and seats the creator on a random color.
func (that *GameManager) CreateRoom(ctx context.Context) (*CreatedRoom, error) {
	log := that.logger.With("method", "CreateRoom")

	newRoom := room.New(that.settings)
	if err := that.roomRepo.Create(newRoom); err != nil {
		return nil, fmt.Errorf("failed to register room: %w", err)
	}

	player, enemy := randomColors()
	if err := newRoom.Join(newRoom.ID(), newRoom.ColorID(player)); err != nil {
		that.roomRepo.DeleteByID(newRoom.ID())
		return nil, fmt.Errorf("failed to seat creator: %w", err)
	}

	that.mirror(ctx, newRoom)

	log.Debug("room created", "room_id", newRoom.ID(), "creator_color", player)

	return &CreatedRoom{
		RoomID:        newRoom.ID(),
		PlayerColorID: newRoom.ColorID(player),
		EnemyColorID:  newRoom.ColorID(enemy),
	}, nil
}

func (that *GameManager) JoinRoom(ctx context.Context, roomID, colorID string) error {
	existingRoom, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if err = existingRoom.Join(roomID, colorID); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	that.mirror(ctx, existingRoom)

	return nil
}

// LeaveRoom - releases the color; the room is removed once both colors are gone.
func (that *GameManager) LeaveRoom(ctx context.Context, roomID, colorID string) error {
	existingRoom, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if !existingRoom.Leave(colorID) {
		that.mirror(ctx, existingRoom)
		return nil
	}

	that.deleteRoom(ctx, roomID)

	return nil
}

func (that *GameManager) MakeMove(ctx context.Context, roomID, colorID string, coordinates []string) error {
	existingRoom, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if err = existingRoom.Move(colorID, coordinates); err != nil {
		return fmt.Errorf("failed make move: %w", err)
	}

	that.mirror(ctx, existingRoom)

	return nil
}

func (that *GameManager) RequestDraw(ctx context.Context, roomID, colorID string) error {
	existingRoom, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if err = existingRoom.RequestDraw(colorID); err != nil {
		return fmt.Errorf("failed to request a draw: %w", err)
	}

	that.mirror(ctx, existingRoom)

	return nil
}

func (that *GameManager) CancelDraw(ctx context.Context, roomID, colorID string) error {
	existingRoom, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if err = existingRoom.CancelDraw(colorID); err != nil {
		return fmt.Errorf("failed to cancel draw request: %w", err)
	}

	that.mirror(ctx, existingRoom)

	return nil
}

func (that *GameManager) GetSnapshot(_ context.Context, roomID string) (room.Snapshot, error) {
	existingRoom, err := that.roomRepo.GetByID(roomID)
	if err != nil {
		return room.Snapshot{}, fmt.Errorf("failed to get room: %w", err)
	}

	return existingRoom.Snapshot(), nil
}

func (that *GameManager) ActiveRooms() int {
	return that.roomRepo.Count()
}

// mirror - best effort copy of the room to the snapshot store.
func (that *GameManager) mirror(ctx context.Context, r *room.Room) {
	if that.snapshotRepo == nil {
		return
	}

	log := that.logger.With("method", "mirror")

	if err := that.snapshotRepo.Save(ctx, r.ID(), r.Snapshot()); err != nil {
		log.Error("failed to save snapshot", "room_id", r.ID(), "error", err)
	}
}

func (that *GameManager) deleteRoom(ctx context.Context, roomID string) {
	log := that.logger.With("method", "deleteRoom")

	that.roomRepo.DeleteByID(roomID)

	if that.snapshotRepo != nil {
		// an expired key is already gone
		err := that.snapshotRepo.DeleteByID(ctx, roomID)
		if err != nil && !errors.Is(err, apperror.ErrSnapshotNotFound) {
			log.Error("failed to delete snapshot", "room_id", roomID, "error", err)
		}
	}

	log.Info("room deleted", "room_id", roomID)
}

func randomColors() (entity.Color, entity.Color) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return entity.White, entity.Black
	}
	return entity.Black, entity.White
}
