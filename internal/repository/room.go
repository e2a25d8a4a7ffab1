package repository

import (
	"sync"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/room"
)

// RoomRepository is the process-wide registry of live rooms.
type RoomRepository interface {
	Create(room *room.Room) error
	GetByID(id string) (*room.Room, error)
	DeleteByID(id string)
	Count() int
}

type memRoom struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewRoomRepository() RoomRepository {
	return &memRoom{
		rooms: make(map[string]*room.Room),
	}
}

func (that *memRoom) Create(r *room.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[r.ID()]; ok {
		return apperror.ErrRoomAlreadyExists
	}

	that.rooms[r.ID()] = r

	return nil
}

func (that *memRoom) GetByID(id string) (*room.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	r, ok := that.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return r, nil
}

func (that *memRoom) DeleteByID(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, id)
}

func (that *memRoom) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}
