package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/room"
)

func TestRoomRepository_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		// Given: an empty registry and a new room
		roomRepo := NewRoomRepository()
		r := room.New(room.Settings{})

		// When: the room is registered
		err := roomRepo.Create(r)

		// Then: it can be found by its id
		require.NoError(t, err)
		found, err := roomRepo.GetByID(r.ID())
		require.NoError(t, err)
		assert.Same(t, r, found)
		assert.Equal(t, 1, roomRepo.Count())
	})

	t.Run("Create_AlreadyExists", func(t *testing.T) {
		roomRepo := NewRoomRepository()
		r := room.New(room.Settings{})
		require.NoError(t, roomRepo.Create(r))

		err := roomRepo.Create(r)

		require.ErrorIs(t, err, apperror.ErrRoomAlreadyExists)
		assert.Equal(t, 1, roomRepo.Count())
	})
}

func TestRoomRepository_GetByID(t *testing.T) {
	roomRepo := NewRoomRepository()

	// When: GetByID is called with an unknown id
	found, err := roomRepo.GetByID("9999999")

	// Then: ErrRoomNotFound is returned
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	assert.Nil(t, found)
}

func TestRoomRepository_DeleteByID(t *testing.T) {
	// Given: a registered room
	roomRepo := NewRoomRepository()
	r := room.New(room.Settings{})
	require.NoError(t, roomRepo.Create(r))

	// When: it is deleted twice
	roomRepo.DeleteByID(r.ID())
	roomRepo.DeleteByID(r.ID())

	// Then: lookups fail
	_, err := roomRepo.GetByID(r.ID())
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	assert.Equal(t, 0, roomRepo.Count())
}

func TestRoomRepository_Concurrent(t *testing.T) {
	roomRepo := NewRoomRepository()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r := room.New(room.Settings{})
			assert.NoError(t, roomRepo.Create(r))
			_, err := roomRepo.GetByID(r.ID())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, roomRepo.Count())
}
