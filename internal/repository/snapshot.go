package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/room"
)

// SnapshotRepository mirrors room snapshots to redis; rooms are never restored from it.
type SnapshotRepository interface {
	Save(ctx context.Context, roomID string, snapshot room.Snapshot) error
	DeleteByID(ctx context.Context, roomID string) error
}

type dbSnapshot struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotRepository(client *redis.Client, ttl time.Duration) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		ttl:    ttl,
	}
}

func snapshotKey(roomID string) string {
	return "room:" + roomID
}

func (that *dbSnapshot) Save(ctx context.Context, roomID string, snapshot room.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, snapshotKey(roomID), snapshotJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) DeleteByID(ctx context.Context, roomID string) error {
	deleted, err := that.client.Del(ctx, snapshotKey(roomID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSnapshotNotFound
	}

	return nil
}
