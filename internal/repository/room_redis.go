package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// maxWatchAttempts - how many times a WATCH transaction is replayed after another writer touched the key.
const maxWatchAttempts = 16

type redisRooms struct {
	client *redis.Client
}

// NewRedisRoomRepository - rooms stored as JSON documents, mutations serialized with WATCH/MULTI.
func NewRedisRoomRepository(client *redis.Client) RoomRepository {
	return &redisRooms{
		client: client,
	}
}

func (that *redisRooms) Insert(ctx context.Context, room *entity.Room) (bool, error) {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return false, fmt.Errorf("could not marshal room: %w", err)
	}

	inserted, err := that.client.SetNX(ctx, roomKey(room.Code), roomJSON, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to insert room: %w", err)
	}

	return inserted, nil
}

func (that *redisRooms) GetByCode(ctx context.Context, code string) (*entity.Room, error) {
	response, err := that.client.Get(ctx, roomKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}

	return decodeRoom(response)
}

func (that *redisRooms) Mutate(ctx context.Context, code string, fn MutateFunc) (*entity.Room, error) {
	key := roomKey(code)

	var result *entity.Room

	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrRoomNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to get room by code: %w", err)
		}

		room, err := decodeRoom(response)
		if err != nil {
			return err
		}

		decision := fn(room)

		if decision == Keep {
			result = room
			return nil
		}

		var roomJSON []byte
		if decision == Save {
			if roomJSON, err = json.Marshal(room); err != nil {
				return fmt.Errorf("could not marshal room: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if decision == Delete {
				pipe.Del(ctx, key)
			} else {
				pipe.Set(ctx, key, roomJSON, 0)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if decision == Save {
			result = room
		} else {
			result = nil
		}

		return nil
	}

	for range maxWatchAttempts {
		err := that.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if errors.Is(err, apperror.ErrRoomNotFound) {
			return nil, apperror.ErrRoomNotFound
		}

		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return nil, fmt.Errorf("%w: room %s", apperror.ErrRoomBusy, code)
}

func decodeRoom(raw []byte) (*entity.Room, error) {
	var room entity.Room
	if err := json.Unmarshal(raw, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}
