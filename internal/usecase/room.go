package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"
)

const maxCreateAttempts = 8

type roomRepo interface {
	Insert(ctx context.Context, room *entity.Room) (bool, error)
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	Mutate(ctx context.Context, code string, fn repository.MutateFunc) (*entity.Room, error)
}

// RoomView - a room as seen by one caller.
type RoomView struct {
	Room      *entity.Room
	Role      entity.Role
	Spectator bool
	Deleted   bool
}

type RoomUseCase struct {
	logger   *slog.Logger
	roomRepo roomRepo

	generateCode func() (string, error)
	now          func() time.Time
}

func NewRoomUseCase(logger *slog.Logger, roomRepo roomRepo) *RoomUseCase {
	return &RoomUseCase{
		logger:   logger,
		roomRepo: roomRepo,

		generateCode: pkg.GenerateRoomCode,
		now:          time.Now,
	}
}

// Create - opens a new room with the caller seated as X. Codes are drawn until one is free.
func (that *RoomUseCase) Create(ctx context.Context, user *entity.User) (*RoomView, error) {
	log := that.logger.With("method", "Create", "uid", user.UID)

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		code, err := that.generateCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}

		room := tictactoe.NewRoom(code, user, that.timestamp())

		inserted, err := that.roomRepo.Insert(ctx, &room)
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}

		if inserted {
			log.Info("room created", "room_code", code, "attempt", attempt)

			return &RoomView{Room: &room, Role: entity.RoleX}, nil
		}

		log.Debug("room code is taken", "room_code", code)
	}

	return nil, apperror.ErrRoomCreateExhausted
}

func (that *RoomUseCase) Get(ctx context.Context, user *entity.User, code string) (*RoomView, error) {
	room, err := that.roomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &RoomView{Room: room, Role: room.RoleOf(user.UID)}, nil
}

// Join - takes seat O when it is free, otherwise returns the caller's seat or a spectator view.
func (that *RoomUseCase) Join(ctx context.Context, user *entity.User, code string) (*RoomView, error) {
	log := that.logger.With("method", "Join", "uid", user.UID, "room_code", code)

	var result tictactoe.JoinResult

	room, err := that.roomRepo.Mutate(ctx, code, func(current *entity.Room) repository.Decision {
		next, joined, changed := tictactoe.Join(*current, user)
		result = joined

		return that.apply(current, next, changed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	if result.Spectator {
		log.Debug("joined as spectator")
	}

	return &RoomView{Room: room, Role: result.Role, Spectator: result.Spectator}, nil
}

// Move - places the caller's mark. Illegal moves return the room unchanged.
func (that *RoomUseCase) Move(ctx context.Context, user *entity.User, code string, index int) (*RoomView, error) {
	var moved bool

	room, err := that.roomRepo.Mutate(ctx, code, func(current *entity.Room) repository.Decision {
		next, changed := tictactoe.Move(*current, user.UID, index)
		moved = changed

		return that.apply(current, next, changed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if moved && room.IsFinished() {
		that.logger.Info("round finished", "method", "Move", "room_code", code,
			"round", room.Round, "winner", string(room.Winner))
	}

	return &RoomView{Room: room, Role: room.RoleOf(user.UID)}, nil
}

func (that *RoomUseCase) NextRound(ctx context.Context, user *entity.User, code string) (*RoomView, error) {
	room, err := that.roomRepo.Mutate(ctx, code, func(current *entity.Room) repository.Decision {
		next, changed := tictactoe.NextRound(*current, user.UID)

		return that.apply(current, next, changed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start next round: %w", err)
	}

	return &RoomView{Room: room, Role: room.RoleOf(user.UID)}, nil
}

// Leave - frees the caller's seat and deletes the room once nobody is seated.
func (that *RoomUseCase) Leave(ctx context.Context, user *entity.User, code string) (*RoomView, error) {
	log := that.logger.With("method", "Leave", "uid", user.UID, "room_code", code)

	var deleted bool

	room, err := that.roomRepo.Mutate(ctx, code, func(current *entity.Room) repository.Decision {
		next, gone, changed := tictactoe.Leave(*current, user.UID)
		deleted = gone

		if gone {
			return repository.Delete
		}

		return that.apply(current, next, changed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to leave room: %w", err)
	}

	if deleted {
		log.Info("room deleted")

		return &RoomView{Deleted: true}, nil
	}

	return &RoomView{Room: room}, nil
}

// apply - copies next into the locked row when the state machine changed it.
func (that *RoomUseCase) apply(current *entity.Room, next entity.Room, changed bool) repository.Decision {
	if !changed {
		return repository.Keep
	}

	next.UpdatedAt = that.timestamp()
	*current = next

	return repository.Save
}

// timestamp - UTC with the precision every backend can store.
func (that *RoomUseCase) timestamp() time.Time {
	return that.now().UTC().Truncate(time.Microsecond)
}
