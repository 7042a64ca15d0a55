package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type memoryRooms struct {
	mutex sync.Mutex
	rows  map[string]entity.Room
	locks map[string]*roomLock
}

// roomLock - a per-code writer lock shared by the Mutate calls waiting on it.
type roomLock struct {
	sync.Mutex
	waiters int
}

// NewMemoryRoomRepository - process local rooms, one writer per room code.
func NewMemoryRoomRepository() RoomRepository {
	return &memoryRooms{
		rows:  make(map[string]entity.Room),
		locks: make(map[string]*roomLock),
	}
}

func (that *memoryRooms) Insert(_ context.Context, room *entity.Room) (bool, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	if _, exists := that.rows[room.Code]; exists {
		return false, nil
	}

	that.rows[room.Code] = cloneRoom(*room)

	return true, nil
}

func (that *memoryRooms) GetByCode(_ context.Context, code string) (*entity.Room, error) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	room, exists := that.rows[code]
	if !exists {
		return nil, apperror.ErrRoomNotFound
	}

	room = cloneRoom(room)

	return &room, nil
}

func (that *memoryRooms) Mutate(ctx context.Context, code string, fn MutateFunc) (*entity.Room, error) {
	lock := that.acquire(code)
	defer that.release(code, lock)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	room, err := that.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	switch fn(room) {
	case Save:
		that.mutex.Lock()
		that.rows[code] = cloneRoom(*room)
		that.mutex.Unlock()
	case Delete:
		that.mutex.Lock()
		delete(that.rows, code)
		that.mutex.Unlock()

		return nil, nil
	case Keep:
	}

	return room, nil
}

// acquire - takes the writer lock for code, creating it for the first waiter.
func (that *memoryRooms) acquire(code string) *roomLock {
	that.mutex.Lock()
	lock, ok := that.locks[code]
	if !ok {
		lock = &roomLock{}
		that.locks[code] = lock
	}
	lock.waiters++
	that.mutex.Unlock()

	lock.Lock()

	return lock
}

// release - unlocks and forgets the lock once nobody is waiting on it.
func (that *memoryRooms) release(code string, lock *roomLock) {
	lock.Unlock()

	that.mutex.Lock()
	defer that.mutex.Unlock()

	lock.waiters--
	if lock.waiters == 0 {
		delete(that.locks, code)
	}
}

// cloneRoom - copies the parts of a room that share memory.
func cloneRoom(room entity.Room) entity.Room {
	if room.WinnerLine != nil {
		room.WinnerLine = append([]int(nil), room.WinnerLine...)
	}
	if room.Players.X != nil {
		x := *room.Players.X
		room.Players.X = &x
	}
	if room.Players.O != nil {
		o := *room.Players.O
		room.Players.O = &o
	}

	return room
}
