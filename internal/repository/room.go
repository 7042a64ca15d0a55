package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Decision - what Mutate does with the row once the callback returns.
type Decision int

const (
	// Keep - leave the row untouched.
	Keep Decision = iota
	// Save - write the callback's changes.
	Save
	// Delete - remove the row.
	Delete
)

// MutateFunc - computes the next room from the locked row. It may be called more than once
// for a single Mutate, so it must not have side effects beyond the room it is handed.
type MutateFunc func(room *entity.Room) Decision

// RoomRepository - serialized access to room rows keyed by room code.
type RoomRepository interface {
	// Insert stores a new room unless its code is taken. It reports whether the room was stored.
	Insert(ctx context.Context, room *entity.Room) (bool, error)

	// GetByCode reads the last committed row.
	GetByCode(ctx context.Context, code string) (*entity.Room, error)

	// Mutate runs fn against the row while holding it exclusively and applies fn's decision.
	// It returns the resulting room, or nil when the row was deleted.
	Mutate(ctx context.Context, code string, fn MutateFunc) (*entity.Room, error)
}

func roomKey(code string) string {
	return "room:" + code
}
