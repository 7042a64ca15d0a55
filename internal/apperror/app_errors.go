package apperror

import "errors"

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomCreateExhausted = errors.New("room code attempts exhausted")
	ErrRoomBusy            = errors.New("room is being updated concurrently")
	ErrUnauthorized        = errors.New("unauthorized")
)
