package tictactoe

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// JoinResult - what a join granted the caller.
type JoinResult struct {
	Role      entity.Role
	Spectator bool
}

// NewRoom - a waiting room with the owner seated as X.
func NewRoom(code string, owner *entity.User, now time.Time) entity.Room {
	return entity.Room{
		Code:        code,
		CurrentTurn: entity.MarkX,
		Status:      entity.StatusWaiting,
		Round:       1,
		Players: entity.Seats{
			X: owner.SeatAs(entity.RoleX),
		},
		UpdatedAt: now,
	}
}

// Join - seats the user as O when the seat is free. Seated users get their seat back,
// everybody else becomes a spectator, also in a finished room whose O seat is held.
func Join(room entity.Room, user *entity.User) (entity.Room, JoinResult, bool) {
	if role := room.RoleOf(user.UID); role != entity.RoleNone {
		return room, JoinResult{Role: role}, false
	}

	if room.Players.O != nil {
		return room, JoinResult{Spectator: true}, false
	}

	room.Players.O = user.SeatAs(entity.RoleO)
	if room.IsWaiting() && room.Players.Full() {
		room.Status = entity.StatusPlaying
	}

	return room, JoinResult{Role: entity.RoleO}, true
}

// Move - places the caller's mark on index. Anything a racing or stale client could send
// (wrong phase, wrong turn, no seat, bad index, taken cell) leaves the room unchanged.
func Move(room entity.Room, uid string, index int) (entity.Room, bool) {
	if !room.IsPlaying() {
		return room, false
	}

	role := room.RoleOf(uid)
	if role == entity.RoleNone || role.Mark() != room.CurrentTurn {
		return room, false
	}

	if !entity.InRange(index) || room.Board[index] != entity.EmptyCell {
		return room, false
	}

	mark := role.Mark()
	room.Board = room.Board.ApplyMark(index, mark)

	if line, won := room.Board.WinningLine(); won {
		room.Status = entity.StatusFinished
		room.Winner = entity.Outcome(mark)
		room.WinnerLine = []int{line[0], line[1], line[2]}

		if mark == entity.MarkX {
			room.Scores.X++
		} else {
			room.Scores.O++
		}

		return room, true
	}

	if room.Board.IsFull() {
		room.Status = entity.StatusFinished
		room.Winner = entity.OutcomeDraw
		room.Scores.Draw++

		return room, true
	}

	room.CurrentTurn = mark.Opponent()

	return room, true
}

// NextRound - clears the board of a finished room, keeping the scores.
func NextRound(room entity.Room, uid string) (entity.Room, bool) {
	if !room.IsFinished() || room.RoleOf(uid) == entity.RoleNone {
		return room, false
	}

	room.Round++
	room.Board = entity.Board{}
	room.Winner = entity.OutcomeNone
	room.WinnerLine = nil
	room.CurrentTurn = FirstTurn(room.Round)

	if room.Players.Full() {
		room.Status = entity.StatusPlaying
	} else {
		room.Status = entity.StatusWaiting
	}

	return room, true
}

// FirstTurn - odd rounds are opened by X, even rounds by O.
func FirstTurn(round int) entity.Mark {
	if round%2 == 0 {
		return entity.MarkO
	}
	return entity.MarkX
}

// Leave - vacates the caller's seat. The last occupant leaving deletes the room; otherwise the
// remaining player ends up in seat X and the room starts over with zero scores.
func Leave(room entity.Room, uid string) (next entity.Room, deleted, changed bool) {
	switch room.RoleOf(uid) {
	case entity.RoleX:
		room.Players.X = nil
	case entity.RoleO:
		room.Players.O = nil
	default:
		return room, false, false
	}

	if room.Players.Empty() {
		return room, true, true
	}

	if room.Players.X == nil {
		promoted := *room.Players.O
		promoted.Name = entity.DisplayName(promoted.Name, "Player X")

		room.Players.X = &promoted
		room.Players.O = nil
	}

	room.Board = entity.Board{}
	room.Status = entity.StatusWaiting
	room.CurrentTurn = entity.MarkX
	room.Round = 1
	room.Winner = entity.OutcomeNone
	room.WinnerLine = nil
	room.Scores = entity.Scores{}

	return room, false, true
}
