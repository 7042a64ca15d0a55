package entity

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Outcome - result of a finished round.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeDraw Outcome = "draw"
)

func (that Outcome) MarshalJSON() ([]byte, error) {
	if that == OutcomeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

// Role - the seat a user holds in a room. RoleNone is a spectator or an unseated user.
type Role string

const (
	RoleNone Role = ""
	RoleX    Role = "X"
	RoleO    Role = "O"
)

func (that Role) MarshalJSON() ([]byte, error) {
	if that == RoleNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

func (that Role) Mark() Mark {
	return Mark(that)
}

type PlayerRef struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

type Seats struct {
	X *PlayerRef `json:"X"`
	O *PlayerRef `json:"O"`
}

func (that Seats) Full() bool {
	return that.X != nil && that.O != nil
}

func (that Seats) Empty() bool {
	return that.X == nil && that.O == nil
}

type Scores struct {
	X    int `json:"X"`
	O    int `json:"O"`
	Draw int `json:"draw"`
}

func (that Scores) Total() int {
	return that.X + that.O + that.Draw
}

type Room struct {
	Code        string    `json:"roomCode"`
	Board       Board     `json:"board"`
	CurrentTurn Mark      `json:"currentTurn"`
	Status      Status    `json:"status"`
	Round       int       `json:"round"`
	Winner      Outcome   `json:"winner"`
	WinnerLine  []int     `json:"winnerLine"`
	Scores      Scores    `json:"scores"`
	Players     Seats     `json:"players"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoleOf - derives the seat held by uid, RoleNone when the user is not seated.
func (that *Room) RoleOf(uid string) Role {
	if uid == "" {
		return RoleNone
	}

	switch {
	case that.Players.X != nil && that.Players.X.UID == uid:
		return RoleX
	case that.Players.O != nil && that.Players.O.UID == uid:
		return RoleO
	default:
		return RoleNone
	}
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}
