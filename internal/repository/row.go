package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	emptyCellSymbol = "-"

	roomColumns = `room_code, board, current_turn, status, round, winner, winner_line,
		score_x, score_o, score_draw, x_uid, x_name, o_uid, o_name, updated_at`
)

// roomRow - a game_rooms row as stored by the SQL backends.
type roomRow struct {
	Code        string
	Board       string
	CurrentTurn string
	Status      string
	Round       int
	Winner      *string
	WinnerLine  *string
	ScoreX      int
	ScoreO      int
	ScoreDraw   int
	XUID        *string
	XName       *string
	OUID        *string
	OName       *string
	UpdatedAt   time.Time
}

// scanner - satisfied by pgx.Row and *sql.Row.
type scanner interface {
	Scan(dest ...any) error
}

// targets - scan destinations in roomColumns order; updatedAt lets a backend pick its own time encoding.
func (that *roomRow) targets(updatedAt any) []any {
	return []any{
		&that.Code, &that.Board, &that.CurrentTurn, &that.Status, &that.Round, &that.Winner, &that.WinnerLine,
		&that.ScoreX, &that.ScoreO, &that.ScoreDraw, &that.XUID, &that.XName, &that.OUID, &that.OName, updatedAt,
	}
}

// values - column values in roomColumns order.
func (that *roomRow) values(updatedAt any) []any {
	return []any{
		that.Code, that.Board, that.CurrentTurn, that.Status, that.Round, that.Winner, that.WinnerLine,
		that.ScoreX, that.ScoreO, that.ScoreDraw, that.XUID, that.XName, that.OUID, that.OName, updatedAt,
	}
}

func rowFromRoom(room *entity.Room) roomRow {
	row := roomRow{
		Code:        room.Code,
		Board:       encodeBoard(room.Board),
		CurrentTurn: string(room.CurrentTurn),
		Status:      string(room.Status),
		Round:       room.Round,
		ScoreX:      room.Scores.X,
		ScoreO:      room.Scores.O,
		ScoreDraw:   room.Scores.Draw,
		UpdatedAt:   room.UpdatedAt,
	}

	if room.Winner != entity.OutcomeNone {
		winner := string(room.Winner)
		row.Winner = &winner
	}

	if room.WinnerLine != nil {
		line := encodeLine(room.WinnerLine)
		row.WinnerLine = &line
	}

	if seat := room.Players.X; seat != nil {
		row.XUID, row.XName = &seat.UID, &seat.Name
	}

	if seat := room.Players.O; seat != nil {
		row.OUID, row.OName = &seat.UID, &seat.Name
	}

	return row
}

func (that *roomRow) toRoom() (*entity.Room, error) {
	board, err := decodeBoard(that.Board)
	if err != nil {
		return nil, err
	}

	room := &entity.Room{
		Code:        that.Code,
		Board:       board,
		CurrentTurn: entity.Mark(that.CurrentTurn),
		Status:      entity.Status(that.Status),
		Round:       that.Round,
		Scores: entity.Scores{
			X:    that.ScoreX,
			O:    that.ScoreO,
			Draw: that.ScoreDraw,
		},
		Players: entity.Seats{
			X: seatFromColumns(that.XUID, that.XName, entity.RoleX),
			O: seatFromColumns(that.OUID, that.OName, entity.RoleO),
		},
		UpdatedAt: that.UpdatedAt,
	}

	if that.Winner != nil {
		room.Winner = entity.Outcome(*that.Winner)
	}

	if that.WinnerLine != nil {
		if room.WinnerLine, err = decodeLine(*that.WinnerLine); err != nil {
			return nil, err
		}
	}

	return room, nil
}

func seatFromColumns(uid, name *string, role entity.Role) *entity.PlayerRef {
	if uid == nil || *uid == "" {
		return nil
	}

	var stored string
	if name != nil {
		stored = *name
	}

	return &entity.PlayerRef{UID: *uid, Name: entity.DisplayName(stored, "Player "+string(role))}
}

func encodeBoard(board entity.Board) string {
	var encoded strings.Builder
	for _, cell := range board {
		if cell == entity.EmptyCell {
			encoded.WriteString(emptyCellSymbol)
			continue
		}
		encoded.WriteString(string(cell))
	}

	return encoded.String()
}

func decodeBoard(encoded string) (entity.Board, error) {
	var board entity.Board

	if len(encoded) != entity.BoardSize {
		return board, fmt.Errorf("failed to decode board %q: want %d cells", encoded, entity.BoardSize)
	}

	for i := range entity.BoardSize {
		switch symbol := encoded[i : i+1]; symbol {
		case emptyCellSymbol:
			board[i] = entity.EmptyCell
		case string(entity.MarkX), string(entity.MarkO):
			board[i] = entity.Mark(symbol)
		default:
			return board, fmt.Errorf("failed to decode board %q: unknown cell %q", encoded, symbol)
		}
	}

	return board, nil
}

func encodeLine(line []int) string {
	parts := make([]string, len(line))
	for i, index := range line {
		parts[i] = strconv.Itoa(index)
	}

	return strings.Join(parts, ",")
}

func decodeLine(encoded string) ([]int, error) {
	parts := strings.Split(encoded, ",")
	line := make([]int, len(parts))

	for i, part := range parts {
		index, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("failed to decode winner line %q: %w", encoded, err)
		}
		line[i] = index
	}

	return line, nil
}
