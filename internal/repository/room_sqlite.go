package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	sqliteInsertRoom = `INSERT INTO game_rooms (` + roomColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (room_code) DO NOTHING`

	sqliteSelectRoom = `SELECT ` + roomColumns + ` FROM game_rooms WHERE room_code = ?`

	sqliteUpdateRoom = `UPDATE game_rooms
		SET board = ?, current_turn = ?, status = ?, round = ?, winner = ?, winner_line = ?,
			score_x = ?, score_o = ?, score_draw = ?, x_uid = ?, x_name = ?, o_uid = ?, o_name = ?,
			updated_at = ?
		WHERE room_code = ?`

	sqliteDeleteRoom = `DELETE FROM game_rooms WHERE room_code = ?`
)

type sqliteRooms struct {
	conn *sql.DB
}

// NewSQLiteRoomRepository - rooms in a sqlite game_rooms table. The connection must open
// transactions with BEGIN IMMEDIATE so that a mutation holds the write lock from its first read.
func NewSQLiteRoomRepository(conn *sql.DB) RoomRepository {
	return &sqliteRooms{
		conn: conn,
	}
}

func (that *sqliteRooms) Insert(ctx context.Context, room *entity.Room) (bool, error) {
	row := rowFromRoom(room)

	result, err := that.conn.ExecContext(ctx, sqliteInsertRoom, row.values(row.UpdatedAt.UnixNano())...)
	if err != nil {
		return false, fmt.Errorf("can't insert room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("can't insert room: %w", err)
	}

	return affected == 1, nil
}

func (that *sqliteRooms) GetByCode(ctx context.Context, code string) (*entity.Room, error) {
	return scanSQLiteRoom(that.conn.QueryRowContext(ctx, sqliteSelectRoom, code))
}

func (that *sqliteRooms) Mutate(ctx context.Context, code string, fn MutateFunc) (*entity.Room, error) {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("can't begin transaction: %w", err)
	}

	// no-op once committed
	defer func() { _ = tx.Rollback() }()

	room, err := scanSQLiteRoom(tx.QueryRowContext(ctx, sqliteSelectRoom, code))
	if err != nil {
		return nil, err
	}

	decision := fn(room)

	switch decision {
	case Save:
		row := rowFromRoom(room)
		values := row.values(row.UpdatedAt.UnixNano())
		// room_code goes last in the UPDATE
		args := append(values[1:], row.Code)

		if _, err = tx.ExecContext(ctx, sqliteUpdateRoom, args...); err != nil {
			return nil, fmt.Errorf("can't update room: %w", err)
		}
	case Delete:
		if _, err = tx.ExecContext(ctx, sqliteDeleteRoom, code); err != nil {
			return nil, fmt.Errorf("can't delete room: %w", err)
		}
	case Keep:
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("can't commit room: %w", err)
	}

	if decision == Delete {
		return nil, nil
	}

	return room, nil
}

func scanSQLiteRoom(source scanner) (*entity.Room, error) {
	var (
		row       roomRow
		updatedAt int64
	)

	err := source.Scan(row.targets(&updatedAt)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't scan room: %w", err)
	}

	row.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return row.toRoom()
}
