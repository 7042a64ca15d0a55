package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	postgresInsertRoom = `INSERT INTO game_rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (room_code) DO NOTHING`

	postgresSelectRoom = `SELECT ` + roomColumns + ` FROM game_rooms WHERE room_code = $1`

	postgresUpdateRoom = `UPDATE game_rooms
		SET board = $2, current_turn = $3, status = $4, round = $5, winner = $6, winner_line = $7,
			score_x = $8, score_o = $9, score_draw = $10, x_uid = $11, x_name = $12, o_uid = $13, o_name = $14,
			updated_at = $15
		WHERE room_code = $1`

	postgresDeleteRoom = `DELETE FROM game_rooms WHERE room_code = $1`
)

type postgresRooms struct {
	pool *pgxpool.Pool
}

// NewPostgresRoomRepository - rooms in the game_rooms table, mutations under SELECT ... FOR UPDATE.
func NewPostgresRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &postgresRooms{
		pool: pool,
	}
}

func (that *postgresRooms) Insert(ctx context.Context, room *entity.Room) (bool, error) {
	row := rowFromRoom(room)

	tag, err := that.pool.Exec(ctx, postgresInsertRoom, row.values(row.UpdatedAt)...)
	if err != nil {
		return false, fmt.Errorf("failed to insert room: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (that *postgresRooms) GetByCode(ctx context.Context, code string) (*entity.Room, error) {
	return scanPostgresRoom(that.pool.QueryRow(ctx, postgresSelectRoom, code))
}

func (that *postgresRooms) Mutate(ctx context.Context, code string, fn MutateFunc) (*entity.Room, error) {
	tx, err := that.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// no-op once committed
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	room, err := scanPostgresRoom(tx.QueryRow(ctx, postgresSelectRoom+" FOR UPDATE", code))
	if err != nil {
		return nil, err
	}

	decision := fn(room)

	switch decision {
	case Save:
		row := rowFromRoom(room)
		if _, err = tx.Exec(ctx, postgresUpdateRoom, row.values(row.UpdatedAt)...); err != nil {
			return nil, fmt.Errorf("failed to update room: %w", err)
		}
	case Delete:
		if _, err = tx.Exec(ctx, postgresDeleteRoom, code); err != nil {
			return nil, fmt.Errorf("failed to delete room: %w", err)
		}
	case Keep:
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit room: %w", err)
	}

	if decision == Delete {
		return nil, nil
	}

	return room, nil
}

func scanPostgresRoom(source scanner) (*entity.Room, error) {
	var row roomRow

	err := source.Scan(row.targets(&row.UpdatedAt)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to scan room: %w", err)
	}

	row.UpdatedAt = row.UpdatedAt.UTC()

	return row.toRoom()
}
