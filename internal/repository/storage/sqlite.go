package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	// registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS game_rooms (
	room_code    TEXT PRIMARY KEY,
	board        TEXT    NOT NULL,
	current_turn TEXT    NOT NULL,
	status       TEXT    NOT NULL,
	round        INTEGER NOT NULL,
	winner       TEXT,
	winner_line  TEXT,
	score_x      INTEGER NOT NULL DEFAULT 0,
	score_o      INTEGER NOT NULL DEFAULT 0,
	score_draw   INTEGER NOT NULL DEFAULT 0,
	x_uid        TEXT,
	x_name       TEXT,
	o_uid        TEXT,
	o_name       TEXT,
	created_at   INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
	updated_at   INTEGER NOT NULL
)`

// NewSQLite - opens the database file. Transactions start with BEGIN IMMEDIATE, so a room
// mutation owns the write lock before it reads the row.
func NewSQLite(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?" + url.Values{
		"_txlock": {"immediate"},
		"_pragma": {"busy_timeout(5000)", "journal_mode(WAL)"},
	}.Encode()

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return conn, nil
}

// InitSQLite - creates the rooms table.
func InitSQLite(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}
