package persistence

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_records (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	record_id   TEXT NOT NULL UNIQUE,
	room_id     TEXT NOT NULL,
	players     INTEGER NOT NULL,
	roles       TEXT NOT NULL DEFAULT '[]',
	outcome     TEXT NOT NULL,
	won         INTEGER NOT NULL DEFAULT 0,
	turns       INTEGER NOT NULL DEFAULT 0,
	outbreaks   INTEGER NOT NULL DEFAULT 0,
	epidemics   INTEGER NOT NULL DEFAULT 0,
	cured       TEXT NOT NULL DEFAULT '[]',
	seed        TEXT NOT NULL DEFAULT '0',
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_records_room_id ON game_records(room_id);
CREATE INDEX IF NOT EXISTS idx_game_records_finished_at ON game_records(finished_at);
`

// SQLite 默认的本地存储
type SQLite struct {
	sqlStore
}

// NewSQLite 打开 path 处的数据库并建表
func NewSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// WAL 允许并发读，但只有一个写者
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLite{sqlStore{db: db, rebind: noRebind}}, nil
}
