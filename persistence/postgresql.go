// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"
)

// PostgreSQL 数据库实现
type PostgreSQL struct {
	sqlStore
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 初始化表结构
	if err := initTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgreSQL{sqlStore{db: db, rebind: dollarRebind}}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            record_id VARCHAR(64) UNIQUE NOT NULL,
            room_id VARCHAR(64) NOT NULL,
            players INTEGER NOT NULL,
            roles JSONB NOT NULL,
            outcome VARCHAR(64) NOT NULL,
            won BOOLEAN NOT NULL DEFAULT FALSE,
            turns INTEGER NOT NULL DEFAULT 0,
            outbreaks INTEGER NOT NULL DEFAULT 0,
            epidemics INTEGER NOT NULL DEFAULT 0,
            cured JSONB NOT NULL,
            seed VARCHAR(20) NOT NULL,
            started_at BIGINT NOT NULL,
            finished_at BIGINT NOT NULL
        )
    `)
	if err != nil {
		return err
	}

	// 创建索引以提高查询性能
	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_room_id ON game_records(room_id);
        CREATE INDEX IF NOT EXISTS idx_game_records_finished_at ON game_records(finished_at);
    `)

	return err
}
