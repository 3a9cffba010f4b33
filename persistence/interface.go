// persistence/interface.go
package persistence

import (
	"errors"
	"fmt"

	"github.com/wfunc/outbreak/config"
	"github.com/wfunc/outbreak/models"
)

// Database 游戏记录存储接口
type Database interface {
	SaveGameRecord(record *models.GameRecord) error
	GetGameRecord(id string) (*models.GameRecord, error)
	// ListGameRecords 按结束时间倒序返回最近 limit 条记录
	ListGameRecords(limit int) ([]models.GameRecord, error)
	GetStats() (*models.Stats, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownDriver  = errors.New("unknown database driver")
)

// Open 根据配置选择存储实现
func Open(cfg config.DatabaseConfig) (Database, error) {
	pg := cfg.Postgres
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.SQLite.Path)
	case "postgres":
		return NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	case "gorm":
		return NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
