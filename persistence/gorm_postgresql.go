// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wfunc/outbreak/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
	return openGorm(postgres.Open(dsn))
}

func openGorm(dialector gorm.Dialector) (*GormPostgreSQL, error) {
	// 配置GORM日志
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold: time.Second,   // 慢SQL阈值
			LogLevel:      logger.Silent, // 日志级别
			Colorful:      false,         // 禁用彩色打印
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	// 获取通用数据库对象 sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(&models.GormGameRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SaveGameRecord 保存游戏记录
func (p *GormPostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	return p.db.Create(models.NewGormGameRecord(record)).Error
}

// GetGameRecord 按记录ID查询
func (p *GormPostgreSQL) GetGameRecord(id string) (*models.GameRecord, error) {
	var m models.GormGameRecord
	if err := p.db.Where("record_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	rec := m.Record()
	return &rec, nil
}

// ListGameRecords 最近的游戏记录
func (p *GormPostgreSQL) ListGameRecords(limit int) ([]models.GameRecord, error) {
	var rows []models.GormGameRecord
	if err := p.db.Order("finished_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.GameRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Record())
	}
	return out, nil
}

// GetStats 汇总统计
func (p *GormPostgreSQL) GetStats() (*models.Stats, error) {
	stats := &models.Stats{ByOutcome: make(map[string]int)}

	// 使用事务确保数据一致性
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var total, wins int64
		if err := tx.Model(&models.GormGameRecord{}).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.GormGameRecord{}).Where("won = ?", true).Count(&wins).Error; err != nil {
			return err
		}
		var avg float64
		row := tx.Model(&models.GormGameRecord{}).Select("COALESCE(AVG(turns), 0)").Row()
		if err := row.Scan(&avg); err != nil {
			return err
		}

		var groups []struct {
			Outcome string
			N       int
		}
		if err := tx.Model(&models.GormGameRecord{}).
			Select("outcome, COUNT(*) AS n").
			Group("outcome").
			Scan(&groups).Error; err != nil {
			return err
		}

		stats.TotalGames = int(total)
		stats.Wins = int(wins)
		stats.Losses = stats.TotalGames - stats.Wins
		stats.AvgTurns = avg
		for _, g := range groups {
			stats.ByOutcome[g.Outcome] = g.N
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Close 关闭数据库连接
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
