// models/gorm_models.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// GormGameRecord 游戏记录模型
type GormGameRecord struct {
	gorm.Model
	RecordID   string   `gorm:"uniqueIndex;not null"`
	RoomID     string   `gorm:"index;not null"`
	Players    int      `gorm:"not null"`
	Roles      []string `gorm:"serializer:json"`
	Outcome    string   `gorm:"index;not null"`
	Won        bool     `gorm:"default:false"`
	Turns      int      `gorm:"default:0"`
	Outbreaks  int      `gorm:"default:0"`
	Epidemics  int      `gorm:"default:0"`
	Cured      []string `gorm:"serializer:json"`
	Seed       uint64
	StartedAt  time.Time
	FinishedAt time.Time `gorm:"index"`
}

func (GormGameRecord) TableName() string {
	return "game_records"
}

func NewGormGameRecord(r *GameRecord) *GormGameRecord {
	return &GormGameRecord{
		RecordID:   r.ID,
		RoomID:     r.RoomID,
		Players:    r.Players,
		Roles:      r.Roles,
		Outcome:    r.Outcome,
		Won:        r.Won,
		Turns:      r.Turns,
		Outbreaks:  r.Outbreaks,
		Epidemics:  r.Epidemics,
		Cured:      r.Cured,
		Seed:       r.Seed,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

// Record 转换回通用记录
func (m *GormGameRecord) Record() GameRecord {
	return GameRecord{
		ID:         m.RecordID,
		RoomID:     m.RoomID,
		Players:    m.Players,
		Roles:      m.Roles,
		Outcome:    m.Outcome,
		Won:        m.Won,
		Turns:      m.Turns,
		Outbreaks:  m.Outbreaks,
		Epidemics:  m.Epidemics,
		Cured:      m.Cured,
		Seed:       m.Seed,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}
}
