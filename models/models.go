// models/models.go
package models

import (
	"time"
)

// GameRecord 一局结束的游戏记录
type GameRecord struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	Players    int       `json:"players"`
	Roles      []string  `json:"roles"`
	Outcome    string    `json:"outcome"`
	Won        bool      `json:"won"`
	Turns      int       `json:"turns"`
	Outbreaks  int       `json:"outbreaks"`
	Epidemics  int       `json:"epidemics"`
	Cured      []string  `json:"cured"`
	Seed       uint64    `json:"seed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration 游戏时长
func (r *GameRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Stats 汇总统计
type Stats struct {
	TotalGames int            `json:"total_games"`
	Wins       int            `json:"wins"`
	Losses     int            `json:"losses"`
	AvgTurns   float64        `json:"avg_turns"`
	ByOutcome  map[string]int `json:"by_outcome"`
}
