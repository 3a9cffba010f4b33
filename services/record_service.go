// services/record_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wfunc/outbreak/game"
	"github.com/wfunc/outbreak/models"
	"github.com/wfunc/outbreak/persistence"
)

var ErrGameNotFinished = errors.New("game is not finished")

type RecordService struct {
	db  persistence.Database
	log *zap.Logger
}

func NewRecordService(db persistence.Database, log *zap.Logger) *RecordService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecordService{db: db, log: log}
}

// NewRecord 从结束的游戏生成记录
func NewRecord(roomID string, g *game.Game, startedAt, finishedAt time.Time) (*models.GameRecord, error) {
	if !g.Over() {
		return nil, ErrGameNotFinished
	}
	rec := &models.GameRecord{
		ID:         uuid.New().String(),
		RoomID:     roomID,
		Players:    g.NumAgents(),
		Outcome:    g.Outcome().String(),
		Won:        g.Outcome().Won(),
		Turns:      g.Turn(),
		Outbreaks:  g.Outbreaks(),
		Epidemics:  g.EpidemicsDrawn(),
		Seed:       g.Seed(),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Cured:      []string{},
	}
	for i := range g.NumAgents() {
		rec.Roles = append(rec.Roles, g.Agent(i).Role.String())
	}
	for _, d := range game.Diseases() {
		if g.CureFound(d) {
			rec.Cured = append(rec.Cured, d.String())
		}
	}
	return rec, nil
}

// RecordGame 保存一局结束的游戏
func (s *RecordService) RecordGame(roomID string, g *game.Game, startedAt time.Time) (*models.GameRecord, error) {
	rec, err := NewRecord(roomID, g, startedAt, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.db.SaveGameRecord(rec); err != nil {
		s.log.Error("save game record failed", zap.String("room", roomID), zap.Error(err))
		return nil, err
	}
	s.log.Info("game recorded",
		zap.String("record", rec.ID),
		zap.String("room", roomID),
		zap.String("outcome", rec.Outcome),
		zap.Int("turns", rec.Turns),
	)
	return rec, nil
}

func (s *RecordService) Recent(limit int) ([]models.GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.db.ListGameRecords(limit)
}

func (s *RecordService) Get(id string) (*models.GameRecord, error) {
	return s.db.GetGameRecord(id)
}

func (s *RecordService) Stats() (*models.Stats, error) {
	return s.db.GetStats()
}
