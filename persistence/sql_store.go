package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/wfunc/outbreak/models"
)

const queryTimeout = 5 * time.Second

// sqlStore 是 sqlite 和 lib/pq 共用的 database/sql 实现。
// 查询统一用 ? 占位，rebind 负责转换成驱动的格式。
type sqlStore struct {
	db     *sql.DB
	rebind func(string) string
}

func noRebind(q string) string { return q }

// dollarRebind 把 ? 替换成 $1, $2 ...
func dollarRebind(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const recordColumns = `record_id, room_id, players, roles, outcome, won, turns, outbreaks, epidemics, cured, seed, started_at, finished_at`

func (s *sqlStore) SaveGameRecord(record *models.GameRecord) error {
	roles, err := json.Marshal(record.Roles)
	if err != nil {
		return err
	}
	cured, err := json.Marshal(record.Cured)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := s.rebind(`INSERT INTO game_records (` + recordColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.RoomID, record.Players, string(roles), record.Outcome, record.Won,
		record.Turns, record.Outbreaks, record.Epidemics, string(cured),
		strconv.FormatUint(record.Seed, 10),
		record.StartedAt.UnixMilli(), record.FinishedAt.UnixMilli())
	return err
}

func (s *sqlStore) GetGameRecord(id string) (*models.GameRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+recordColumns+` FROM game_records WHERE record_id = ?`), id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return rec, err
}

func (s *sqlStore) ListGameRecords(limit int) ([]models.GameRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+recordColumns+` FROM game_records ORDER BY finished_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.GameRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *sqlStore) GetStats() (*models.Stats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	stats := &models.Stats{ByOutcome: make(map[string]int)}
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
        SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN won THEN 1 ELSE 0 END), 0),
            AVG(turns)
        FROM game_records`).Scan(&stats.TotalGames, &stats.Wins, &avg)
	if err != nil {
		return nil, err
	}
	stats.Losses = stats.TotalGames - stats.Wins
	stats.AvgTurns = avg.Float64

	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM game_records GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		stats.ByOutcome[outcome] = n
	}
	return stats, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.GameRecord, error) {
	var (
		rec               models.GameRecord
		roles, cured      string
		seed              string
		started, finished int64
	)
	err := row.Scan(&rec.ID, &rec.RoomID, &rec.Players, &roles, &rec.Outcome, &rec.Won,
		&rec.Turns, &rec.Outbreaks, &rec.Epidemics, &cured, &seed, &started, &finished)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(roles), &rec.Roles); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cured), &rec.Cured); err != nil {
		return nil, err
	}
	if rec.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, err
	}
	rec.StartedAt = time.UnixMilli(started)
	rec.FinishedAt = time.UnixMilli(finished)
	return &rec, nil
}
