package room

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wfunc/outbreak/game"
	"github.com/wfunc/outbreak/timer"
)

// Runner 定时驱动一个房间直到游戏结束
type Runner struct {
	room     *Room
	driver   Driver
	timers   *timer.TimerManager
	interval time.Duration
	onDone   func(*Room)
	log      *zap.Logger

	// OnTurn 每个回合结束后调用，参数为回合耗时
	OnTurn func(time.Duration)

	mu      sync.Mutex
	timerID int64
	busy    atomic.Bool
	once    sync.Once
}

// NewRunner onDone 在游戏结束或回合被拒绝后调用一次
func NewRunner(r *Room, d Driver, timers *timer.TimerManager, interval time.Duration, onDone func(*Room), log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		room:     r,
		driver:   d,
		timers:   timers,
		interval: interval,
		onDone:   onDone,
		log:      log.With(zap.String("room", r.ID)),
	}
}

func (rn *Runner) Start() {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	rn.timerID = rn.timers.AddTimer(rn.interval, rn.interval, rn.tick)
}

// Stop 停止驱动并触发 onDone
func (rn *Runner) Stop() {
	rn.once.Do(func() {
		rn.mu.Lock()
		rn.timers.RemoveTimer(rn.timerID)
		rn.mu.Unlock()
		if rn.onDone != nil {
			rn.onDone(rn.room)
		}
	})
}

func (rn *Runner) tick() {
	// 上一回合还没结束时跳过
	if !rn.busy.CompareAndSwap(false, true) {
		return
	}
	defer rn.busy.Store(false)

	start := time.Now()
	o, err := rn.room.Step(rn.driver)
	if rn.OnTurn != nil && err == nil {
		rn.OnTurn(time.Since(start))
	}
	switch {
	case errors.Is(err, game.ErrGameOver):
		rn.Stop()
	case err != nil:
		rn.log.Error("turn rejected, stopping runner", zap.Error(err))
		rn.Stop()
	case o.Terminal():
		rn.log.Info("game over",
			zap.Stringer("outcome", o),
			zap.Duration("last_turn", time.Since(start)))
		rn.Stop()
	}
}
