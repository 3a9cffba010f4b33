package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wfunc/outbreak/autoplay"
	"github.com/wfunc/outbreak/broadcast"
	"github.com/wfunc/outbreak/config"
	"github.com/wfunc/outbreak/game"
	"github.com/wfunc/outbreak/logger"
	"github.com/wfunc/outbreak/monitor"
	"github.com/wfunc/outbreak/persistence"
	"github.com/wfunc/outbreak/room"
	outbreak_rpc "github.com/wfunc/outbreak/rpc"
	"github.com/wfunc/outbreak/server"
	"github.com/wfunc/outbreak/services"
	"github.com/wfunc/outbreak/session"
	"github.com/wfunc/outbreak/timer"
)

// finishedRoomTTL 结束的房间保留多久供观战者查看
const finishedRoomTTL = time.Minute

// lobby 保持固定数量的自动对局
type lobby struct {
	cfg         game.Config
	interval    time.Duration
	rooms       *room.Manager
	broadcaster room.Broadcaster
	records     *services.RecordService
	monitor     *monitor.Monitor
	timers      *timer.TimerManager
	log         *zap.Logger
}

func (l *lobby) startGame() {
	r, err := l.rooms.CreateRoom(l.cfg, autoplay.Decider{}, l.broadcaster, l.log)
	if err != nil {
		l.log.Error("create room failed", zap.Error(err))
		return
	}
	r.Subscribe(l.monitor.Observe)
	l.monitor.GameStarted()

	runner := room.NewRunner(r, autoplay.Driver{}, l.timers, l.interval, l.gameDone, l.log)
	runner.OnTurn = l.monitor.ObserveTurnLatency
	runner.Start()
	l.log.Info("game started", zap.String("room", r.ID))
}

func (l *lobby) gameDone(r *room.Room) {
	r.WithGame(func(g *game.Game) {
		if _, err := l.records.RecordGame(r.ID, g, r.CreatedAt); err != nil {
			l.log.Warn("game not recorded", zap.String("room", r.ID), zap.Error(err))
		}
	})
	l.timers.AddTimer(finishedRoomTTL, 0, func() { l.rooms.RemoveRoom(r.ID) })
	l.startGame()
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Init("info")
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.Log.Level)
	defer logger.Sync()
	log := logger.L()

	opts, err := cfg.Game.Options()
	if err != nil {
		logger.Log.Fatalf("Failed to load game options: %v", err)
	}
	gameCfg, err := game.NewConfig(opts)
	if err != nil {
		logger.Log.Fatalf("Invalid game configuration: %v", err)
	}

	// Initialize Database
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Log.Infof("Database %s ready.", cfg.Database.Driver)

	records := services.NewRecordService(db, log)
	rooms := room.NewRoomManager()
	sessions := session.NewManager()
	mon := monitor.NewMonitor("outbreak")
	timers := timer.NewTimerManager()
	defer timers.Stop()

	rpcServer, err := outbreak_rpc.NewServer(cfg.Server.RPCAddress, outbreak_rpc.NewAdminService(records, rooms))
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}

	interval := cfg.Autoplay.TurnInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	l := &lobby{
		cfg:         gameCfg,
		interval:    interval,
		rooms:       rooms,
		broadcaster: broadcast.NewRoomBroadcaster(sessions, log),
		records:     records,
		monitor:     mon,
		timers:      timers,
		log:         log,
	}
	for range cfg.Autoplay.Games {
		l.startGame()
	}

	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, server.Deps{
		Rooms:    rooms,
		Sessions: sessions,
		Records:  records,
		Monitor:  mon,
		RPC:      rpcServer,
		Log:      log,
	})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := gameServer.Shutdown(ctx); err != nil {
			logger.Log.Errorf("Shutdown: %v", err)
		}
	}()

	// Start Server
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
