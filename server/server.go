package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wfunc/outbreak/monitor"
	"github.com/wfunc/outbreak/network"
	"github.com/wfunc/outbreak/persistence"
	"github.com/wfunc/outbreak/room"
	outbreak_rpc "github.com/wfunc/outbreak/rpc"
	"github.com/wfunc/outbreak/services"
	"github.com/wfunc/outbreak/session"
)

// HeartbeatInterval 客户端心跳间隔，超过两倍未收到消息则断开
const HeartbeatInterval = 30 * time.Second

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	records        *services.RecordService
	monitor        *monitor.Monitor
	rpcServer      *outbreak_rpc.Server
	httpServer     *http.Server
	log            *zap.Logger
	shutdownChan   chan struct{}
	shutdownOnce   sync.Once
}

type Deps struct {
	Rooms    *room.Manager
	Sessions *session.Manager
	Records  *services.RecordService
	Monitor  *monitor.Monitor
	RPC      *outbreak_rpc.Server // 可选
	Log      *zap.Logger
}

func NewGameServer(addr string, deps Deps) *GameServer {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &GameServer{
		addr:           addr,
		roomManager:    deps.Rooms,
		sessionManager: deps.Sessions,
		records:        deps.Records,
		monitor:        deps.Monitor,
		rpcServer:      deps.RPC,
		log:            log,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}
}

// Handler 返回所有 HTTP 路由
func (s *GameServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("GET /games", s.handleListGames)
	mux.HandleFunc("GET /games/{id}", s.handleGetGame)
	mux.HandleFunc("GET /records", s.handleListRecords)
	mux.HandleFunc("GET /records/{id}", s.handleGetRecord)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.Handle("GET /metrics", s.monitor.Handler())
	return mux
}

func (s *GameServer) Start() error {
	if s.rpcServer != nil {
		go s.rpcServer.Start()
	}

	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Handler()}
	s.log.Info("game server listening", zap.String("addr", s.addr))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *GameServer) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() { close(s.shutdownChan) })
	if s.rpcServer != nil {
		s.rpcServer.Stop()
	}
	for _, sess := range s.sessionManager.All() {
		sess.Close()
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// --- HTTP ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *GameServer) roomSummaries() []room.Summary {
	rooms := s.roomManager.ListRooms()
	out := make([]room.Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Summary())
	}
	return out
}

func (s *GameServer) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.roomSummaries())
}

func (s *GameServer) handleGetGame(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.roomManager.GetRoom(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, room.ErrRoomNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rm.View())
}

func (s *GameServer) handleListRecords(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.records.Recent(limit)
	if err != nil {
		s.log.Error("list records failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *GameServer) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.Get(r.PathValue("id"))
	switch {
	case errors.Is(err, persistence.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

func (s *GameServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.records.Stats()
	if err != nil {
		s.log.Error("stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- WebSocket 观战 ---

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Info("failed to upgrade connection", zap.Error(err))
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	wsConn.SetHeartbeat(HeartbeatInterval)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncSpectators()

	log := s.log.With(zap.String("session", sess.GetID()))
	log.Info("spectator connected", zap.Stringer("remote", wsConn.RemoteAddr()))

	defer func() {
		log.Info("spectator disconnected")
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecSpectators()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

type watchReq struct {
	RoomID string `json:"room_id"`
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Send(network.MsgTypeHeartbeat, nil)
	case network.MsgTypeWatch:
		s.handleWatch(sess, packet)
	case network.MsgTypeUnwatch:
		sess.Watch("")
	case network.MsgTypeRoomList:
		data, _ := json.Marshal(s.roomSummaries())
		sess.Send(network.MsgTypeRoomList, data)
	default:
		s.log.Debug("unknown message type", zap.Uint16("msg_id", packet.MsgID))
		s.sendError(sess, "unknown message type")
	}
}

func (s *GameServer) handleWatch(sess *session.Session, packet *network.Packet) {
	var req watchReq
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, "malformed watch request")
		return
	}
	rm, ok := s.roomManager.GetRoom(req.RoomID)
	if !ok {
		s.sendError(sess, room.ErrRoomNotFound.Error())
		return
	}
	sess.Watch(rm.ID)

	// 立即推送当前快照
	data, err := json.Marshal(rm.View())
	if err != nil {
		s.log.Error("marshal snapshot failed", zap.Error(err))
		return
	}
	sess.Send(network.MsgTypeSnapshot, data)
}

func (s *GameServer) sendError(sess *session.Session, msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	sess.Send(network.MsgTypeError, data)
}
