// room/room.go
package room

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wfunc/outbreak/game"
	"github.com/wfunc/outbreak/network"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomStatus 房间的业务状态
type RoomStatus int

const (
	StatusPlaying RoomStatus = iota
	StatusFinished
)

func (s RoomStatus) String() string {
	if s == StatusFinished {
		return "finished"
	}
	return "playing"
}

// Room 持有一局游戏，所有对游戏的调用都经过 mu 串行化
type Room struct {
	ID          string
	CreatedAt   time.Time
	game        *game.Game
	status      RoomStatus
	broadcaster Broadcaster
	log         *zap.Logger
	mu          sync.Mutex
}

// View 房间对外展示的状态
type View struct {
	ID        string        `json:"room_id"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Game      game.Snapshot `json:"game"`
}

// Summary 房间列表中的一项
type Summary struct {
	ID        string    `json:"room_id"`
	Status    string    `json:"status"`
	Players   int       `json:"players"`
	Turn      int       `json:"turn"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

type gameOverMsg struct {
	RoomID  string `json:"room_id"`
	Outcome string `json:"outcome"`
	Won     bool   `json:"won"`
	Turns   int    `json:"turns"`
}

// NewRoom 创建房间并开始一局新游戏
func NewRoom(cfg game.Config, decider game.Decider, broadcaster Broadcaster, log *zap.Logger) (*Room, error) {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New().String()
	log = log.With(zap.String("room", id))
	g, err := game.New(cfg, decider, log)
	if err != nil {
		return nil, err
	}
	return &Room{
		ID:          id,
		CreatedAt:   time.Now(),
		game:        g,
		broadcaster: broadcaster,
		log:         log,
	}, nil
}

// Subscribe 订阅游戏事件，必须在开始回合之前调用
func (r *Room) Subscribe(fn game.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game.Events().SubscribeAll(fn)
}

// WithGame 在房间锁内访问游戏
func (r *Room) WithGame(fn func(g *game.Game)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.game)
}

func (r *Room) GetStatus() RoomStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// PlayTurn 为当前玩家执行一个回合
func (r *Room) PlayTurn(turn []game.Invocation) (game.Outcome, error) {
	r.mu.Lock()
	o, err := r.game.PlayTurn(r.game.Current(), turn)
	view, over := r.afterTurn()
	r.mu.Unlock()

	r.publish(view, over)
	return o, err
}

// Step 由 driver 生成当前玩家的回合并执行
func (r *Room) Step(d Driver) (game.Outcome, error) {
	r.mu.Lock()
	agent := r.game.Current()
	o, err := r.game.PlayTurn(agent, d.NextTurn(r.game, agent))
	view, over := r.afterTurn()
	r.mu.Unlock()

	r.publish(view, over)
	return o, err
}

// afterTurn 更新状态并在锁内拍快照
func (r *Room) afterTurn() (View, *gameOverMsg) {
	var over *gameOverMsg
	if r.game.Over() && r.status != StatusFinished {
		r.status = StatusFinished
		over = &gameOverMsg{
			RoomID:  r.ID,
			Outcome: r.game.Outcome().String(),
			Won:     r.game.Outcome().Won(),
			Turns:   r.game.Turn(),
		}
	}
	return r.viewLocked(), over
}

func (r *Room) publish(view View, over *gameOverMsg) {
	if r.broadcaster == nil {
		return
	}
	if data, err := json.Marshal(view); err == nil {
		r.broadcaster.BroadcastToRoom(r.ID, network.MsgTypeSnapshot, data)
	} else {
		r.log.Error("marshal snapshot failed", zap.Error(err))
	}
	if over != nil {
		data, _ := json.Marshal(over)
		r.broadcaster.BroadcastToRoom(r.ID, network.MsgTypeGameOver, data)
	}
}

// View 返回当前状态的副本
func (r *Room) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked()
}

func (r *Room) viewLocked() View {
	return View{
		ID:        r.ID,
		Status:    r.status.String(),
		CreatedAt: r.CreatedAt,
		Game:      r.game.Snapshot(),
	}
}

func (r *Room) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		ID:        r.ID,
		Status:    r.status.String(),
		Players:   r.game.NumAgents(),
		Turn:      r.game.Turn(),
		Outcome:   r.game.Outcome().String(),
		CreatedAt: r.CreatedAt,
	}
}

// --- 房间管理器 ---

// Manager 管理所有房间
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

// NewRoomManager 创建一个新的房间管理器
func NewRoomManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom 创建一个新房间并添加到管理器
func (m *Manager) CreateRoom(cfg game.Config, decider game.Decider, broadcaster Broadcaster, log *zap.Logger) (*Room, error) {
	room, err := NewRoom(cfg, decider, broadcaster, log)
	if err != nil {
		return nil, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.rooms[room.ID] = room
	return room, nil
}

// RemoveRoom 从管理器中移除一个房间
func (m *Manager) RemoveRoom(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.rooms, id)
}

// GetRoom 从管理器中获取一个房间
func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[id]
	return room, exists
}

// ListRooms 按创建时间返回所有房间
func (m *Manager) ListRooms() []*Room {
	m.mutex.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mutex.RUnlock()

	slices.SortFunc(rooms, func(a, b *Room) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return rooms
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}
