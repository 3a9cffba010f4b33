// broadcast/broadcast.go
package broadcast

import (
	"go.uber.org/zap"

	"github.com/wfunc/outbreak/session"
)

// 广播接口
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
}

// 按观看的房间广播给观战者
type RoomBroadcaster struct {
	sessionManager *session.Manager
	log            *zap.Logger
}

func NewRoomBroadcaster(sessionManager *session.Manager, log *zap.Logger) *RoomBroadcaster {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomBroadcaster{
		sessionManager: sessionManager,
		log:            log,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.Watching(roomID) {
		if err := s.Send(msgID, data); err != nil {
			// 发送失败的连接由读循环负责清理
			b.log.Debug("broadcast send failed",
				zap.String("session", s.GetID()),
				zap.String("room", roomID),
				zap.Error(err))
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.All() {
		if err := s.Send(msgID, data); err != nil {
			b.log.Debug("broadcast send failed", zap.String("session", s.GetID()), zap.Error(err))
			continue
		}
	}
	return nil
}
