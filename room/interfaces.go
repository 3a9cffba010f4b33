package room

import "github.com/wfunc/outbreak/game"

// Broadcaster defines the interface for broadcasting messages to a room.
// This is defined here to break the import cycle between room and broadcast.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
}

// Driver produces the invocations of the current player's next turn.
type Driver interface {
	NextTurn(g *game.Game, agent int) []game.Invocation
}
