// Command client is a terminal spectator: it lists the running games,
// watches one and prints every snapshot pushed by the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/outbreak/game"
	"github.com/wfunc/outbreak/network"
	"github.com/wfunc/outbreak/room"
)

// gorilla connections allow one concurrent writer
var writeMu sync.Mutex

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, v any) error {
	var data []byte
	if v != nil {
		var err error
		if data, err = json.Marshal(v); err != nil {
			return err
		}
	}
	packet, err := network.EncodePacket(msgID, data)
	if err != nil {
		return err
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func printSnapshot(v room.View) {
	s := v.Game
	fmt.Printf("[%s] turn %d  phase %s  current %d  outbreaks %d  epidemics %d  rate %d  deck %d\n",
		v.ID[:8], s.Turn, s.Phase, s.Current, s.Outbreaks, s.Epidemics, s.InfectionRate, s.PlayerDeck)
	for i, a := range s.Agents {
		fmt.Printf("  %d %-20s @ %-16s %s\n", i, a.Role, a.Location, strings.Join(a.Hand, ", "))
	}
	for _, d := range game.Diseases() {
		fmt.Printf("  %-6s %2d cubes", d, s.Totals[d.String()])
	}
	fmt.Println()
}

func handle(p *network.Packet, watch string, c *websocket.Conn) {
	switch p.MsgID {
	case network.MsgTypeRoomList:
		var rooms []room.Summary
		if err := json.Unmarshal(p.Data, &rooms); err != nil {
			log.Printf("bad room list: %v", err)
			return
		}
		for _, r := range rooms {
			fmt.Printf("%s  %-8s players=%d turn=%d outcome=%s\n", r.ID, r.Status, r.Players, r.Turn, r.Outcome)
		}
		// 未指定房间时观看第一个进行中的房间
		if watch == "" {
			for _, r := range rooms {
				if r.Status == room.StatusPlaying.String() {
					send(c, network.MsgTypeWatch, map[string]string{"room_id": r.ID})
					break
				}
			}
		}
	case network.MsgTypeSnapshot:
		var v room.View
		if err := json.Unmarshal(p.Data, &v); err != nil {
			log.Printf("bad snapshot: %v", err)
			return
		}
		printSnapshot(v)
	case network.MsgTypeGameOver:
		log.Printf("game over: %s", p.Data)
	case network.MsgTypeError:
		log.Printf("server error: %s", p.Data)
	case network.MsgTypeHeartbeat:
	default:
		log.Printf("<- RECV (ID: %d): %s", p.MsgID, p.Data)
	}
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	watch := flag.String("room", "", "room id to watch, empty picks the first running game")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			p, err := network.DecodePacket(message)
			if err != nil {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			handle(p, *watch, c)
		}
	}()

	if err := send(c, network.MsgTypeRoomList, nil); err != nil {
		log.Fatalf("Write error: %v", err)
	}
	if *watch != "" {
		if err := send(c, network.MsgTypeWatch, map[string]string{"room_id": *watch}); err != nil {
			log.Fatalf("Write error: %v", err)
		}
	}

	heartbeat := time.NewTicker(10 * time.Second)
	defer heartbeat.Stop()
	for {
		select {
		case <-done:
			return
		case <-heartbeat.C:
			if err := send(c, network.MsgTypeHeartbeat, nil); err != nil {
				log.Println("Write error:", err)
				return
			}
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			writeMu.Lock()
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			writeMu.Unlock()
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}
