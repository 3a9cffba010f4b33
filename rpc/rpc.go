package rpc

import (
	"errors"
	"net"
	"net/rpc"

	"github.com/wfunc/outbreak/logger"
	"github.com/wfunc/outbreak/models"
	"github.com/wfunc/outbreak/room"
	"github.com/wfunc/outbreak/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	rpc      *rpc.Server
}

// NewServer listens on addr and registers the admin service.
func NewServer(addr string, admin *AdminService) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("Admin", admin); err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		rpc:      srv,
	}, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.listener.Addr())
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go s.rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes game records and live rooms over net/rpc.
type AdminService struct {
	records *services.RecordService
	rooms   *room.Manager
}

func NewAdminService(records *services.RecordService, rooms *room.Manager) *AdminService {
	return &AdminService{records: records, rooms: rooms}
}

type StatsArgs struct {
	IncludeLive bool
}

type StatsReply struct {
	Stats     models.Stats
	LiveRooms int
}

// Stats returns the recorded totals and, on request, the number of rooms
// still playing.
func (a *AdminService) Stats(args *StatsArgs, reply *StatsReply) error {
	stats, err := a.records.Stats()
	if err != nil {
		return err
	}
	reply.Stats = *stats
	if args.IncludeLive {
		for _, r := range a.rooms.ListRooms() {
			if r.GetStatus() == room.StatusPlaying {
				reply.LiveRooms++
			}
		}
	}
	return nil
}

type RecentArgs struct {
	Limit int
}

type RecentReply struct {
	Records []models.GameRecord
}

func (a *AdminService) RecentGames(args *RecentArgs, reply *RecentReply) error {
	records, err := a.records.Recent(args.Limit)
	if err != nil {
		return err
	}
	reply.Records = records
	return nil
}

type SnapshotArgs struct {
	RoomID string
}

type SnapshotReply struct {
	View room.View
}

// Snapshot returns the live state of one room.
func (a *AdminService) Snapshot(args *SnapshotArgs, reply *SnapshotReply) error {
	r, ok := a.rooms.GetRoom(args.RoomID)
	if !ok {
		return room.ErrRoomNotFound
	}
	reply.View = r.View()
	return nil
}

type RoomsArgs struct {
	Status string // "playing", "finished" or empty for all
}

type RoomsReply struct {
	Rooms []room.Summary
}

func (a *AdminService) Rooms(args *RoomsArgs, reply *RoomsReply) error {
	for _, r := range a.rooms.ListRooms() {
		sum := r.Summary()
		if args.Status != "" && sum.Status != args.Status {
			continue
		}
		reply.Rooms = append(reply.Rooms, sum)
	}
	return nil
}
