package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"pokedexd/internal/daemon"
	"pokedexd/internal/logging"
	"pokedexd/internal/store"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Pokedex", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.DBPath = status.DBPath
	resp.LockPath = status.LockFilePath
	resp.UptimeSeconds = int64(status.Uptime.Seconds())
	resp.State = string(status.Controller.State)
	resp.Cursor = status.Controller.Cursor
	resp.StatusLine = status.Controller.Status
	resp.RecordCount = status.RecordCount
	resp.FavouriteCount = status.FavouriteCount
	resp.PopulateRunning = status.PopulateRunning
	resp.InputAttached = status.InputAttached
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	s.log().Info("daemon stopped via IPC")
	return nil
}

func (s *service) Show(req ShowRequest, resp *ShowResponse) error {
	rec, favourite, chain, err := s.daemon.Show(s.ctx, req.Ref)
	if err != nil {
		return err
	}
	resp.Record = FromRecord(rec, favourite)
	resp.Evolutions = fromEvolutions(chain)
	return nil
}

func (s *service) List(req ListRequest, resp *ListResponse) error {
	records, err := s.daemon.List(s.ctx, store.ListFilter{
		Search:         req.Search,
		FavouritesOnly: req.FavouritesOnly,
		Limit:          req.Limit,
		Offset:         req.Offset,
	})
	if err != nil {
		return err
	}
	resp.Records = make([]Record, 0, len(records))
	for _, rec := range records {
		resp.Records = append(resp.Records, FromRecord(rec, false))
	}
	return nil
}

func (s *service) FavouriteToggle(req FavouriteToggleRequest, resp *FavouriteToggleResponse) error {
	if req.ID <= 0 {
		return fmt.Errorf("invalid record id %d", req.ID)
	}
	favourite, err := s.daemon.ToggleFavourite(s.ctx, req.ID)
	if err != nil {
		return err
	}
	resp.Favourite = favourite
	s.log().Info("favourite toggled via IPC",
		logging.Int64(logging.FieldRecordID, req.ID),
		logging.Bool("favourite", favourite))
	return nil
}

func (s *service) Favourites(_ FavouritesRequest, resp *FavouritesResponse) error {
	records, err := s.daemon.Favourites(s.ctx)
	if err != nil {
		return err
	}
	resp.Records = make([]Record, 0, len(records))
	for _, rec := range records {
		resp.Records = append(resp.Records, FromRecord(rec, true))
	}
	return nil
}

func (s *service) Press(req PressRequest, resp *PressResponse) error {
	delivered, err := s.daemon.Press(s.ctx, req.Button)
	if err != nil {
		return err
	}
	resp.Delivered = delivered
	s.log().Debug("button press injected via IPC",
		logging.String(logging.FieldButton, req.Button),
		logging.Bool("delivered", delivered))
	return nil
}

func (s *service) PopulateStart(_ PopulateStartRequest, resp *PopulateStartResponse) error {
	jobID, err := s.daemon.PopulateStart(s.ctx)
	if err != nil {
		return err
	}
	resp.JobID = jobID
	s.log().Info("populate started via IPC", logging.String(logging.FieldJobID, jobID))
	return nil
}

func (s *service) DatabaseHealth(_ DatabaseHealthRequest, resp *DatabaseHealthResponse) error {
	health := s.daemon.DatabaseHealth(s.ctx)
	resp.DBPath = health.DBPath
	resp.DatabaseExists = health.DatabaseExists
	resp.DatabaseReadable = health.DatabaseReadable
	resp.SchemaVersion = health.SchemaVersion
	resp.IntegrityCheck = health.IntegrityCheck
	resp.TotalRecords = health.TotalRecords
	resp.TotalFavourites = health.TotalFavourites
	resp.Error = health.Error
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	resp.Sent = sent
	resp.Message = message
	return err
}
