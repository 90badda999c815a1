// Package server bridges platformer environments to remote training
// harnesses over websockets. Every connection gets its own environment
// and exchanges JSON messages with it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samuelfneumann/platformer/environment"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Message types understood by the server
const (
	Reset = "reset"
	Step  = "step"
	Specs = "spec"
	Error = "error"
)

// EnvFactory creates the environment of a new session
type EnvFactory func(seed uint64) (environment.Environment, error)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server serves one environment per websocket connection
type Server struct {
	create   EnvFactory
	seed     uint64
	sessions atomic.Uint64
	logger   *zap.Logger
}

// New returns a server creating environments with create. Session i
// is seeded with seed+i.
func New(create EnvFactory, seed uint64, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{create: create, seed: seed, logger: logger}
}

// ListenAndServe serves websocket sessions at addr until ctx is
// cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	srv := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listenAndServe: %w", err)
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return fmt.Errorf("listenAndServe: shutdown: %w", err)
		}
		return nil
	}
}

// ServeHTTP upgrades the connection and runs a session on it
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := s.sessions.Add(1)
	logger := s.logger.With(
		zap.Uint64("session", id),
		zap.String("remote", conn.RemoteAddr().String()),
	)

	env, err := s.create(s.seed + id)
	if err != nil {
		logger.Error("could not create environment", zap.Error(err))
		_ = conn.WriteJSON(Response{Type: Error, Error: err.Error()})
		return
	}

	logger.Info("session started")
	err = newSession(env).serve(conn)
	if websocket.IsCloseError(err, websocket.CloseNormalClosure,
		websocket.CloseGoingAway) {
		err = nil
	}
	if err != nil {
		logger.Warn("session ended", zap.Error(err))
		return
	}
	logger.Info("session ended")
}

// session is the environment of a single connection
type session struct {
	env environment.Environment
}

func newSession(env environment.Environment) *session {
	return &session{env: env}
}

// serve answers requests until the connection fails
func (s *session) serve(conn *websocket.Conn) error {
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			return err
		}
		if err := conn.WriteJSON(s.handle(req)); err != nil {
			return err
		}
	}
}

// handle answers a single request. Failures are reported to the client
// and leave the session usable.
func (s *session) handle(req Request) Response {
	switch req.Type {
	case Reset:
		t, err := s.env.Reset()
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: Reset, Step: newTimeStep(t, false)}

	case Step:
		if len(req.Action) == 0 {
			return errorResponse(errors.New("step: missing action"))
		}
		t, done, err := s.env.Step(mat.NewVecDense(len(req.Action),
			req.Action))
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: Step, Step: newTimeStep(t, done)}

	case Specs:
		return Response{Type: Specs, Spec: &SpecSet{
			Observation: newSpec(s.env.ObservationSpec()),
			Action:      newSpec(s.env.ActionSpec()),
			Reward:      newSpec(s.env.RewardSpec()),
			Discount:    newSpec(s.env.DiscountSpec()),
		}}

	default:
		return errorResponse(fmt.Errorf("unknown message type %q", req.Type))
	}
}

func errorResponse(err error) Response {
	resp := Response{Type: Error, Error: err.Error()}
	if errors.Is(err, environment.ErrEpisodeOver) {
		resp.EpisodeOver = true
	}
	return resp
}
