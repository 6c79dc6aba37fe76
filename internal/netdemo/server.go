package netdemo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/kylepfurey/FureyLib-sub005/internal/container"
)

const handshakeTimeout = 10 * time.Second

// RPCHandler serves a named RPC. The returned value is sent back as JSON.
type RPCHandler func(ctx context.Context, caller Peer, args json.RawMessage) (any, error)

type Server struct {
	cfg      ServerConfig
	log      *slog.Logger
	upgrader websocket.Upgrader
	newID    func() string

	mu      sync.RWMutex
	clients *container.Dictionary[string, *serverClient]
	rpcs    map[string]RPCHandler
}

type serverClient struct {
	id      string
	name    string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter

	mu        sync.Mutex
	transform Transform

	done      chan struct{}
	closeOnce sync.Once
}

func NewServer(cfg ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	cfg = cfg.withDefaults()

	s := &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // demo server, any origin
			},
		},
		newID:   uuid.NewString,
		clients: container.NewDictionary[string, *serverClient](),
		rpcs:    map[string]RPCHandler{},
	}

	s.RegisterRPC("ping", func(context.Context, Peer, json.RawMessage) (any, error) {
		return "pong", nil
	})
	s.RegisterRPC("peers", func(context.Context, Peer, json.RawMessage) (any, error) {
		return s.Peers(), nil
	})
	return s
}

// RegisterRPC adds or replaces a named RPC.
func (s *Server) RegisterRPC(name string, h RPCHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rpcs[name] = h
}

// Clients returns the number of joined clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients.Len()
}

// Peers lists joined clients in join order.
func (s *Server) Peers() []Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Peer, 0, s.clients.Len())
	for _, c := range s.clients.All() {
		out = append(out, c.peer())
	}
	return out
}

// Handler serves the websocket endpoint on /ws and a plain health check on
// /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int{"clients": s.Clients()})
	})
	return mux
}

// ListenAndServe runs until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("netdemo.server_listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	s.log.Info("netdemo.server_stopped")
	return err
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.RLock()
	clients := s.clients.Values()
	s.mu.RUnlock()

	for _, c := range clients {
		c.close()
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("netdemo.upgrade_failed", "err", err)
		return
	}

	hello, err := s.readHello(conn)
	if err != nil {
		s.log.Warn("netdemo.handshake_failed", "remote", r.RemoteAddr, "err", err)
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
		if env, encErr := newEnvelope(MsgError, "", ErrorMsg{Message: err.Error()}); encErr == nil {
			_ = conn.WriteJSON(env)
		}
		_ = conn.Close()
		return
	}

	c := &serverClient{
		id:   s.newID(),
		name: hello.Name,
		conn: conn,
		send: make(chan []byte, s.cfg.SendBuffer),
		done: make(chan struct{}),
	}
	if s.cfg.TransformRate > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(s.cfg.TransformRate), s.cfg.TransformRate)
	}

	s.join(c)
	go s.writePump(c)
	s.readPump(c)
	s.leave(c)
}

func (s *Server) readHello(conn *websocket.Conn) (Hello, error) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		return Hello{}, fmt.Errorf("read hello: %w", err)
	}
	if env.Type != MsgHello {
		return Hello{}, fmt.Errorf("expected %q, got %q", MsgHello, env.Type)
	}
	var h Hello
	if err := env.Decode(&h); err != nil {
		return Hello{}, err
	}
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return Hello{}, errors.New("hello: name is required")
	}
	return h, nil
}

func (s *Server) join(c *serverClient) {
	// The welcome is queued before c becomes visible to broadcast, so it is
	// always the first message the client reads.
	s.mu.Lock()
	peers := make([]Peer, 0, s.clients.Len())
	for _, other := range s.clients.All() {
		peers = append(peers, other.peer())
	}
	s.sendTo(c, MsgWelcome, "", Welcome{ID: c.id, TickRate: s.cfg.TickRate, Peers: peers})
	s.clients.Set(c.id, c)
	s.mu.Unlock()

	s.broadcast(MsgSpawn, c.id, c.peer(), c.id)
	s.log.Info("netdemo.client_joined", "id", c.id, "name", c.name, "clients", len(peers)+1)
}

func (s *Server) leave(c *serverClient) {
	c.close()

	s.mu.Lock()
	removed := s.clients.Remove(c.id)
	s.mu.Unlock()

	if removed {
		s.broadcast(MsgDespawn, c.id, Despawn{ID: c.id}, c.id)
		s.log.Info("netdemo.client_left", "id", c.id, "name", c.name)
	}
}

func (s *Server) readPump(c *serverClient) {
	if s.cfg.MaxMessageSize > 0 {
		c.conn.SetReadLimit(s.cfg.MaxMessageSize)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("netdemo.read_failed", "id", c.id, "err", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.sendTo(c, MsgError, "", ErrorMsg{Message: "invalid envelope"})
			continue
		}
		s.handle(c, env)
	}
}

func (s *Server) handle(c *serverClient, env Envelope) {
	switch env.Type {
	case MsgTransform:
		var u TransformUpdate
		if err := env.Decode(&u); err != nil {
			s.sendTo(c, MsgError, "", ErrorMsg{Message: err.Error()})
			return
		}
		if c.limiter != nil && !c.limiter.Allow() {
			s.log.Debug("netdemo.transform_throttled", "id", c.id)
			return
		}
		c.mu.Lock()
		c.transform = u.Transform
		c.mu.Unlock()

		u.ID = c.id
		s.broadcast(MsgTransform, c.id, u, c.id)

	case MsgChat:
		var m Chat
		if err := env.Decode(&m); err != nil {
			s.sendTo(c, MsgError, "", ErrorMsg{Message: err.Error()})
			return
		}
		m.Name = c.name
		s.broadcast(MsgChat, c.id, m, "")

	case MsgRPC:
		var call RPCCall
		if err := env.Decode(&call); err != nil {
			s.sendTo(c, MsgError, "", ErrorMsg{Message: err.Error()})
			return
		}
		s.sendTo(c, MsgRPCResult, "", s.invoke(c, call))

	default:
		s.sendTo(c, MsgError, "", ErrorMsg{Message: fmt.Sprintf("unsupported message type %q", env.Type)})
	}
}

func (s *Server) invoke(c *serverClient, call RPCCall) RPCResult {
	s.mu.RLock()
	h, ok := s.rpcs[call.Name]
	s.mu.RUnlock()

	res := RPCResult{CallID: call.CallID}
	if !ok {
		res.Error = fmt.Sprintf("unknown rpc %q", call.Name)
		return res
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteWait)
	defer cancel()

	out, err := h(ctx, c.peer(), call.Args)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	b, err := json.Marshal(out)
	if err != nil {
		res.Error = fmt.Sprintf("encode result: %v", err)
		return res
	}
	res.Result = b
	s.log.Debug("netdemo.rpc", "id", c.id, "name", call.Name)
	return res
}

func (s *Server) writePump(c *serverClient) {
	ticker := time.NewTicker(s.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				s.log.Warn("netdemo.write_failed", "id", c.id, "err", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) sendTo(c *serverClient, t MessageType, from string, payload any) {
	env, err := newEnvelope(t, from, payload)
	if err != nil {
		s.log.Error("netdemo.encode_failed", "type", t, "err", err)
		return
	}
	b, err := json.Marshal(env)
	if err != nil {
		s.log.Error("netdemo.encode_failed", "type", t, "err", err)
		return
	}
	if !c.enqueue(b) {
		s.log.Warn("netdemo.client_slow", "id", c.id, "type", t)
		c.close()
	}
}

// broadcast sends to every client except the one with ID skip.
func (s *Server) broadcast(t MessageType, from string, payload any, skip string) {
	s.mu.RLock()
	targets := make([]*serverClient, 0, s.clients.Len())
	for id, c := range s.clients.All() {
		if id != skip {
			targets = append(targets, c)
		}
	}
	s.mu.RUnlock()

	for _, c := range targets {
		s.sendTo(c, t, from, payload)
	}
}

func (c *serverClient) peer() Peer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Peer{ID: c.id, Name: c.name, Transform: c.transform}
}

func (c *serverClient) enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *serverClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}
