package netdemo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kylepfurey/FureyLib-sub005/internal/container"
)

// ErrClosed is returned by operations on a closed client.
var ErrClosed = errors.New("netdemo: client closed")

// RPCError is a failure reported by the remote RPC handler.
type RPCError struct {
	Name    string
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s: %s", e.Name, e.Message)
}

// Remote is a peer as seen by a client.
type Remote struct {
	Peer
	interp *InterpolatedTransform
}

type Client struct {
	id       string
	tickRate int
	conn     *websocket.Conn
	log      *slog.Logger
	delay    time.Duration
	events   chan Envelope

	writeMu sync.Mutex

	mu      sync.Mutex
	remotes *container.Dictionary[string, *Remote]
	pending map[uint64]chan RPCResult
	err     error

	nextCall  atomic.Uint64
	done      chan struct{}
	closeOnce sync.Once
}

type DialOption func(*dialOptions)

type dialOptions struct {
	cfg   DialConfig
	log   *slog.Logger
	delay time.Duration
}

func WithDialConfig(cfg DialConfig) DialOption {
	return func(o *dialOptions) { o.cfg = cfg }
}

func WithLogger(l *slog.Logger) DialOption {
	return func(o *dialOptions) { o.log = l }
}

// WithInterpolationDelay sets how far behind real time remote entities are
// rendered.
func WithInterpolationDelay(d time.Duration) DialOption {
	return func(o *dialOptions) { o.delay = d }
}

// Dial connects to a server websocket URL and completes the hello/welcome
// handshake.
func Dial(ctx context.Context, url, name string, opts ...DialOption) (*Client, error) {
	o := dialOptions{
		cfg:   DefaultDialConfig(),
		delay: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if o.cfg.Events <= 0 {
		o.cfg.Events = 256
	}

	conn, _, err := newDialer(o.cfg).DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{
		conn:    conn,
		log:     o.log,
		delay:   o.delay,
		events:  make(chan Envelope, o.cfg.Events),
		remotes: container.NewDictionary[string, *Remote](),
		pending: map[uint64]chan RPCResult{},
		done:    make(chan struct{}),
	}

	if err := c.handshake(ctx, name); err != nil {
		_ = conn.Close()
		return nil, err
	}

	go c.readLoop()
	c.log.Info("netdemo.client_connected", "id", c.id, "url", url, "peers", c.remotes.Len())
	return c, nil
}

func (c *Client) handshake(ctx context.Context, name string) error {
	if err := c.write(MsgHello, Hello{Name: name}); err != nil {
		return err
	}

	deadline := time.Now().Add(handshakeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.conn.SetReadDeadline(deadline)
	defer c.conn.SetReadDeadline(time.Time{})

	var env Envelope
	if err := c.conn.ReadJSON(&env); err != nil {
		return fmt.Errorf("read welcome: %w", err)
	}
	switch env.Type {
	case MsgWelcome:
	case MsgError:
		var m ErrorMsg
		_ = env.Decode(&m)
		return fmt.Errorf("server rejected hello: %s", m.Message)
	default:
		return fmt.Errorf("expected %q, got %q", MsgWelcome, env.Type)
	}

	var w Welcome
	if err := env.Decode(&w); err != nil {
		return err
	}
	c.id = w.ID
	c.tickRate = w.TickRate
	for _, p := range w.Peers {
		c.addRemote(p)
	}
	return nil
}

// ID is the network ID assigned by the server.
func (c *Client) ID() string { return c.id }

// TickRate is the snapshot rate advertised by the server.
func (c *Client) TickRate() int { return c.tickRate }

// Events delivers every envelope received after the handshake. It is closed
// when the connection ends.
func (c *Client) Events() <-chan Envelope { return c.events }

// Done is closed once the connection has ended.
func (c *Client) Done() <-chan struct{} { return c.done }

// Err reports why the connection ended, nil after a clean Close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) SendTransform(tr Transform) error {
	return c.write(MsgTransform, TransformUpdate{
		ID:        c.id,
		Transform: tr,
		SentAt:    time.Now().UnixMilli(),
	})
}

func (c *Client) SendChat(text string) error {
	return c.write(MsgChat, Chat{Text: text})
}

// CallRPC invokes a named server RPC and waits for its result. When result
// is non-nil the reply is decoded into it.
func (c *Client) CallRPC(ctx context.Context, name string, args, result any) error {
	var raw json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("rpc %s: encode args: %w", name, err)
		}
		raw = b
	}

	id := c.nextCall.Add(1)
	ch := make(chan RPCResult, 1)

	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.pending != nil {
			delete(c.pending, id)
		}
		c.mu.Unlock()
	}()

	if err := c.write(MsgRPC, RPCCall{CallID: id, Name: name, Args: raw}); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	case res := <-ch:
		if res.Error != "" {
			return &RPCError{Name: name, Message: res.Error}
		}
		if result != nil && len(res.Result) > 0 {
			if err := json.Unmarshal(res.Result, result); err != nil {
				return fmt.Errorf("rpc %s: decode result: %w", name, err)
			}
		}
		return nil
	}
}

// Peers lists known remote peers in spawn order.
func (c *Client) Peers() []Peer {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Peer, 0, c.remotes.Len())
	for _, r := range c.remotes.All() {
		out = append(out, r.Peer)
	}
	return out
}

// Sample returns the interpolated transform of a remote entity at the
// current render time.
func (c *Client) Sample(id string) (Transform, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.remotes.Get(id)
	if !ok {
		return Transform{}, false
	}
	if r.interp.Len() == 0 {
		return r.Transform, true
	}
	return r.interp.SampleNow(), true
}

// Latest returns the newest transform received for id, without
// interpolation.
func (c *Client) Latest(id string) (Transform, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.remotes.Get(id)
	if !ok {
		return Transform{}, false
	}
	return r.Transform, true
}

func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	err := c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	c.shutdown(nil)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func (c *Client) write(t MessageType, payload any) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	env, err := newEnvelope(t, c.id, payload)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("send %s: %w", t, err)
	}
	return nil
}

func (c *Client) readLoop() {
	defer close(c.events)

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			select {
			case <-c.done:
				c.shutdown(nil)
			default:
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.shutdown(nil)
				} else {
					c.log.Warn("netdemo.client_read_failed", "id", c.id, "err", err)
					c.shutdown(err)
				}
			}
			return
		}
		c.apply(env)

		select {
		case c.events <- env:
		default:
			c.log.Debug("netdemo.event_dropped", "type", env.Type)
		}
	}
}

func (c *Client) apply(env Envelope) {
	switch env.Type {
	case MsgSpawn:
		var p Peer
		if err := env.Decode(&p); err == nil {
			c.mu.Lock()
			c.addRemote(p)
			c.mu.Unlock()
		}
	case MsgDespawn:
		var d Despawn
		if err := env.Decode(&d); err == nil {
			c.mu.Lock()
			c.remotes.Remove(d.ID)
			c.mu.Unlock()
		}
	case MsgTransform:
		var u TransformUpdate
		if err := env.Decode(&u); err != nil {
			return
		}
		c.mu.Lock()
		if r, ok := c.remotes.Get(u.ID); ok {
			// Snapshots are stamped on receipt so sender clock skew does not
			// leak into playback.
			r.interp.Push(time.Now(), u.Transform)
			r.Transform = u.Transform
		}
		c.mu.Unlock()
	case MsgRPCResult:
		var res RPCResult
		if err := env.Decode(&res); err != nil {
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[res.CallID]
		c.mu.Unlock()
		if ok {
			ch <- res
		}
	}
}

// addRemote expects c.mu held (or exclusive access during handshake).
func (c *Client) addRemote(p Peer) {
	if p.ID == c.id {
		return
	}
	c.remotes.Set(p.ID, &Remote{Peer: p, interp: NewInterpolatedTransform(c.delay)})
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.pending = nil
		c.mu.Unlock()

		close(c.done)
		_ = c.conn.Close()
	})
}
