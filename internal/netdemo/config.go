package netdemo

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

type ServerConfig struct {
	Addr string
	// TickRate is advertised to clients as the snapshot send rate.
	TickRate int
	// TransformRate caps accepted transform updates per client per second.
	// Zero disables throttling.
	TransformRate int

	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

func DefaultServerConfig() ServerConfig {
	return ServerConfigFrom(domain.DefaultConfig().Net)
}

// ServerConfigFrom maps workspace config onto server settings.
func ServerConfigFrom(nc domain.NetConfig) ServerConfig {
	return ServerConfig{
		Addr:           nc.Addr,
		TickRate:       nc.TickRate,
		TransformRate:  nc.TransformRate,
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 64 * 1024,
		SendBuffer:     64,
	}
}

// withDefaults fills non-positive timing and buffer fields from
// DefaultServerConfig. TickRate and TransformRate are kept as given.
func (c ServerConfig) withDefaults() ServerConfig {
	def := DefaultServerConfig()
	if c.WriteWait <= 0 {
		c.WriteWait = def.WriteWait
	}
	if c.PongWait <= 0 {
		c.PongWait = def.PongWait
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = c.PongWait * 9 / 10
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = def.SendBuffer
	}
	return c
}

type DialConfig struct {
	// Transport / dial timeouts.
	DialTimeout      time.Duration
	KeepAlive        time.Duration
	HandshakeTimeout time.Duration

	ReadBufferSize  int
	WriteBufferSize int

	// Events is the buffer size of Client.Events.
	Events int
}

func DefaultDialConfig() DialConfig {
	return DialConfig{
		DialTimeout:      5 * time.Second,
		KeepAlive:        30 * time.Second,
		HandshakeTimeout: 5 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		Events:           256,
	}
}

func newDialer(cfg DialConfig) *websocket.Dialer {
	d := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}
	return &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		NetDialContext:   d.DialContext,
		HandshakeTimeout: cfg.HandshakeTimeout,
		ReadBufferSize:   cfg.ReadBufferSize,
		WriteBufferSize:  cfg.WriteBufferSize,
	}
}
