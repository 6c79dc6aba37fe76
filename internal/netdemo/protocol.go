package netdemo

import (
	"encoding/json"
	"fmt"
)

// MessageType names an envelope payload.
type MessageType string

const (
	MsgHello     MessageType = "hello"
	MsgWelcome   MessageType = "welcome"
	MsgSpawn     MessageType = "spawn"
	MsgDespawn   MessageType = "despawn"
	MsgTransform MessageType = "transform"
	MsgChat      MessageType = "chat"
	MsgRPC       MessageType = "rpc"
	MsgRPCResult MessageType = "rpc_result"
	MsgError     MessageType = "error"
)

type Envelope struct {
	Type    MessageType     `json:"type"`
	From    string          `json:"from,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s: empty payload", e.Type)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%s: decode payload: %w", e.Type, err)
	}
	return nil
}

func newEnvelope(t MessageType, from string, payload any) (Envelope, error) {
	env := Envelope{Type: t, From: from}
	if payload == nil {
		return env, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: encode payload: %w", t, err)
	}
	env.Payload = b
	return env, nil
}

type Hello struct {
	Name string `json:"name"`
}

// Peer describes a connected player.
type Peer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Transform Transform `json:"transform"`
}

type Welcome struct {
	ID       string `json:"id"`
	TickRate int    `json:"tick_rate"`
	Peers    []Peer `json:"peers"`
}

type Despawn struct {
	ID string `json:"id"`
}

// TransformUpdate is one snapshot of an entity. SentAt is the sender's
// clock in Unix milliseconds.
type TransformUpdate struct {
	ID        string    `json:"id"`
	Transform Transform `json:"transform"`
	SentAt    int64     `json:"sent_at"`
}

type Chat struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type RPCCall struct {
	CallID uint64          `json:"call_id"`
	Name   string          `json:"name"`
	Args   json.RawMessage `json:"args,omitempty"`
}

type RPCResult struct {
	CallID uint64          `json:"call_id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type ErrorMsg struct {
	Message string `json:"message"`
}
