package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/vmihailenco/msgpack/v5"
)

// Encoding selects the websocket frame format of a connection
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingMsgpack Encoding = "msgpack"
)

// ParseEncoding maps the ?encoding= query value; empty means JSON
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", string(EncodingJSON):
		return EncodingJSON, nil
	case string(EncodingMsgpack):
		return EncodingMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s", s)
	}
}

// Frame is one world event as sent to websocket clients
type Frame struct {
	ID          string          `json:"id"`           // Event UUID
	Type        events.Type     `json:"type"`         // Event type
	AggregateID string          `json:"aggregate_id"` // Account the event is about
	Timestamp   time.Time       `json:"timestamp"`    // Event creation time
	Data        json.RawMessage `json:"data"`         // Event-specific payload
}

// msgpackFrame carries the payload as a decoded value so binary clients
// never see nested JSON text
type msgpackFrame struct {
	ID          string      `msgpack:"id"`
	Type        events.Type `msgpack:"type"`
	AggregateID string      `msgpack:"aggregate_id"`
	Timestamp   int64       `msgpack:"timestamp"` // unix millis
	Data        any         `msgpack:"data"`
}

// FrameFromEvent converts an outbox event, rejecting types the feed does not carry
func FrameFromEvent(evt events.Event) (*Frame, error) {
	switch evt.Type {
	case events.SkinPurchased,
		events.HousePurchased,
		events.ItemSold,
		events.ItemTraded,
		events.ChestOpened,
		events.BalanceGranted,
		events.PlayerJoined,
		events.PlayerLeft:
	default:
		return nil, fmt.Errorf("unknown event type: %s", evt.Type)
	}

	return &Frame{
		ID:          evt.ID.String(),
		Type:        evt.Type,
		AggregateID: evt.AggregateID.String(),
		Timestamp:   evt.CreatedAt,
		Data:        evt.Payload,
	}, nil
}

// Encode renders the frame for a connection
func (f *Frame) Encode(enc Encoding) ([]byte, error) {
	if enc != EncodingMsgpack {
		return json.Marshal(f)
	}

	var data any
	if len(f.Data) > 0 {
		if err := json.Unmarshal(f.Data, &data); err != nil {
			return nil, fmt.Errorf("decode frame payload: %w", err)
		}
	}
	return msgpack.Marshal(msgpackFrame{
		ID:          f.ID,
		Type:        f.Type,
		AggregateID: f.AggregateID,
		Timestamp:   f.Timestamp.UnixMilli(),
		Data:        data,
	})
}
