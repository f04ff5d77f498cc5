package gateway

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/vmihailenco/msgpack/v5"
)

func soldEvent(t *testing.T) events.Event {
	t.Helper()
	evt, err := events.New(events.ItemSold, uuid.New(), events.ItemSoldPayload{ItemID: "apple", Price: 5})
	if err != nil {
		t.Fatalf("failed to build event: %v", err)
	}
	return evt
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingJSON, false},
		{"json", EncodingJSON, false},
		{"msgpack", EncodingMsgpack, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%q: expected error %v, got %v", tt.in, tt.wantErr, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFrameFromEventRejectsUnknownType(t *testing.T) {
	evt := soldEvent(t)
	evt.Type = "DraftStarted"
	if _, err := FrameFromEvent(evt); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestFrameEncodeJSON(t *testing.T) {
	frame, err := FrameFromEvent(soldEvent(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := frame.Encode(EncodingJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		Type string `json:"type"`
		Data struct {
			ItemID string `json:"item_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if got.Type != "ItemSold" || got.Data.ItemID != "apple" {
		t.Fatalf("unexpected frame %+v", got)
	}
}

func TestFrameEncodeMsgpackInlinesPayload(t *testing.T) {
	evt := soldEvent(t)
	frame, err := FrameFromEvent(evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := frame.Encode(EncodingMsgpack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got msgpackFrame
	if err := msgpack.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if got.Type != events.ItemSold {
		t.Fatalf("expected ItemSold, got %v", got.Type)
	}
	payload, ok := got.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected payload map, got %T", got.Data)
	}
	if payload["item_id"] != "apple" {
		t.Fatalf("expected apple, got %v", payload["item_id"])
	}
	if got.Timestamp != evt.CreatedAt.UnixMilli() {
		t.Fatalf("expected unix millis timestamp, got %d", got.Timestamp)
	}
}

func TestDecodeMessage(t *testing.T) {
	evt := soldEvent(t)
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame, err := decodeMessage(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.ID != evt.ID.String() {
		t.Fatalf("expected id %s, got %s", evt.ID, frame.ID)
	}
	if _, err := decodeMessage([]byte("{")); err == nil {
		t.Fatalf("expected error for malformed message")
	}
}
