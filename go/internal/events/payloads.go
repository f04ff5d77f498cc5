package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event payload types shared between the writers (shop, inventory, chests,
// players) and the gateway that fans them out.

// Type names a world event. It is also the last token of the NATS subject.
type Type string

const (
	SkinPurchased  Type = "SkinPurchased"
	HousePurchased Type = "HousePurchased"
	ItemSold       Type = "ItemSold"
	ItemTraded     Type = "ItemTraded"
	ChestOpened    Type = "ChestOpened"
	BalanceGranted Type = "BalanceGranted"
	PlayerJoined   Type = "PlayerJoined"
	PlayerLeft     Type = "PlayerLeft"
)

// SubjectPrefix is prepended to the event type to form the NATS subject
const SubjectPrefix = "world.events."

// Subject returns the NATS subject an event type is published on
func Subject(t Type) string {
	return SubjectPrefix + string(t)
}

// Event is one row of the world outbox
type Event struct {
	ID          uuid.UUID       `json:"id" msgpack:"id"`
	AggregateID uuid.UUID       `json:"aggregate_id" msgpack:"aggregate_id"`
	Type        Type            `json:"event_type" msgpack:"event_type"`
	Payload     json.RawMessage `json:"payload" msgpack:"payload"`
	CreatedAt   time.Time       `json:"created_at" msgpack:"created_at"`
}

// New builds an event with a fresh id, marshalling payload as JSON
func New(t Type, aggregateID uuid.UUID, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", t, err)
	}
	return Event{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        t,
		Payload:     data,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// SkinPurchasedPayload is the payload for a SkinPurchased event
type SkinPurchasedPayload struct {
	AccountID  string `json:"account_id"`
	SkinID     string `json:"skin_id"`
	Price      int64  `json:"price"`
	NewBalance int64  `json:"new_balance"`
}

// HousePurchasedPayload is the payload for a HousePurchased event
type HousePurchasedPayload struct {
	AccountID  string `json:"account_id"`
	HouseID    string `json:"house_id"`
	Price      int64  `json:"price"`
	NewBalance int64  `json:"new_balance"`
}

// ItemSoldPayload is the payload for an ItemSold event
type ItemSoldPayload struct {
	AccountID  string `json:"account_id"`
	InstanceID string `json:"instance_id"`
	ItemID     string `json:"item_id"`
	Price      int64  `json:"price"`
	NewBalance int64  `json:"new_balance"`
}

// ItemTradedPayload is the payload for an ItemTraded event
type ItemTradedPayload struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	InstanceID    string `json:"instance_id"`
	ItemID        string `json:"item_id"`
	ToSlot        int    `json:"to_slot"`
}

// ChestOpenedPayload is the payload for a ChestOpened event
type ChestOpenedPayload struct {
	AccountID  string `json:"account_id"`
	ChestID    string `json:"chest_id"`
	InstanceID string `json:"instance_id"`
	ItemID     string `json:"item_id"`
	Slot       int    `json:"slot"`
}

// BalanceGrantedPayload is the payload for a BalanceGranted event
type BalanceGrantedPayload struct {
	AccountID  string `json:"account_id"`
	Amount     int64  `json:"amount"`
	NewBalance int64  `json:"new_balance"`
}

// PlayerPresencePayload is the payload for PlayerJoined and PlayerLeft
type PlayerPresencePayload struct {
	AccountID string  `json:"account_id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	SkinID    string  `json:"skin_id"`
}
