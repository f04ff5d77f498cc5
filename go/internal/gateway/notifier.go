package gateway

import (
	"context"

	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/rs/zerolog/log"
)

// PlayerJoined broadcasts a join straight to the feed. Presence changes are
// not persisted so they never pass through the outbox.
func (cm *ConnectionManager) PlayerJoined(state models.PlayerState) {
	cm.broadcastPresence(events.PlayerJoined, state)
}

// PlayerLeft broadcasts a departure
func (cm *ConnectionManager) PlayerLeft(state models.PlayerState) {
	cm.broadcastPresence(events.PlayerLeft, state)
}

func (cm *ConnectionManager) broadcastPresence(t events.Type, state models.PlayerState) {
	evt, err := events.New(t, state.AccountID, events.PlayerPresencePayload{
		AccountID: state.AccountID.String(),
		Name:      state.Name,
		X:         state.Position.X,
		Y:         state.Position.Y,
		SkinID:    state.SkinID,
	})
	if err != nil {
		log.Error().Err(err).Str("event_type", string(t)).Msg("failed to build presence event")
		return
	}
	if err := cm.Publish(context.Background(), evt); err != nil {
		log.Error().Err(err).Str("event_type", string(t)).Msg("failed to broadcast presence event")
	}
}

// Publish broadcasts an outbox event directly. It lets the outbox feed the
// gateway in-process when NATS is not configured.
func (cm *ConnectionManager) Publish(ctx context.Context, evt events.Event) error {
	frame, err := FrameFromEvent(evt)
	if err != nil {
		return err
	}
	cm.Broadcast(frame)
	return nil
}
