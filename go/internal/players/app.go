package players

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/internal/commands"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/tilemap"
	"github.com/rs/zerolog/log"
)

// PlayersRepository defines what the app layer needs from the repository
type PlayersRepository interface {
	SavePosition(ctx context.Context, pos models.SavedPosition) error
	LoadPosition(ctx context.Context, accountID uuid.UUID) (*models.SavedPosition, error)
	SaveSkin(ctx context.Context, accountID uuid.UUID, skinID string) error
	OwnsSkin(ctx context.Context, accountID uuid.UUID, skinID string) (bool, error)
}

// Notifier is told when players enter or leave the world
type Notifier interface {
	PlayerJoined(state models.PlayerState)
	PlayerLeft(state models.PlayerState)
}

type nopNotifier struct{}

func (nopNotifier) PlayerJoined(models.PlayerState) {}
func (nopNotifier) PlayerLeft(models.PlayerState)   {}

// App owns the live world state that clients poll
type App struct {
	repo      PlayersRepository
	presence  *Presence
	commands  *commands.Registry
	world     *tilemap.Map
	spawn     models.Position
	freeSkins map[string]bool
	clock     clockwork.Clock
	notifier  Notifier
}

// NewApp creates a new players App
func NewApp(repo PlayersRepository, registry *commands.Registry, world *tilemap.Map, settings Settings, clock clockwork.Clock) *App {
	if settings.PresenceTimeout <= 0 {
		settings.PresenceTimeout = DefaultPresenceTimeout
	}
	free := make(map[string]bool, len(settings.FreeSkins))
	for _, s := range settings.FreeSkins {
		free[s] = true
	}
	return &App{
		repo:      repo,
		presence:  NewPresence(clock, settings.PresenceTimeout, settings.ChatTTL),
		commands:  registry,
		world:     world,
		spawn:     settings.Spawn,
		freeSkins: free,
		clock:     clock,
		notifier:  nopNotifier{},
	}
}

// SetNotifier replaces the join/leave listener. Call before serving.
func (a *App) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	a.notifier = n
}

// UpdateState applies a client's poll post. Each present field overwrites
// the stored value on its own; a rejected field rejects the whole post.
func (a *App) UpdateState(ctx context.Context, account *models.Account, upd StateUpdate) (*StateResponse, error) {
	if err := a.validateUpdate(upd); err != nil {
		return nil, err
	}

	if upd.Skin != nil {
		skin := strings.TrimSpace(*upd.Skin)
		if err := a.checkSkin(ctx, account, skin); err != nil {
			return nil, err
		}
		upd.Skin = &skin
	}

	initial, err := a.initialState(ctx, account)
	if err != nil {
		return nil, err
	}

	var resp StateResponse
	state, joined, err := a.presence.Update(account.ID, initial, func(s *models.PlayerState) error {
		s.Name = account.DisplayName

		next := s.Position
		if upd.X != nil {
			next.X = *upd.X
		}
		if upd.Y != nil {
			next.Y = *upd.Y
		}
		if !a.world.Contains(next) {
			return fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, next.X, next.Y)
		}
		s.Position = next

		if upd.Skin != nil {
			s.SkinID = *upd.Skin
		}

		if upd.Chat != nil {
			result := a.commands.Execute(*upd.Chat, s.Position)
			if result.IsCommand {
				resp.Bubble = result.Bubble
				if result.Teleport != nil {
					s.Position = *result.Teleport
					dest := *result.Teleport
					resp.Teleport = &dest
				}
			} else {
				s.Chat = *upd.Chat
				s.ChatAt = a.clock.Now()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if joined {
		log.Info().
			Str("account_id", account.ID.String()).
			Str("name", state.Name).
			Float64("x", state.Position.X).
			Float64("y", state.Position.Y).
			Msg("player joined")
		a.notifier.PlayerJoined(state)
	}
	if resp.Teleport != nil {
		log.Debug().
			Str("account_id", account.ID.String()).
			Float64("x", resp.Teleport.X).
			Float64("y", resp.Teleport.Y).
			Msg("player teleported")
	}

	resp.Player = state
	return &resp, nil
}

// ListPlayers returns every present player
func (a *App) ListPlayers(ctx context.Context) []models.PlayerState {
	return a.presence.Snapshot()
}

// Position returns the live position of a present player
func (a *App) Position(accountID uuid.UUID) (models.Position, bool) {
	return a.presence.Position(accountID)
}

// EquipSkin updates the live skin after a purchase was stored
func (a *App) EquipSkin(accountID uuid.UUID, skinID string) {
	a.presence.SetSkin(accountID, skinID)
}

// Online returns the number of players with a presence entry
func (a *App) Online() int {
	return a.presence.Len()
}

// Flush writes changed positions and skins to the database. Changes that
// fail to save are queued again for the next flush.
func (a *App) Flush(ctx context.Context) error {
	dirty := a.presence.DrainDirty()
	if len(dirty) == 0 {
		return nil
	}

	var errs []error
	var failed []DirtyState
	for _, d := range dirty {
		retry := DirtyState{State: d.State}
		if d.PositionDirty {
			err := a.repo.SavePosition(ctx, models.SavedPosition{
				AccountID: d.State.AccountID,
				Position:  d.State.Position,
				UpdatedAt: d.State.LastSeen,
			})
			if err != nil {
				errs = append(errs, err)
				retry.PositionDirty = true
			}
		}
		if d.SkinDirty {
			if err := a.repo.SaveSkin(ctx, d.State.AccountID, d.State.SkinID); err != nil {
				errs = append(errs, err)
				retry.SkinDirty = true
			}
		}
		if retry.PositionDirty || retry.SkinDirty {
			failed = append(failed, retry)
		}
	}
	if len(failed) > 0 {
		a.presence.Requeue(failed)
	}

	log.Debug().Int("players", len(dirty)).Int("errors", len(errs)).Msg("flushed player state")
	return errors.Join(errs...)
}

// Reap drops players that stopped polling and announces their departure
func (a *App) Reap() {
	for _, state := range a.presence.Reap() {
		log.Info().
			Str("account_id", state.AccountID.String()).
			Str("name", state.Name).
			Msg("player left")
		a.notifier.PlayerLeft(state)
	}
}

// Run reaps and flushes on every interval until ctx is cancelled, then
// flushes one last time.
func (a *App) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	ticker := a.clock.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("presence loop started")
	for {
		select {
		case <-ctx.Done():
			a.Reap()
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := a.Flush(flushCtx); err != nil {
				log.Error().Err(err).Msg("final flush failed")
			}
			cancel()
			log.Info().Msg("presence loop stopped")
			return
		case <-ticker.Chan():
			a.Reap()
			if err := a.Flush(ctx); err != nil {
				log.Error().Err(err).Msg("failed to flush player state")
			}
		}
	}
}

func (a *App) validateUpdate(upd StateUpdate) error {
	if upd.X == nil && upd.Y == nil && upd.Skin == nil && upd.Chat == nil {
		return ErrEmptyUpdate
	}
	for _, v := range []*float64{upd.X, upd.Y} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return ErrInvalidNumber
		}
	}
	if upd.Chat != nil && utf8.RuneCountInString(*upd.Chat) > MaxChatRunes {
		return fmt.Errorf("%w: max %d characters", ErrChatTooLong, MaxChatRunes)
	}
	return nil
}

func (a *App) checkSkin(ctx context.Context, account *models.Account, skinID string) error {
	if skinID == account.SkinID || a.freeSkins[skinID] {
		return nil
	}
	owned, err := a.repo.OwnsSkin(ctx, account.ID, skinID)
	if err != nil {
		return err
	}
	if !owned {
		return fmt.Errorf("%w: %s", ErrSkinNotOwned, skinID)
	}
	return nil
}

func (a *App) initialState(ctx context.Context, account *models.Account) (models.PlayerState, error) {
	state := models.PlayerState{
		AccountID: account.ID,
		Name:      account.DisplayName,
		Position:  a.spawn,
		SkinID:    account.SkinID,
	}
	if a.presence.Has(account.ID) {
		return state, nil
	}

	saved, err := a.repo.LoadPosition(ctx, account.ID)
	if err != nil {
		return models.PlayerState{}, err
	}
	if saved != nil && a.world.Contains(saved.Position) {
		state.Position = saved.Position
	}
	return state, nil
}
