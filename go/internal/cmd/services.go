package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/clients"
	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/admin"
	"github.com/mcdev12/overworld/go/internal/chests"
	"github.com/mcdev12/overworld/go/internal/commands"
	"github.com/mcdev12/overworld/go/internal/gateway"
	"github.com/mcdev12/overworld/go/internal/inventory"
	"github.com/mcdev12/overworld/go/internal/outbox"
	outboxdb "github.com/mcdev12/overworld/go/internal/outbox/db"
	"github.com/mcdev12/overworld/go/internal/players"
	playersdb "github.com/mcdev12/overworld/go/internal/players/db"
	"github.com/mcdev12/overworld/go/internal/shop"
	"github.com/mcdev12/overworld/go/internal/tilemap"
	"github.com/mcdev12/overworld/go/internal/worldconfig"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Accounts  *accounts.Service
	Players   *players.Service
	Shop      *shop.Service
	Inventory *inventory.Service
	Chests    *chests.Service
	Gateway   *gateway.Service

	AdminPath    string
	AdminHandler http.Handler
	OutboxHealth *outbox.HealthChecker

	playersApp     *players.App
	outboxListener *outbox.Listener
	publisher      *outbox.JetStreamPublisher
}

func setupServices(ctx context.Context, database *sql.DB, dsn string, cfg *Config, world *worldconfig.Config, worldMap *tilemap.Map, clock clockwork.Clock) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Accounts
	var verifier accounts.TokenVerifier
	google := clients.NewGoogleClient(cfg.GoogleClientID)
	if cfg.DevLogin {
		log.Warn().Msg("dev login enabled: dev:<email> tokens are accepted")
		if cfg.GoogleClientID == "" {
			google = nil
		}
		verifier = clients.NewDevVerifier(google, clock)
	} else {
		verifier = google
	}
	accountsRepo := accounts.NewRepository(database)
	accountsApp := accounts.NewApp(accountsRepo, verifier, clock, world.StartBalance)
	accountsService := accounts.NewService(accountsApp)
	auth := accounts.Middleware(accountsService.RequireAuth)

	// Players
	registry, err := commands.NewRegistry(world.Teleports)
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}
	playersRepo := players.NewRepository(playersdb.New(database))
	playersApp := players.NewApp(playersRepo, registry, worldMap, players.Settings{
		Spawn:           world.Spawn,
		PresenceTimeout: cfg.PresenceTimeout,
		ChatTTL:         world.ChatTTL,
		FreeSkins:       freeSkins(world),
	}, clock)
	playersService := players.NewService(playersApp, worldMap, auth)

	// Shop
	shopRepo := shop.NewRepository(database)
	shopApp := shop.NewApp(shopRepo, playersApp)
	shopService := shop.NewService(shopApp, auth)

	// Inventory
	inventoryRepo := inventory.NewRepository(database)
	inventoryApp := inventory.NewApp(inventoryRepo, world.Items)
	inventoryService := inventory.NewService(inventoryApp, auth)

	// Chests
	rng := rand.New(rand.NewPCG(uint64(clock.Now().UnixNano()), rand.Uint64()))
	chestsApp := chests.NewApp(world.Chests, world.Items, inventoryApp, playersApp, clock, world.ChestReach, rng)
	chestsService := chests.NewService(chestsApp, auth)

	// Outbox publisher; the gateway consumes from JetStream when it is configured
	services := &Services{}
	var publisher outbox.Publisher
	var bus outbox.BusStatus
	if cfg.NatsURL != "" {
		jsCfg := outbox.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NatsURL
		js, err := outbox.NewJetStreamPublisher(ctx, jsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream publisher: %w", err)
		}
		services.publisher = js
		publisher = js
		bus = js.Conn()
	}

	// Gateway
	gatewayCfg := gateway.DefaultConfig()
	gatewayCfg.UseJetStream = cfg.NatsURL != ""
	gatewayCfg.JetStreamConfig.URL = cfg.NatsURL
	worldGateway, err := gateway.NewService(ctx, gatewayCfg, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create world gateway: %w", err)
	}
	playersApp.SetNotifier(worldGateway)
	if publisher == nil {
		publisher = outbox.Fanout(outbox.LogPublisher{}, worldGateway)
	}

	// Outbox listener
	outboxRepo := outbox.NewRepository(outboxdb.New(database))
	listenerCfg := outbox.DefaultListenerConfig()
	listenerCfg.DatabaseURL = dsn
	source, err := outbox.NewPQSource(dsn, listenerCfg.NotifyChannel)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox listener: %w", err)
	}
	listener := outbox.NewListener(outboxRepo, source, publisher, clock, listenerCfg)

	// Admin
	adminApp := admin.NewApp(accountsApp, shopApp, playersApp)
	adminPath, adminHandler := admin.NewHandler(admin.NewService(adminApp), cfg.AdminToken)
	if cfg.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN not set, admin service rejects every call")
	}

	services.Accounts = accountsService
	services.Players = playersService
	services.Shop = shopService
	services.Inventory = inventoryService
	services.Chests = chestsService
	services.Gateway = worldGateway
	services.AdminPath = adminPath
	services.AdminHandler = adminHandler
	services.OutboxHealth = outbox.NewHealthChecker(listener, outboxRepo, database, bus, clock, time.Minute)
	services.playersApp = playersApp
	services.outboxListener = listener
	return services, nil
}

// freeSkins are the catalog skins priced at zero
func freeSkins(world *worldconfig.Config) []string {
	var out []string
	for _, s := range world.Skins {
		if s.Price == 0 {
			out = append(out, s.SkinID)
		}
	}
	return out
}

// Close releases connections opened by setupServices
func (s *Services) Close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close publisher")
		}
	}
}
