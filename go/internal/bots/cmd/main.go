// Command bots runs a swarm of headless players against a server.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/clients"
	"github.com/mcdev12/overworld/go/clients/worldclient"
	"github.com/mcdev12/overworld/go/internal/bots"
	"github.com/mcdev12/overworld/go/internal/tilemap"
	"github.com/remeh/sizedwaitgroup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	server := flag.String("server", "http://localhost:8080", "server base URL")
	count := flag.Int("n", 10, "number of bots")
	parallel := flag.Int("parallel", 4, "bots logging in at once")
	poll := flag.Duration("poll", worldclient.DefaultPollInterval, "poll interval")
	step := flag.Duration("step", 50*time.Millisecond, "movement tick")
	speed := flag.Float64("speed", bots.DefaultSpeed, "pixels per movement tick")
	chatOdds := flag.Int("chat-odds", 400, "1 in N movement ticks chat (0 disables)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mapResp, err := worldclient.NewClient(*server).Map(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch map")
	}
	world, err := tilemap.FromTiles(mapResp.Tiles)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load map")
	}

	clock := clockwork.NewRealClock()
	swg := sizedwaitgroup.New(*parallel)

	for i := range *count {
		if err := swg.AddWithContext(ctx); err != nil {
			break
		}
		go func() {
			defer swg.Done()
			bot, poller, err := login(ctx, *server, i, world, clock, *poll, *speed, *chatOdds)
			if err != nil {
				log.Error().Err(err).Int("bot", i).Msg("bot failed to join")
				return
			}
			log.Info().Str("bot", bot.Name).Msg("bot joined")
			go poller.Run(ctx)
			go bot.Walk(ctx, clock, *step)
		}()
	}
	swg.Wait()

	<-ctx.Done()
	log.Info().Msg("bots shutting down")
}

func login(ctx context.Context, server string, i int, world *tilemap.Map, clock clockwork.Clock, poll time.Duration, speed float64, chatOdds int) (*bots.Bot, *worldclient.Poller, error) {
	name := fmt.Sprintf("bot-%d", i)
	client := worldclient.NewClient(server)

	account, err := client.Login(ctx, clients.DevTokenPrefix+name+"@overworld.local")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to log in %s: %w", name, err)
	}

	rng := rand.New(rand.NewPCG(uint64(i), uint64(time.Now().UnixNano())))
	start, ok := world.RandomWalkable(rng)
	if !ok {
		start = world.Center()
	}

	poller := worldclient.NewPoller(client, clock, poll, start, account.SkinID)
	return bots.New(name, poller, world, rng, speed, chatOdds), poller, nil
}
