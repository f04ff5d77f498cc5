package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mcdev12/overworld/go/internal/dbconfig"
	"github.com/mcdev12/overworld/go/internal/worldconfig"
)

const (
	upsertSkin = `
        INSERT INTO skin_prices (skin_id, price) VALUES ($1, $2)
        ON CONFLICT (skin_id) DO UPDATE SET price = EXCLUDED.price
        WHERE skin_prices.price <> EXCLUDED.price
    `
	upsertHouse = `
        INSERT INTO house_prices (house_id, price) VALUES ($1, $2)
        ON CONFLICT (house_id) DO UPDATE SET price = EXCLUDED.price
        WHERE house_prices.price <> EXCLUDED.price
    `
)

func main() {
	path := flag.String("config", "config/world.yaml", "world config to seed from")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	// 1) Load the catalog
	world, err := worldconfig.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load world config: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Upsert in one batch
	batch := &pgx.Batch{}
	for _, s := range world.Skins {
		batch.Queue(upsertSkin, s.SkinID, s.Price)
	}
	for _, h := range world.Houses {
		batch.Queue(upsertHouse, h.HouseID, h.Price)
	}

	var (
		total   = batch.Len()
		changed int
		same    int
		errs    int
	)

	results := pool.SendBatch(ctx, batch)
	for i := 0; i < total; i++ {
		tag, err := results.Exec()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error upserting row %d: %v\n", i, err)
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			changed++
		} else {
			same++
		}
	}
	if err := results.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close batch: %v\n", err)
		errs++
	}

	// 4) Print summary
	fmt.Printf(
		"Catalog seed complete: %d skins, %d houses, %d written, %d unchanged, %d errors\n",
		len(world.Skins), len(world.Houses), changed, same, errs,
	)
	if errs > 0 {
		os.Exit(1)
	}
}
