// Command admin calls the AdminService of a running overworld server.
//
//	admin grant <account-id> <amount>
//	admin skin-price <skin-id> <price>
//	admin house-price <house-id> <price>
//	admin online
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mcdev12/overworld/go/internal/admin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	server := flag.String("server", getEnv("OVERWORLD_URL", "http://localhost:8080"), "server base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: admin [flags] grant|skin-price|house-price|online [args]")
		flag.PrintDefaults()
	}
	flag.Parse()

	token := os.Getenv("ADMIN_TOKEN")
	if token == "" {
		log.Fatal().Msg("ADMIN_TOKEN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := admin.NewClient(http.DefaultClient, *server, token)
	if err := run(ctx, client, flag.Args()); err != nil {
		log.Fatal().Err(err).Msg("admin call failed")
	}
}

func run(ctx context.Context, client *admin.Client, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "grant":
		if len(args) != 3 {
			return fmt.Errorf("usage: grant <account-id> <amount>")
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		balance, err := client.GrantMoney(ctx, id, amount)
		if err != nil {
			return err
		}
		fmt.Printf("new balance: %d\n", balance)

	case "skin-price", "house-price":
		if len(args) != 3 {
			return fmt.Errorf("usage: %s <id> <price>", args[0])
		}
		price, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		if args[0] == "skin-price" {
			err = client.SetSkinPrice(ctx, args[1], price)
		} else {
			err = client.SetHousePrice(ctx, args[1], price)
		}
		if err != nil {
			return err
		}
		fmt.Println("ok")

	case "online":
		resp, err := client.ListOnline(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d online\n", resp.Count)
		for _, p := range resp.Players {
			fmt.Printf("%s\t%s\t(%.0f, %.0f)\tskin %s\n", p.AccountID, p.Name, p.Position.X, p.Position.Y, p.SkinID)
		}

	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
