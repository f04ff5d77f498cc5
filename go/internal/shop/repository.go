package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/shop/db"
	"github.com/mcdev12/overworld/go/internal/sqlutil"
)

// Repository handles prices and purchases. Purchases debit the balance,
// record ownership and write the outbox event in one transaction.
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new shop repository
func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

// ListSkinPrices returns every skin with its price
func (r *Repository) ListSkinPrices(ctx context.Context) ([]models.SkinPrice, error) {
	rows, err := r.queries.ListSkinPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list skin prices: %w", err)
	}
	prices := make([]models.SkinPrice, len(rows))
	for i, row := range rows {
		prices[i] = models.SkinPrice{SkinID: row.SkinID, Price: row.Price}
	}
	return prices, nil
}

// ListHousePrices returns every house with its price
func (r *Repository) ListHousePrices(ctx context.Context) ([]models.HousePrice, error) {
	rows, err := r.queries.ListHousePrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list house prices: %w", err)
	}
	prices := make([]models.HousePrice, len(rows))
	for i, row := range rows {
		prices[i] = models.HousePrice{HouseID: row.HouseID, Price: row.Price}
	}
	return prices, nil
}

// SetSkinPrice creates or reprices a skin
func (r *Repository) SetSkinPrice(ctx context.Context, p models.SkinPrice) error {
	if err := r.queries.UpsertSkinPrice(ctx, db.UpsertSkinPriceParams{SkinID: p.SkinID, Price: p.Price}); err != nil {
		return fmt.Errorf("failed to set skin price: %w", err)
	}
	return nil
}

// SetHousePrice creates or reprices a house
func (r *Repository) SetHousePrice(ctx context.Context, p models.HousePrice) error {
	if err := r.queries.UpsertHousePrice(ctx, db.UpsertHousePriceParams{HouseID: p.HouseID, Price: p.Price}); err != nil {
		return fmt.Errorf("failed to set house price: %w", err)
	}
	return nil
}

// BuySkin charges for a skin and equips it. A skin the account already
// owns is equipped without charge and without an event.
func (r *Repository) BuySkin(ctx context.Context, accountID uuid.UUID, skinID string) (*SkinPurchase, error) {
	var out *SkinPurchase
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		var err error
		out, err = buySkin(ctx, q, accountID, skinID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BuyHouse charges for a house. Houses can be bought once.
func (r *Repository) BuyHouse(ctx context.Context, accountID uuid.UUID, houseID string) (*HousePurchase, error) {
	var out *HousePurchase
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		var err error
		out, err = buyHouse(ctx, q, accountID, houseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// buySkin runs inside a transaction. The account row is locked before the
// ownership check so concurrent purchases of one account run one at a time.
func buySkin(ctx context.Context, q db.Querier, accountID uuid.UUID, skinID string) (*SkinPurchase, error) {
	price, err := q.GetSkinPrice(ctx, skinID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownSkin
		}
		return nil, fmt.Errorf("failed to get skin price: %w", err)
	}
	out := &SkinPurchase{SkinID: skinID, Price: price}

	out.Balance, err = lockAccount(ctx, q, accountID)
	if err != nil {
		return nil, err
	}

	owned, err := q.OwnsSkin(ctx, db.OwnsSkinParams{AccountID: accountID, SkinID: skinID})
	if err != nil {
		return nil, fmt.Errorf("failed to check skin ownership: %w", err)
	}

	if owned {
		out.AlreadyOwned = true
	} else {
		out.Balance, err = debit(ctx, q, accountID, price)
		if err != nil {
			return nil, err
		}
		n, err := q.InsertOwnedSkin(ctx, db.InsertOwnedSkinParams{AccountID: accountID, SkinID: skinID})
		if err != nil {
			return nil, fmt.Errorf("failed to record skin: %w", err)
		}
		if n == 0 {
			// recorded by a writer that did not hold the account lock; roll back the debit
			return nil, ErrAlreadyOwned
		}
		evt, err := events.New(events.SkinPurchased, accountID, events.SkinPurchasedPayload{
			AccountID:  accountID.String(),
			SkinID:     skinID,
			Price:      price,
			NewBalance: out.Balance,
		})
		if err != nil {
			return nil, err
		}
		if err := insertEvent(ctx, q, evt); err != nil {
			return nil, err
		}
	}

	if err := q.EquipSkin(ctx, db.EquipSkinParams{ID: accountID, SkinID: skinID}); err != nil {
		return nil, fmt.Errorf("failed to equip skin: %w", err)
	}
	return out, nil
}

func buyHouse(ctx context.Context, q db.Querier, accountID uuid.UUID, houseID string) (*HousePurchase, error) {
	price, err := q.GetHousePrice(ctx, houseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownHouse
		}
		return nil, fmt.Errorf("failed to get house price: %w", err)
	}
	out := &HousePurchase{HouseID: houseID, Price: price}

	if _, err := lockAccount(ctx, q, accountID); err != nil {
		return nil, err
	}

	owned, err := q.OwnsHouse(ctx, db.OwnsHouseParams{AccountID: accountID, HouseID: houseID})
	if err != nil {
		return nil, fmt.Errorf("failed to check house ownership: %w", err)
	}
	if owned {
		return nil, ErrAlreadyOwned
	}

	out.Balance, err = debit(ctx, q, accountID, price)
	if err != nil {
		return nil, err
	}

	n, err := q.InsertOwnedHouse(ctx, db.InsertOwnedHouseParams{
		AccountID: accountID,
		HouseID:   houseID,
		PricePaid: price,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record house: %w", err)
	}
	if n == 0 {
		return nil, ErrAlreadyOwned
	}

	evt, err := events.New(events.HousePurchased, accountID, events.HousePurchasedPayload{
		AccountID:  accountID.String(),
		HouseID:    houseID,
		Price:      price,
		NewBalance: out.Balance,
	})
	if err != nil {
		return nil, err
	}
	if err := insertEvent(ctx, q, evt); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance returns the current balance of an account
func (r *Repository) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	balance, err := r.queries.GetBalance(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func lockAccount(ctx context.Context, q db.Querier, accountID uuid.UUID) (int64, error) {
	balance, err := q.LockAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to lock account: %w", err)
	}
	return balance, nil
}

func debit(ctx context.Context, q db.Querier, accountID uuid.UUID, amount int64) (int64, error) {
	balance, err := q.DebitBalance(ctx, db.DebitBalanceParams{Amount: amount, ID: accountID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInsufficientFunds
		}
		return 0, fmt.Errorf("failed to debit balance: %w", err)
	}
	return balance, nil
}

func insertEvent(ctx context.Context, q db.Querier, evt events.Event) error {
	err := q.InsertWorldEvent(ctx, db.InsertWorldEventParams{
		ID:          evt.ID,
		AggregateID: evt.AggregateID,
		EventType:   string(evt.Type),
		Payload:     evt.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", evt.Type, err)
	}
	return nil
}
