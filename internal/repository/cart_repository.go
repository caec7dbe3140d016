package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/db"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	dbCartItems, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", translatePgError(err))
	}

	items, err := mapGetCartRowsToDomain(dbCartItems)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.Cart{
		OwnerID:    ownerID,
		Items:      items,
		ItemsPrice: itemsPrice(items),
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID string, item domain.CartItem) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	qty, err := r.q.AddItem(ctx, db.AddItemParams{
		OwnerID:       ownerID,
		ProductID:     item.ProductID,
		Name:          item.Name,
		Slug:          item.Slug,
		Image:         item.Image,
		PriceAmount:   item.Price.Amount,
		PriceCurrency: item.Price.Currency.String(),
		Qty:           int32(item.Qty), //nolint:gosec
	})
	if err != nil {
		return 0, fmt.Errorf("q.AddItem: %w", translatePgError(err))
	}

	return int(qty), nil
}

type decrementOutcome struct {
	remaining int
	found     bool
}

func (r *cartRepository) DecrementItem(ctx context.Context, ownerID string, productID uuid.UUID) (int, bool, error) {
	if ownerID == "" {
		return 0, false, fmt.Errorf("ownerID is empty")
	}

	out, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (decrementOutcome, error) {
		qty, err := q.LockItemQty(ctx, db.LockItemQtyParams{OwnerID: ownerID, ProductID: productID})
		if errors.Is(err, pgx.ErrNoRows) {
			return decrementOutcome{}, nil
		}
		if err != nil {
			return decrementOutcome{}, fmt.Errorf("q.LockItemQty: %w", err)
		}

		if qty <= 1 {
			if _, err := q.DeleteItem(ctx, db.DeleteItemParams{OwnerID: ownerID, ProductID: productID}); err != nil {
				return decrementOutcome{}, fmt.Errorf("q.DeleteItem: %w", err)
			}
			return decrementOutcome{remaining: 0, found: true}, nil
		}

		left, err := q.DecrementItem(ctx, db.DecrementItemParams{OwnerID: ownerID, ProductID: productID})
		if err != nil {
			return decrementOutcome{}, fmt.Errorf("q.DecrementItem: %w", err)
		}
		return decrementOutcome{remaining: int(left), found: true}, nil
	})
	if err != nil {
		return 0, false, translatePgError(err)
	}

	return out.remaining, out.found, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteItem(ctx, db.DeleteItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteItem: %w", translatePgError(err))
	}

	return rowsAffected > 0, nil
}

// itemsPrice sums price times quantity, rounded to cents. The cart currency
// is that of its first line, USD for an empty cart.
func itemsPrice(items []domain.CartItem) domain.Money {
	if len(items) == 0 {
		return domain.ZeroMoney(currency.USD)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Amount.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	return domain.Money{Amount: total.Round(2), Currency: items[0].Price.Currency}
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartItem{
		ProductID: row.ProductID,
		Name:      row.Name,
		Slug:      row.Slug,
		Image:     row.Image,
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Qty:       int(row.Qty),
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
