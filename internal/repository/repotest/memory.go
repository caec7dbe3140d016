// Package repotest provides an in-memory port.CartRepository for tests of
// the layers above the database.
package repotest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Memory struct {
	mu    sync.Mutex
	carts map[string][]domain.CartItem
	err   error
}

func NewMemory() *Memory {
	return &Memory{carts: map[string][]domain.CartItem{}}
}

// FailWith makes every following call return err, until called with nil.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}
	if m.err != nil {
		return domain.Cart{}, m.err
	}

	items := append([]domain.CartItem(nil), m.carts[ownerID]...)
	total := decimal.Zero
	unit := currency.USD
	for i, item := range items {
		if i == 0 {
			unit = item.Price.Currency
		}
		total = total.Add(item.Price.Amount.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	return domain.Cart{
		OwnerID:    ownerID,
		Items:      items,
		ItemsPrice: domain.Money{Amount: total.Round(2), Currency: unit},
	}, nil
}

func (m *Memory) AddItem(_ context.Context, ownerID string, item domain.CartItem) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}
	if m.err != nil {
		return 0, m.err
	}

	items := m.carts[ownerID]
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Qty += item.Qty
			return items[i].Qty, nil
		}
	}
	m.carts[ownerID] = append(items, item)
	return item.Qty, nil
}

func (m *Memory) DecrementItem(_ context.Context, ownerID string, productID uuid.UUID) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ownerID == "" {
		return 0, false, fmt.Errorf("ownerID is empty")
	}
	if m.err != nil {
		return 0, false, m.err
	}

	items := m.carts[ownerID]
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if items[i].Qty <= 1 {
			m.carts[ownerID] = append(items[:i:i], items[i+1:]...)
			return 0, true, nil
		}
		items[i].Qty--
		return items[i].Qty, true, nil
	}
	return 0, false, nil
}

func (m *Memory) DeleteItem(_ context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if m.err != nil {
		return false, m.err
	}

	items := m.carts[ownerID]
	for i := range items {
		if items[i].ProductID == productID {
			m.carts[ownerID] = append(items[:i:i], items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
