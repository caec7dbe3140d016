package view_test

import (
	"context"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (n *recordingNotifier) Notify(t notify.Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, t)
}

func (n *recordingNotifier) Toasts() []notify.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Toast(nil), n.toasts...)
}

type call struct {
	op        string
	productID uuid.UUID
}

// stubActions answers with result. When gates holds a channel for a product,
// the call blocks until that channel is closed.
type stubActions struct {
	mu      sync.Mutex
	result  domain.ActionResult
	calls   []call
	gates   map[uuid.UUID]chan struct{}
	entered chan uuid.UUID
}

func newStubActions(result domain.ActionResult) *stubActions {
	return &stubActions{
		result:  result,
		gates:   map[uuid.UUID]chan struct{}{},
		entered: make(chan uuid.UUID, 16),
	}
}

func (s *stubActions) gate(productID uuid.UUID) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.gates[productID] = ch
	return ch
}

func (s *stubActions) record(op string, productID uuid.UUID) domain.ActionResult {
	s.mu.Lock()
	s.calls = append(s.calls, call{op: op, productID: productID})
	gate := s.gates[productID]
	res := s.result
	s.mu.Unlock()

	s.entered <- productID
	if gate != nil {
		<-gate
	}
	return res
}

func (s *stubActions) Calls() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]call(nil), s.calls...)
}

func (s *stubActions) AddItemToCart(_ context.Context, item domain.CartItem) domain.ActionResult {
	return s.record("add", item.ProductID)
}

func (s *stubActions) RemoveItemFromCart(_ context.Context, productID uuid.UUID) domain.ActionResult {
	return s.record("remove", productID)
}

func newItem(price string, qty int) domain.CartItem {
	return domain.CartItem{
		ProductID: uuid.MustParse(gofakeit.UUID()),
		Name:      gofakeit.ProductName(),
		Slug:      gofakeit.Word(),
		Image:     "/images/" + gofakeit.Word() + ".jpg",
		Price:     domain.Money{Amount: decimal.RequireFromString(price), Currency: currency.USD},
		Qty:       qty,
	}
}

func newCart(items ...domain.CartItem) domain.Cart {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Amount.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return domain.Cart{
		OwnerID:    gofakeit.UUID(),
		Items:      items,
		ItemsPrice: domain.Money{Amount: total, Currency: currency.USD},
	}
}
