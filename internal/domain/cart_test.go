package domain_test

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestCart_ItemCount(t *testing.T) {
	tests := []struct {
		name string
		qtys []int
		want int
	}{
		{name: "empty cart", qtys: nil, want: 0},
		{name: "single item", qtys: []int{3}, want: 3},
		{name: "several items", qtys: []int{1, 2, 5}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cart domain.Cart
			for _, q := range tt.qtys {
				cart.Items = append(cart.Items, domain.CartItem{ProductID: uuid.New(), Qty: q})
			}
			assert.Equal(t, tt.want, cart.ItemCount())
		})
	}
}

func TestCart_Find(t *testing.T) {
	item := validItem()
	cart := domain.Cart{Items: []domain.CartItem{validItem(), item}}

	found, ok := cart.Find(item.ProductID)
	require.True(t, ok)
	assert.Equal(t, item.Name, found.Name)

	_, ok = cart.Find(uuid.New())
	assert.False(t, ok)
}

func TestCartItem_Validate(t *testing.T) {
	require.NoError(t, validItem().Validate())

	err := domain.CartItem{Price: domain.Money{Amount: decimal.NewFromInt(-1), Currency: currency.USD}}.Validate()

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"productId", "name", "slug", "price", "qty"}, fields)
}

func validItem() domain.CartItem {
	return domain.CartItem{
		ProductID: uuid.MustParse(gofakeit.UUID()),
		Name:      gofakeit.ProductName(),
		Slug:      gofakeit.Word(),
		Image:     gofakeit.URL(),
		Price:     domain.Money{Amount: decimal.NewFromFloat(gofakeit.Price(1, 100)), Currency: currency.USD},
		Qty:       1,
	}
}
