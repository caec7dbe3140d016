package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	OwnerID string
	Items   []CartItem

	// ItemsPrice is computed by the cart owner, never by the views.
	ItemsPrice Money
}

type CartItem struct {
	ProductID uuid.UUID
	Name      string
	Slug      string
	Image     string
	Price     Money
	Qty       int

	CreatedAt time.Time
}

// Find returns the line item for productID, if the cart holds one.
func (c Cart) Find(productID uuid.UUID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// ItemCount is the sum of quantities across all line items.
func (c Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Qty
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Validate checks the fields a cart mutation relies on.
func (i CartItem) Validate() error {
	var verr ValidationError

	if i.ProductID == uuid.Nil {
		verr.Add("productId", "Product is required")
	}
	if i.Name == "" {
		verr.Add("name", "Name is required")
	}
	if i.Slug == "" {
		verr.Add("slug", "Slug is required")
	}
	if i.Price.Amount.LessThan(decimal.Zero) {
		verr.Add("price", "Price must not be negative")
	}
	if i.Qty <= 0 {
		verr.Add("qty", "Quantity must be positive")
	}

	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}
