package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// AddItem merges item into the owner's cart and returns the resulting quantity.
	AddItem(ctx context.Context, ownerID string, item domain.CartItem) (int, error)
	// DecrementItem lowers the quantity by one, deleting the line at zero.
	DecrementItem(ctx context.Context, ownerID string, productID uuid.UUID) (remaining int, found bool, err error)
	DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error)
}

// CartActions are the cart mutations available to the views, already bound
// to a cart owner.
type CartActions interface {
	AddItemToCart(ctx context.Context, item domain.CartItem) domain.ActionResult
	RemoveItemFromCart(ctx context.Context, productID uuid.UUID) domain.ActionResult
}
