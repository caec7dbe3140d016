package view

import (
	"context"
	"io"

	"github.com/alecthomas/types/optional"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/format"
	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/nikolayk812/storefront-cart/internal/pending"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
)

// CartView is the cart page: line items with quantity steppers, the subtotal
// and the checkout action. Each line tracks its own in-flight update.
type CartView struct {
	cartHolder

	actions  port.CartActions
	notifier notify.Notifier
	pending  *pending.Tracker[uuid.UUID]
}

func NewCartView(cart optional.Option[domain.Cart], actions port.CartActions, notifier notify.Notifier, opts ...Option) *CartView {
	return &CartView{
		cartHolder: newCartHolder(cart, opts),
		actions:    actions,
		notifier:   notifier,
		pending:    pending.New[uuid.UUID](),
	}
}

// Increment adds one unit of item. It returns ErrItemPending while another
// update of the same product is in flight.
func (v *CartView) Increment(ctx context.Context, item domain.CartItem) (domain.ActionResult, error) {
	return v.mutate(ctx, item.ProductID, func(ctx context.Context) domain.ActionResult {
		return v.actions.AddItemToCart(ctx, item)
	})
}

// Decrement removes one unit of the product.
func (v *CartView) Decrement(ctx context.Context, productID uuid.UUID) (domain.ActionResult, error) {
	return v.mutate(ctx, productID, func(ctx context.Context) domain.ActionResult {
		return v.actions.RemoveItemFromCart(ctx, productID)
	})
}

func (v *CartView) mutate(ctx context.Context, productID uuid.UUID, op func(context.Context) domain.ActionResult) (domain.ActionResult, error) {
	if !v.pending.Begin(productID) {
		return domain.ActionResult{}, ErrItemPending
	}
	defer v.pending.Settle(productID)

	res := op(ctx)
	if !res.Success {
		v.logger.Info("cart update failed",
			zap.String("product_id", productID.String()),
			zap.String("message", res.Message))
		v.notifier.Notify(notify.Toast{Variant: notify.VariantDestructive, Description: res.Message})
	}

	v.reload(ctx)
	return res, nil
}

// IsPending reports whether productID has an update in flight.
func (v *CartView) IsPending(productID uuid.UUID) bool {
	return v.pending.IsPending(productID)
}

// Busy reports whether any line has an update in flight.
func (v *CartView) Busy() bool {
	return v.pending.Any()
}

// Checkout returns the route to continue to, or ErrMutationInFlight while
// any line is still being updated.
func (v *CartView) Checkout() (string, error) {
	if v.Busy() {
		return "", ErrMutationInFlight
	}
	return RouteCheckout, nil
}

type CartRow struct {
	ProductID string
	Name      string
	Href      string
	Image     string
	Qty       int
	Price     string
	Pending   bool
}

type CartModel struct {
	Busy             bool
	Empty            bool
	Rows             []CartRow
	ItemCount        int
	Subtotal         string
	CheckoutDisabled bool
	ShopRoute        string
}

func (v *CartView) Model() CartModel {
	busy := v.Busy()
	model := CartModel{
		Busy:             busy,
		Empty:            true,
		CheckoutDisabled: busy,
		ShopRoute:        RouteShop,
	}

	cart, ok := v.Cart().Get()
	if !ok || cart.IsEmpty() {
		return model
	}

	model.Empty = false
	model.ItemCount = cart.ItemCount()
	model.Subtotal = format.FormatCurrency(cart.ItemsPrice)
	for _, item := range cart.Items {
		model.Rows = append(model.Rows, CartRow{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Href:      "/product/" + item.Slug,
			Image:     item.Image,
			Qty:       item.Qty,
			Price:     formatPrice(item.Price),
			Pending:   v.pending.IsPending(item.ProductID),
		})
	}

	return model
}

func (v *CartView) Render(w io.Writer) error {
	return render(w, "cart.html", v.Model())
}
