package view

import (
	"context"
	"io"

	"github.com/alecthomas/atomic"
	"github.com/alecthomas/types/optional"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
)

var goToCart = notify.Action{Label: "Go To Cart", Href: RouteCart}

// ItemToggle is the add-to-cart control for a single product. It shows one
// product only, so a single in-flight counter is enough.
type ItemToggle struct {
	cartHolder

	item     domain.CartItem
	actions  port.CartActions
	notifier notify.Notifier
	inFlight atomic.Int32
}

func NewItemToggle(cart optional.Option[domain.Cart], item domain.CartItem, actions port.CartActions, notifier notify.Notifier, opts ...Option) *ItemToggle {
	return &ItemToggle{
		cartHolder: newCartHolder(cart, opts),
		item:       item,
		actions:    actions,
		notifier:   notifier,
	}
}

func (t *ItemToggle) Item() domain.CartItem {
	return t.item
}

// Existing returns the cart line for this product, if there is one.
func (t *ItemToggle) Existing() (domain.CartItem, bool) {
	cart, ok := t.Cart().Get()
	if !ok {
		return domain.CartItem{}, false
	}
	return cart.Find(t.item.ProductID)
}

func (t *ItemToggle) Pending() bool {
	return t.inFlight.Load() > 0
}

func (t *ItemToggle) Add(ctx context.Context) domain.ActionResult {
	t.inFlight.Add(1)
	defer t.inFlight.Add(-1)

	res := t.actions.AddItemToCart(ctx, t.item)
	if !res.Success {
		t.notifier.Notify(notify.Toast{Variant: notify.VariantDestructive, Description: res.Message})
	} else {
		t.notifier.Notify(notify.Toast{Description: res.Message, Action: optional.Some(goToCart)})
	}
	t.logger.Debug("add to cart settled",
		zap.String("product_id", t.item.ProductID.String()),
		zap.Bool("success", res.Success))

	t.reload(ctx)
	return res
}

func (t *ItemToggle) Remove(ctx context.Context) domain.ActionResult {
	t.inFlight.Add(1)
	defer t.inFlight.Add(-1)

	res := t.actions.RemoveItemFromCart(ctx, t.item.ProductID)
	t.notifier.Notify(notify.ResultToast(res.Success, res.Message))
	t.logger.Debug("remove from cart settled",
		zap.String("product_id", t.item.ProductID.String()),
		zap.Bool("success", res.Success))

	t.reload(ctx)
	return res
}

type ToggleModel struct {
	Name       string
	Price      string
	InCart     bool
	Qty        int
	Pending    bool
	AddPath    string
	RemovePath string
}

func (t *ItemToggle) Model() ToggleModel {
	model := ToggleModel{
		Name:       t.item.Name,
		Price:      formatPrice(t.item.Price),
		Pending:    t.Pending(),
		AddPath:    productPath(t.item.ProductID, "add"),
		RemovePath: productPath(t.item.ProductID, "remove"),
	}
	if existing, ok := t.Existing(); ok {
		model.InCart = true
		model.Qty = existing.Qty
	}
	return model
}

func (t *ItemToggle) Render(w io.Writer) error {
	return render(w, "toggle.html", t.Model())
}
