// Package view holds the cart page and the add-to-cart control. Both render a
// cart they are handed and request changes through port.CartActions; neither
// mutates the cart itself.
package view

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"

	"github.com/alecthomas/atomic"
	"github.com/alecthomas/types/optional"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/format"
	"go.uber.org/zap"
)

const (
	RouteShop     = "/"
	RouteCart     = "/cart"
	RouteCheckout = "/shipping-address"
)

var (
	ErrItemPending      = errors.New("item has a cart update in flight")
	ErrMutationInFlight = errors.New("cart update in flight")
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.New("view").Funcs(template.FuncMap{
	"itemPath": itemPath,
}).ParseFS(templateFiles, "templates/*.html"))

func itemPath(productID string, action string) string {
	return "/cart/items/" + productID + "/" + action
}

func productPath(productID uuid.UUID, action string) string {
	return "/products/" + productID.String() + "/" + action
}

// Refresher re-reads the authoritative cart after a mutation settles.
type Refresher func(ctx context.Context) (optional.Option[domain.Cart], error)

type Option func(*settings)

type settings struct {
	refresh Refresher
	logger  *zap.Logger
}

func WithRefresher(r Refresher) Option {
	return func(s *settings) { s.refresh = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// cartHolder is the cart snapshot shared by a component and its parent.
type cartHolder struct {
	cart *atomic.Value[optional.Option[domain.Cart]]
	settings
}

func newCartHolder(cart optional.Option[domain.Cart], opts []Option) cartHolder {
	h := cartHolder{
		cart:     atomic.New(cart),
		settings: settings{logger: zap.NewNop()},
	}
	for _, opt := range opts {
		opt(&h.settings)
	}
	return h
}

func (h *cartHolder) Cart() optional.Option[domain.Cart] {
	return h.cart.Load()
}

// SetCart replaces the snapshot, typically after the parent re-fetched it.
func (h *cartHolder) SetCart(cart optional.Option[domain.Cart]) {
	h.cart.Store(cart)
}

func (h *cartHolder) reload(ctx context.Context) {
	if h.refresh == nil {
		return
	}

	cart, err := h.refresh(ctx)
	if err != nil {
		h.logger.Warn("cart refresh failed", zap.Error(err))
		return
	}
	h.SetCart(cart)
}

func render(w io.Writer, name string, model any) error {
	return templates.ExecuteTemplate(w, name, model)
}

func formatPrice(m domain.Money) string {
	return format.FormatCurrency(m)
}
