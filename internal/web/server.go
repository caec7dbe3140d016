// Package web serves the listing, the cart page and a JSON view of the cart.
// Each shopper is identified by a cookie and gets a session holding their
// CartView and ItemToggles.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/format"
	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/view"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

var layout = template.Must(template.ParseFS(templateFiles, "templates/layout.html"))

// Actions hands out the cart mutations of one shopper.
type Actions interface {
	ForOwner(ownerID string) port.CartActions
}

// Toasts yields the notifications queued for a shopper.
type Toasts interface {
	Drain(audience string) []notify.Toast
}

type Options struct {
	SessionTTL   time.Duration
	AllowOrigins []string
	SecureCookie bool
}

type Server struct {
	repo     port.CartRepository
	actions  Actions
	catalog  *catalog.Catalog
	notifier notify.Notifier
	toasts   Toasts
	logger   *zap.Logger
	opts     Options

	sessions *ttlcache.Cache[string, *session]
}

func NewServer(repo port.CartRepository, actions Actions, cat *catalog.Catalog, notifier notify.Notifier, toasts Toasts, logger *zap.Logger, opts Options) (*Server, error) {
	switch {
	case repo == nil:
		return nil, errors.New("repo is nil")
	case actions == nil:
		return nil, errors.New("actions is nil")
	case cat == nil:
		return nil, errors.New("catalog is nil")
	case notifier == nil:
		return nil, errors.New("notifier is nil")
	case toasts == nil:
		return nil, errors.New("toasts is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}

	return &Server{
		repo:     repo,
		actions:  actions,
		catalog:  cat,
		notifier: notifier,
		toasts:   toasts,
		logger:   logger,
		opts:     opts,
		sessions: newSessionCache(opts),
	}, nil
}

// Run evicts idle sessions until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.sessions.Start()
	}()

	<-ctx.Done()
	s.sessions.Stop()
	<-done
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleShop)
	mux.HandleFunc("POST /products/{id}/add", s.handleProduct((*view.ItemToggle).Add))
	mux.HandleFunc("POST /products/{id}/remove", s.handleProduct((*view.ItemToggle).Remove))
	mux.HandleFunc("GET /cart", s.handleCart)
	mux.HandleFunc("POST /cart/items/{id}/increment", s.handleIncrement)
	mux.HandleFunc("POST /cart/items/{id}/decrement", s.handleDecrement)
	mux.HandleFunc("POST /cart/checkout", s.handleCheckout)
	mux.HandleFunc("GET /api/cart", s.handleAPICart)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	var h http.Handler = mux
	if len(s.opts.AllowOrigins) > 0 {
		h = corsMiddleware(s.opts.AllowOrigins, h)
	}
	return s.logRequests(h)
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionOrFail(w, r)
	if !ok {
		return
	}

	var content bytes.Buffer
	for _, product := range s.catalog.Products() {
		if err := sess.toggle(product).Render(&content); err != nil {
			s.fail(w, "render toggle", err)
			return
		}
	}

	s.page(w, sess, "Shop", content.Bytes())
}

func (s *Server) handleProduct(op func(*view.ItemToggle, context.Context) domain.ActionResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := s.productFromPath(w, r)
		if !ok {
			return
		}
		sess, ok := s.sessionOrFail(w, r)
		if !ok {
			return
		}

		op(sess.toggle(product), r.Context())

		http.Redirect(w, r, view.RouteShop, http.StatusSeeOther)
	}
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionOrFail(w, r)
	if !ok {
		return
	}

	var content bytes.Buffer
	if err := sess.cart.Render(&content); err != nil {
		s.fail(w, "render cart", err)
		return
	}

	s.page(w, sess, "Cart", content.Bytes())
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	productID, ok := idFromPath(w, r)
	if !ok {
		return
	}
	sess, ok := s.sessionOrFail(w, r)
	if !ok {
		return
	}

	item, found := s.cartLineOrProduct(sess, productID)
	if !found {
		http.NotFound(w, r)
		return
	}

	_, err := sess.cart.Increment(r.Context(), item)
	s.afterCartMutation(w, r, sess, err)
}

func (s *Server) handleDecrement(w http.ResponseWriter, r *http.Request) {
	productID, ok := idFromPath(w, r)
	if !ok {
		return
	}
	sess, ok := s.sessionOrFail(w, r)
	if !ok {
		return
	}

	_, err := sess.cart.Decrement(r.Context(), productID)
	s.afterCartMutation(w, r, sess, err)
}

func (s *Server) afterCartMutation(w http.ResponseWriter, r *http.Request, sess *session, err error) {
	if errors.Is(err, view.ErrItemPending) {
		sess.notifier.Notify(notify.Toast{Variant: notify.VariantDestructive, Description: "This item is still being updated"})
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	http.Redirect(w, r, view.RouteCart, http.StatusSeeOther)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionOrFail(w, r)
	if !ok {
		return
	}

	route, err := sess.cart.Checkout()
	if err != nil {
		sess.notifier.Notify(notify.Toast{Variant: notify.VariantDestructive, Description: "Your cart is still being updated"})
		http.Redirect(w, r, view.RouteCart, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, route, http.StatusSeeOther)
}

type apiCartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	Qty       int    `json:"qty"`
}

type apiCart struct {
	OwnerID   string        `json:"ownerId"`
	Items     []apiCartItem `json:"items"`
	ItemCount int           `json:"itemCount"`
	Subtotal  string        `json:"subtotal"`
}

func (s *Server) handleAPICart(w http.ResponseWriter, r *http.Request) {
	ownerID := s.ownerID(w, r)

	cart, err := s.repo.GetCart(r.Context(), ownerID)
	if err != nil {
		s.fail(w, "get cart", err)
		return
	}

	out := apiCart{
		OwnerID:   cart.OwnerID,
		Items:     make([]apiCartItem, 0, len(cart.Items)),
		ItemCount: cart.ItemCount(),
		Subtotal:  format.FormatCurrency(cart.ItemsPrice),
	}
	for _, item := range cart.Items {
		out.Items = append(out.Items, apiCartItem{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price.Amount.StringFixed(2),
			Currency:  item.Price.Currency.String(),
			Qty:       item.Qty,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("encode cart", zap.Error(err))
	}
}

// cartLineOrProduct prefers the cart line so the stored name and price are
// sent back unchanged.
func (s *Server) cartLineOrProduct(sess *session, productID uuid.UUID) (domain.CartItem, bool) {
	if cart, ok := sess.cart.Cart().Get(); ok {
		if line, ok := cart.Find(productID); ok {
			return line, true
		}
	}
	return s.catalog.ByID(productID)
}

func (s *Server) productFromPath(w http.ResponseWriter, r *http.Request) (domain.CartItem, bool) {
	id, ok := idFromPath(w, r)
	if !ok {
		return domain.CartItem{}, false
	}

	product, ok := s.catalog.ByID(id)
	if !ok {
		http.NotFound(w, r)
		return domain.CartItem{}, false
	}
	return product, true
}

func idFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) sessionOrFail(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.session(w, r)
	if err != nil {
		s.fail(w, "load session", err)
		return nil, false
	}
	return sess, true
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Error(what, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
