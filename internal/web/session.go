package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/alecthomas/types/optional"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/view"
	"go.uber.org/zap"
)

const ownerCookie = "cart_owner"

// session is one shopper's view state. Concurrent requests from the same
// shopper share it, so an update in flight in one request shows as pending
// in another.
type session struct {
	ownerID  string
	actions  port.CartActions
	notifier notify.Notifier
	refresh  view.Refresher
	logger   *zap.Logger

	cart *view.CartView

	mu      sync.Mutex
	toggles map[uuid.UUID]*view.ItemToggle
}

func (s *Server) newSession(ownerID string) *session {
	logger := s.logger.With(zap.String("owner_id", ownerID))
	refresh := func(ctx context.Context) (optional.Option[domain.Cart], error) {
		return s.loadCart(ctx, ownerID)
	}

	sess := &session{
		ownerID:  ownerID,
		actions:  s.actions.ForOwner(ownerID),
		notifier: notify.For(s.notifier, ownerID),
		refresh:  refresh,
		logger:   logger,
		toggles:  map[uuid.UUID]*view.ItemToggle{},
	}
	sess.cart = view.NewCartView(optional.None[domain.Cart](), sess.actions, sess.notifier,
		view.WithRefresher(refresh), view.WithLogger(logger))

	return sess
}

// toggle returns the add-to-cart control for product, creating it on first use.
func (sess *session) toggle(product domain.CartItem) *view.ItemToggle {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	t, ok := sess.toggles[product.ProductID]
	if !ok {
		t = view.NewItemToggle(sess.cart.Cart(), product, sess.actions, sess.notifier,
			view.WithRefresher(sess.refresh), view.WithLogger(sess.logger))
		sess.toggles[product.ProductID] = t
	}
	return t
}

// sync hands a freshly loaded cart to every component of the session.
func (sess *session) sync(cart optional.Option[domain.Cart]) {
	sess.cart.SetCart(cart)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	for _, t := range sess.toggles {
		t.SetCart(cart)
	}
}

func (s *Server) loadCart(ctx context.Context, ownerID string) (optional.Option[domain.Cart], error) {
	cart, err := s.repo.GetCart(ctx, ownerID)
	if err != nil {
		return optional.None[domain.Cart](), fmt.Errorf("repo.GetCart: %w", err)
	}
	return optional.Some(cart), nil
}

// session resolves the shopper from the owner cookie, issuing one if needed,
// and loads their current cart into the session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, error) {
	ownerID := s.ownerID(w, r)

	var sess *session
	if item := s.sessions.Get(ownerID); item != nil {
		sess = item.Value()
	} else {
		item, _ := s.sessions.GetOrSet(ownerID, s.newSession(ownerID))
		sess = item.Value()
	}

	cart, err := s.loadCart(r.Context(), ownerID)
	if err != nil {
		return nil, err
	}
	sess.sync(cart)

	return sess, nil
}

func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ownerCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     ownerCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60 * 60 * 24 * 30,
	})
	// later lookups within this request see the new owner
	r.AddCookie(&http.Cookie{Name: ownerCookie, Value: id})

	return id
}

func newSessionCache(opts Options) *ttlcache.Cache[string, *session] {
	return ttlcache.New[string, *session](
		ttlcache.WithTTL[string, *session](opts.SessionTTL),
	)
}
