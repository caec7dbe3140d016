// Package actions implements the cart mutations the views call: add one unit
// of a product, remove one unit. Failures are reported in the result, never
// returned as errors.
package actions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/format"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
)

const msgItemNotFound = "Item not found in cart"

type Service struct {
	repo   port.CartRepository
	logger *zap.Logger
}

func NewService(repo port.CartRepository, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{repo: repo, logger: logger}, nil
}

// ForOwner binds the mutations to one cart owner.
func (s *Service) ForOwner(ownerID string) port.CartActions {
	return &ownerActions{
		svc:     s,
		ownerID: ownerID,
		logger:  s.logger.With(zap.String("owner_id", ownerID)),
	}
}

type ownerActions struct {
	svc     *Service
	ownerID string
	logger  *zap.Logger
}

func (a *ownerActions) AddItemToCart(ctx context.Context, item domain.CartItem) domain.ActionResult {
	logger := a.logger.With(zap.String("product_id", item.ProductID.String()))

	if err := item.Validate(); err != nil {
		logger.Info("rejected cart item", zap.Error(err))
		return domain.Failed(format.FormatError(err))
	}

	cart, err := a.svc.repo.GetCart(ctx, a.ownerID)
	if err != nil {
		logger.Error("loading cart failed", zap.Error(err))
		return domain.Failed(format.FormatError(err))
	}

	// A product already in the cart grows by one unit; a new one is added
	// with the quantity it was offered with.
	line := item
	_, exists := cart.Find(item.ProductID)
	if exists {
		line.Qty = 1
	}

	qty, err := a.svc.repo.AddItem(ctx, a.ownerID, line)
	if err != nil {
		logger.Error("adding item failed", zap.Error(err))
		return domain.Failed(format.FormatError(err))
	}

	logger.Info("added item", zap.Int("quantity", qty))
	if exists {
		return domain.Succeeded(fmt.Sprintf("%s updated in cart", item.Name))
	}
	return domain.Succeeded(fmt.Sprintf("%s added to cart", item.Name))
}

func (a *ownerActions) RemoveItemFromCart(ctx context.Context, productID uuid.UUID) domain.ActionResult {
	logger := a.logger.With(zap.String("product_id", productID.String()))

	cart, err := a.svc.repo.GetCart(ctx, a.ownerID)
	if err != nil {
		logger.Error("loading cart failed", zap.Error(err))
		return domain.Failed(format.FormatError(err))
	}

	item, ok := cart.Find(productID)
	if !ok {
		return domain.Failed(msgItemNotFound)
	}

	remaining, found, err := a.svc.repo.DecrementItem(ctx, a.ownerID, productID)
	if err != nil {
		logger.Error("removing item failed", zap.Error(err))
		return domain.Failed(format.FormatError(err))
	}
	if !found {
		return domain.Failed(msgItemNotFound)
	}

	logger.Info("removed item", zap.Int("remaining", remaining))
	return domain.Succeeded(fmt.Sprintf("%s removed from cart", item.Name))
}
