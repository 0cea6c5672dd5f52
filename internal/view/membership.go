// Package view derives read-only membership state straight from storage.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/broadcast"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
)

// Flags is the per-product state shown on product grids.
type Flags struct {
	InCart       bool `json:"in_cart"`
	CartQuantity int  `json:"cart_quantity"`
	InWishlist   bool `json:"in_wishlist"`
}

// Snapshot is the badge-level summary of a shopper's collections.
type Snapshot struct {
	ShopperID     string           `json:"shopper_id"`
	CartItems     int              `json:"cart_items"`
	CartTotal     float64          `json:"cart_total"`
	WishlistCount int              `json:"wishlist_count"`
	Products      map[string]Flags `json:"products,omitempty"`
}

// Membership is a best-effort view of one shopper's cart and wishlist. It
// never writes; it re-reads storage whenever Refresh runs.
type Membership struct {
	storage   storage.Storage
	shopperID string
	logger    *slog.Logger

	mu       sync.RWMutex
	cart     domain.CartItems
	wishlist domain.WishlistItems
}

// NewMembership creates an empty view. Call Refresh to populate it.
func NewMembership(st storage.Storage, shopperID string, logger *slog.Logger) *Membership {
	return &Membership{
		storage:   st,
		shopperID: shopperID,
		logger:    logger,
	}
}

// Refresh re-reads both collections. Corrupt values read as empty.
func (m *Membership) Refresh(ctx context.Context) error {
	var cart domain.CartItems
	if err := m.read(ctx, domain.CollectionCart, &cart); err != nil {
		return err
	}
	var wishlist domain.WishlistItems
	if err := m.read(ctx, domain.CollectionWishlist, &wishlist); err != nil {
		return err
	}

	m.mu.Lock()
	m.cart = cart
	m.wishlist = wishlist
	m.mu.Unlock()
	return nil
}

func (m *Membership) read(ctx context.Context, c domain.Collection, target any) error {
	key := storage.CollectionKey(m.shopperID, c)
	raw, err := m.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", c, err)
	}
	if err := domain.DecodeCollection(raw, target); err != nil {
		m.logger.WarnContext(ctx, "ignoring corrupt collection in view",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// InCart reports whether the product has a cart line.
func (m *Membership) InCart(productID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart.IndexOf(productID) >= 0
}

// InWishlist reports whether the product is saved.
func (m *Membership) InWishlist(productID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wishlist.IndexOf(productID) >= 0
}

// Snapshot returns the current counts plus flags for the given products.
func (m *Membership) Snapshot(productIDs ...string) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		ShopperID:     m.shopperID,
		CartItems:     m.cart.TotalItems(),
		CartTotal:     m.cart.TotalPrice(),
		WishlistCount: len(m.wishlist),
	}
	if len(productIDs) == 0 {
		return snap
	}

	snap.Products = make(map[string]Flags, len(productIDs))
	for _, id := range productIDs {
		var f Flags
		if i := m.cart.IndexOf(id); i >= 0 {
			f.InCart = true
			f.CartQuantity = m.cart[i].Quantity
		}
		f.InWishlist = m.wishlist.IndexOf(id) >= 0
		snap.Products[id] = f
	}
	return snap
}

// Watch refreshes the view on every signal from sub and passes the new
// snapshot to onChange. It returns when ctx is done. Refresh failures are
// logged and the previous state is kept.
func (m *Membership) Watch(ctx context.Context, sub *broadcast.Subscription, onChange func(Snapshot) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.C():
			if err := m.Refresh(ctx); err != nil {
				m.logger.WarnContext(ctx, "membership refresh failed",
					slog.String("shopper_id", m.shopperID),
					slog.String("error", err.Error()),
				)
				continue
			}
			if err := onChange(m.Snapshot()); err != nil {
				return err
			}
		}
	}
}
