package store

import (
	"context"
	"log/slog"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
)

// WishlistStore owns one shopper's saved products with set semantics.
type WishlistStore struct {
	base
	items domain.WishlistItems
}

// NewWishlist creates a wishlist store. It starts hydrating; call Hydrate before use.
func NewWishlist(opts Options) *WishlistStore {
	return &WishlistStore{
		base:  newBase(opts, domain.CollectionWishlist),
		items: domain.WishlistItems{},
	}
}

// Hydrate loads the stored wishlist. A missing or corrupt value yields an
// empty wishlist; only a storage read failure is returned.
func (s *WishlistStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items domain.WishlistItems
	err := s.load(ctx, &items)

	s.items = make(domain.WishlistItems, 0, len(items))
	for _, item := range items {
		if s.items.IndexOf(item.ID) < 0 {
			s.items = append(s.items, item)
		}
	}
	return err
}

// AddToWishlist saves item unless its id is already present. Duplicates
// neither persist nor broadcast.
func (s *WishlistStore) AddToWishlist(ctx context.Context, item domain.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items.IndexOf(item.ID) >= 0 {
		return nil
	}
	s.items = append(s.items, item.Clone())
	return s.persist(ctx, "add", s.items)
}

// RemoveFromWishlist removes the product if present.
func (s *WishlistStore) RemoveFromWishlist(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
	return s.persist(ctx, "remove", s.items)
}

func (s *WishlistStore) remove(productID string) {
	if i := s.items.IndexOf(productID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// ToggleWishlist removes item if present, otherwise adds it. It returns
// whether the item is in the wishlist afterwards.
func (s *WishlistStore) ToggleWishlist(ctx context.Context, item domain.WishlistItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items.IndexOf(item.ID) >= 0 {
		s.remove(item.ID)
		s.logger.DebugContext(ctx, "toggled out of wishlist", slog.String("product_id", item.ID))
		return false, s.persist(ctx, "toggle", s.items)
	}

	s.items = append(s.items, item.Clone())
	s.logger.DebugContext(ctx, "toggled into wishlist", slog.String("product_id", item.ID))
	return true, s.persist(ctx, "toggle", s.items)
}

// ClearWishlist empties the wishlist and persists an empty collection.
func (s *WishlistStore) ClearWishlist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = domain.WishlistItems{}
	return s.persist(ctx, "clear", s.items)
}

// IsInWishlist reports membership by product id.
func (s *WishlistStore) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.IndexOf(productID) >= 0
}

// Count returns the number of saved products.
func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the saved products in insertion order.
func (s *WishlistStore) Items() domain.WishlistItems {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}
