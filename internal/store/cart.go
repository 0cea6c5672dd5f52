package store

import (
	"context"
	"log/slog"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
)

// AddToCartInput is the product snapshot captured when an item is added.
type AddToCartInput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Unit     string  `json:"unit,omitempty"`
}

// CartStore owns one shopper's cart line items.
type CartStore struct {
	base
	items domain.CartItems
}

// NewCart creates a cart store. It starts hydrating; call Hydrate before use.
func NewCart(opts Options) *CartStore {
	return &CartStore{
		base:  newBase(opts, domain.CollectionCart),
		items: domain.CartItems{},
	}
}

// Hydrate loads the stored cart. A missing or corrupt value yields an empty
// cart; only a storage read failure is returned.
func (s *CartStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items domain.CartItems
	err := s.load(ctx, &items)
	s.items = sanitizeCart(items)
	return err
}

// sanitizeCart drops non-positive quantities and merges duplicate ids.
func sanitizeCart(items domain.CartItems) domain.CartItems {
	out := make(domain.CartItems, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if i := out.IndexOf(item.ID); i >= 0 {
			out[i].Quantity += item.Quantity
			continue
		}
		out = append(out, item)
	}
	return out
}

// AddToCart adds one unit of the product. An existing line keeps its snapshot
// and only its quantity grows.
func (s *CartStore) AddToCart(ctx context.Context, input AddToCartInput) error {
	return s.AddToCartQuantity(ctx, input, 1)
}

// AddToCartQuantity behaves like n calls to AddToCart but persists once.
// n <= 0 is a no-op.
func (s *CartStore) AddToCartQuantity(ctx context.Context, input AddToCartInput, n int) error {
	if n <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.items.IndexOf(input.ID); i >= 0 {
		s.items[i].Quantity += n
	} else {
		s.items = append(s.items, domain.CartItem{
			ID:       input.ID,
			Name:     input.Name,
			Price:    input.Price,
			Quantity: n,
			ImageURL: input.ImageURL,
			Unit:     input.Unit,
		})
	}

	s.logger.DebugContext(ctx, "added to cart",
		slog.String("product_id", input.ID),
		slog.Int("quantity", n),
	)
	return s.persist(ctx, "add", s.items)
}

// RemoveFromCart removes the product's line. Absent ids still persist.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
	return s.persist(ctx, "remove", s.items)
}

func (s *CartStore) remove(productID string) {
	if i := s.items.IndexOf(productID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// UpdateQuantity sets the product's quantity. quantity <= 0 removes the line;
// an absent id is left absent.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)
		return s.persist(ctx, "remove", s.items)
	}

	if i := s.items.IndexOf(productID); i >= 0 {
		s.items[i].Quantity = quantity
	}
	return s.persist(ctx, "update_quantity", s.items)
}

// ClearCart empties the cart and persists an empty collection.
func (s *CartStore) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = domain.CartItems{}
	return s.persist(ctx, "clear", s.items)
}

// IsInCart reports whether the product has a line.
func (s *CartStore) IsInCart(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.IndexOf(productID) >= 0
}

// GetCartItemQuantity returns the product's quantity, or 0.
func (s *CartStore) GetCartItemQuantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.items.IndexOf(productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// TotalItems is the sum of quantities.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.TotalItems()
}

// TotalPrice is the sum of price times quantity.
func (s *CartStore) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.TotalPrice()
}

// Items returns a copy of the line items in insertion order.
func (s *CartStore) Items() domain.CartItems {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}
