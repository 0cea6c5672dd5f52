package domain

// WishlistItem is a product snapshot saved to a shopper's wishlist.
type WishlistItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	ImageURL      string   `json:"image_url"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	Brand         string   `json:"brand,omitempty"`
}

// WishlistItems is the persisted wishlist collection. IDs are unique.
type WishlistItems []WishlistItem

// IndexOf returns the index of the item with the given product ID, or -1.
func (w WishlistItems) IndexOf(productID string) int {
	for i := range w {
		if w[i].ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the item that shares no pointers with i.
func (i WishlistItem) Clone() WishlistItem {
	if i.OriginalPrice != nil {
		v := *i.OriginalPrice
		i.OriginalPrice = &v
	}
	return i
}

// Clone returns an independent deep copy of the collection.
func (w WishlistItems) Clone() WishlistItems {
	out := make(WishlistItems, len(w))
	for i := range w {
		out[i] = w[i].Clone()
	}
	return out
}
