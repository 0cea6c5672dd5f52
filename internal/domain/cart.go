package domain

// CartItem is a single line in a shopper's cart. The product ID is the line key.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"image_url"`
	Unit     string  `json:"unit,omitempty"`
}

// Subtotal returns price times quantity for the line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartItems is the persisted cart collection, kept in insertion order.
type CartItems []CartItem

// TotalItems returns the sum of quantities across all lines.
func (c CartItems) TotalItems() int {
	var count int
	for _, item := range c {
		count += item.Quantity
	}
	return count
}

// TotalPrice returns the sum of price times quantity across all lines.
func (c CartItems) TotalPrice() float64 {
	var total float64
	for _, item := range c {
		total += item.Subtotal()
	}
	return total
}

// IndexOf returns the index of the line with the given product ID, or -1.
func (c CartItems) IndexOf(productID string) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of the collection.
func (c CartItems) Clone() CartItems {
	out := make(CartItems, len(c))
	copy(out, c)
	return out
}
