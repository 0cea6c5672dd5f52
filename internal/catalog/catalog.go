// Package catalog looks up product details used to fill cart and wishlist snapshots.
package catalog

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
)

// Product is the catalog view of a sellable item.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	ImageURL      string   `json:"image_url"`
	Unit          string   `json:"unit,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Category      string   `json:"category,omitempty"`
}

// Lookup resolves a product by id. Unknown ids yield apperrors.ErrNotFound.
type Lookup interface {
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

// Memory is an in-process catalog.
type Memory struct {
	mu       sync.RWMutex
	products map[string]Product
}

// NewMemory creates a catalog holding products.
func NewMemory(products ...Product) *Memory {
	m := &Memory{products: make(map[string]Product, len(products))}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

// NewSeededMemory creates a catalog with the default grocery assortment.
func NewSeededMemory() *Memory {
	return NewMemory(Seed()...)
}

// GetProductByID implements Lookup.
func (m *Memory) GetProductByID(_ context.Context, id string) (*Product, error) {
	m.mu.RLock()
	p, ok := m.products[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &p, nil
}

// Put adds or replaces a product.
func (m *Memory) Put(p Product) {
	m.mu.Lock()
	m.products[p.ID] = p
	m.mu.Unlock()
}

// List returns all products ordered by id.
func (m *Memory) List() []Product {
	m.mu.RLock()
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func price(v float64) *float64 { return &v }

// Seed returns the default assortment.
func Seed() []Product {
	return []Product{
		{ID: "dairy-001", Name: "Amul Taaza Toned Milk", Price: 28, ImageURL: "/images/products/dairy-001.jpg", Unit: "500ml", Brand: "Amul", Category: "dairy"},
		{ID: "dairy-002", Name: "Mother Dairy Classic Curd", Price: 35, OriginalPrice: price(40), ImageURL: "/images/products/dairy-002.jpg", Unit: "400g", Brand: "Mother Dairy", Category: "dairy"},
		{ID: "dairy-003", Name: "Amul Butter", Price: 56, ImageURL: "/images/products/dairy-003.jpg", Unit: "100g", Brand: "Amul", Category: "dairy"},
		{ID: "bakery-001", Name: "Harvest Gold White Bread", Price: 40, ImageURL: "/images/products/bakery-001.jpg", Unit: "400g", Brand: "Harvest Gold", Category: "bakery"},
		{ID: "fruit-001", Name: "Banana Robusta", Price: 48, OriginalPrice: price(60), ImageURL: "/images/products/fruit-001.jpg", Unit: "6 pcs", Category: "fruits"},
		{ID: "veg-001", Name: "Onion", Price: 32, ImageURL: "/images/products/veg-001.jpg", Unit: "1kg", Category: "vegetables"},
		{ID: "snack-001", Name: "Lay's Classic Salted", Price: 20, ImageURL: "/images/products/snack-001.jpg", Unit: "52g", Brand: "Lay's", Category: "snacks"},
		{ID: "bev-001", Name: "Tata Tea Gold", Price: 285, OriginalPrice: price(310), ImageURL: "/images/products/bev-001.jpg", Unit: "500g", Brand: "Tata", Category: "beverages"},
	}
}
