// Package storage defines the durable key-value store that shopper
// collections are persisted to, and the key layout shared by every reader.
package storage

import (
	"context"
	"fmt"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
)

// KeyPrefix namespaces every storefront key.
const KeyPrefix = "storefront"

// Storage is a durable string-keyed store holding opaque values.
// Set replaces the whole value; there are no partial writes.
type Storage interface {
	// Get returns the stored value, or an apperrors.NotFound error if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// CollectionKey returns the key holding a shopper's collection.
func CollectionKey(shopperID string, c domain.Collection) string {
	return fmt.Sprintf("%s:%s:%s", KeyPrefix, shopperID, c)
}

// SessionTokenKey returns the key reserved for the login flow's opaque token.
// This repository never writes it.
func SessionTokenKey(shopperID string) string {
	return fmt.Sprintf("%s:%s:session_token", KeyPrefix, shopperID)
}

// DeliveryLocationKey returns the key reserved for the selected delivery
// location ({address, coordinates, pincode}). This repository never writes it.
func DeliveryLocationKey(shopperID string) string {
	return fmt.Sprintf("%s:%s:delivery_location", KeyPrefix, shopperID)
}
