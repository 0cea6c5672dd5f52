// Package session opens per-shopper stores over shared storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/broadcast"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/store"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/view"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
	pkglogger "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/logger"
)

// Factory is built once at startup and hands out hydrated stores per request.
type Factory struct {
	storage    storage.Storage
	publisher  broadcast.Publisher
	instanceID string
	logger     *slog.Logger
}

// NewFactory creates a session factory.
func NewFactory(st storage.Storage, publisher broadcast.Publisher, instanceID string, logger *slog.Logger) *Factory {
	return &Factory{
		storage:    st,
		publisher:  publisher,
		instanceID: instanceID,
		logger:     logger,
	}
}

func (f *Factory) options(ctx context.Context, shopperID string) (store.Options, error) {
	if shopperID == "" {
		return store.Options{}, apperrors.InvalidInput("shopper id is required")
	}
	return store.Options{
		ShopperID: shopperID,
		Origin:    f.instanceID,
		Storage:   f.storage,
		Publisher: f.publisher,
		Logger:    pkglogger.WithContext(ctx, f.logger),
	}, nil
}

// Cart opens and hydrates the shopper's cart.
func (f *Factory) Cart(ctx context.Context, shopperID string) (*store.CartStore, error) {
	opts, err := f.options(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	cart := store.NewCart(opts)
	if err := cart.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("open cart: %w", err)
	}
	return cart, nil
}

// Wishlist opens and hydrates the shopper's wishlist.
func (f *Factory) Wishlist(ctx context.Context, shopperID string) (*store.WishlistStore, error) {
	opts, err := f.options(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	w := store.NewWishlist(opts)
	if err := w.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("open wishlist: %w", err)
	}
	return w, nil
}

// Membership opens a refreshed membership view for the shopper.
func (f *Factory) Membership(ctx context.Context, shopperID string) (*view.Membership, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	m := view.NewMembership(f.storage, shopperID, f.logger)
	if err := m.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("open membership: %w", err)
	}
	return m, nil
}

// DeliveryLocation reads the shopper's selected delivery location.
func (f *Factory) DeliveryLocation(ctx context.Context, shopperID string) (*domain.DeliveryLocation, error) {
	raw, err := f.storage.Get(ctx, storage.DeliveryLocationKey(shopperID))
	if err != nil {
		return nil, err
	}

	var loc domain.DeliveryLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, apperrors.Corrupt(storage.DeliveryLocationKey(shopperID), err)
	}
	return &loc, nil
}
