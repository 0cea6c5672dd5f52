// Package store holds a shopper's cart and wishlist in memory, persisting the
// full collection to storage and broadcasting a change after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/broadcast"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/storage"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_store_mutations_total",
			Help: "Store mutations by collection, operation and persist result",
		},
		[]string{"collection", "operation", "result"},
	)

	hydrationFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_store_hydration_fallbacks_total",
			Help: "Hydrations that fell back to an empty collection",
		},
		[]string{"collection", "reason"},
	)
)

// Options configures a store bound to one shopper.
type Options struct {
	ShopperID string
	// Origin identifies this process in broadcast changes.
	Origin    string
	Storage   storage.Storage
	Publisher broadcast.Publisher
	Logger    *slog.Logger
}

// base is the persistence and broadcast plumbing shared by CartStore and WishlistStore.
type base struct {
	mu         sync.Mutex
	collection domain.Collection
	key        string
	shopperID  string
	origin     string
	storage    storage.Storage
	publisher  broadcast.Publisher
	logger     *slog.Logger
	hydrating  bool
	now        func() time.Time
}

func newBase(opts Options, collection domain.Collection) base {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = broadcast.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return base{
		collection: collection,
		key:        storage.CollectionKey(opts.ShopperID, collection),
		shopperID:  opts.ShopperID,
		origin:     opts.Origin,
		storage:    opts.Storage,
		publisher:  publisher,
		logger: logger.With(
			slog.String("shopper_id", opts.ShopperID),
			slog.String("collection", string(collection)),
		),
		hydrating: true,
		now:       time.Now,
	}
}

// load reads and decodes the stored collection into target. Missing keys and
// corrupt values leave target untouched and return nil; only a failed read
// returns an error. Callers hold mu.
func (b *base) load(ctx context.Context, target any) error {
	defer func() { b.hydrating = false }()

	raw, err := b.storage.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		hydrationFallbacksTotal.WithLabelValues(string(b.collection), "read_error").Inc()
		b.logger.ErrorContext(ctx, "failed to read stored collection",
			slog.String("key", b.key),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("hydrate %s: %w", b.collection, err)
	}

	if err := domain.DecodeCollection(raw, target); err != nil {
		hydrationFallbacksTotal.WithLabelValues(string(b.collection), "corrupt").Inc()
		b.logger.WarnContext(ctx, "stored collection is corrupt, starting empty",
			slog.String("key", b.key),
			slog.String("error", apperrors.Corrupt(b.key, err).Error()),
		)
	}
	return nil
}

// persist writes the full collection and broadcasts a change. Mutations made
// before hydration completes stay in memory only. Callers hold mu.
func (b *base) persist(ctx context.Context, operation string, value any) error {
	if b.hydrating {
		mutationsTotal.WithLabelValues(string(b.collection), operation, "deferred").Inc()
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		mutationsTotal.WithLabelValues(string(b.collection), operation, "error").Inc()
		return fmt.Errorf("persist %s: %w", b.collection, err)
	}

	if err := b.storage.Set(ctx, b.key, raw); err != nil {
		mutationsTotal.WithLabelValues(string(b.collection), operation, "error").Inc()
		b.logger.ErrorContext(ctx, "failed to persist collection",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persist %s: %w", b.collection, err)
	}
	mutationsTotal.WithLabelValues(string(b.collection), operation, "ok").Inc()

	change := domain.Change{
		ShopperID:  b.shopperID,
		Collection: b.collection,
		Origin:     b.origin,
		At:         b.now().UTC(),
	}
	if err := b.publisher.Publish(ctx, change); err != nil {
		b.logger.WarnContext(ctx, "failed to broadcast change",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Hydrating reports whether the initial load has not completed yet.
func (b *base) Hydrating() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hydrating
}
