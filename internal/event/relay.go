package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	pkgkafka "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/kafka"
)

// TopicShopperChanged carries collection change notifications between instances.
const TopicShopperChanged = "storefront.shopper.changed"

// Event types published on TopicShopperChanged.
const (
	EventTypeCartChanged     = "storefront.cart.changed"
	EventTypeWishlistChanged = "storefront.wishlist.changed"
)

// EventTypeFor maps a collection to its event type.
func EventTypeFor(c domain.Collection) string {
	if c == domain.CollectionWishlist {
		return EventTypeWishlistChanged
	}
	return EventTypeCartChanged
}

// EventPublisher is satisfied by *pkgkafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Relay forwards local changes to other instances over Kafka. It implements
// broadcast.Publisher.
type Relay struct {
	producer EventPublisher
	logger   *slog.Logger
}

// NewRelay creates a relay over producer.
func NewRelay(producer EventPublisher, logger *slog.Logger) *Relay {
	return &Relay{
		producer: producer,
		logger:   logger,
	}
}

// Publish sends change to TopicShopperChanged keyed by shopper.
func (r *Relay) Publish(ctx context.Context, change domain.Change) error {
	event, err := pkgkafka.NewEvent(EventTypeFor(change.Collection), change.ShopperID, change.Origin, change)
	if err != nil {
		return fmt.Errorf("create %s event: %w", change.Collection, err)
	}

	if err := r.producer.Publish(ctx, TopicShopperChanged, event); err != nil {
		return fmt.Errorf("relay %s change: %w", change.Collection, err)
	}

	r.logger.DebugContext(ctx, "relayed change",
		slog.String("shopper_id", change.ShopperID),
		slog.String("collection", string(change.Collection)),
		slog.String("event_id", event.EventID),
	)
	return nil
}
