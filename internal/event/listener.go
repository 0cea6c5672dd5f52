package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/broadcast"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	pkgkafka "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/kafka"
)

// dedupeWindow is how long processed event IDs are remembered.
const dedupeWindow = 10 * time.Minute

// Listener republishes changes made by other instances onto the local bus.
type Listener struct {
	instanceID string
	local      broadcast.Publisher
	logger     *slog.Logger
}

// NewListener creates a listener that ignores changes originating from instanceID.
func NewListener(instanceID string, local broadcast.Publisher, logger *slog.Logger) *Listener {
	return &Listener{
		instanceID: instanceID,
		local:      local,
		logger:     logger,
	}
}

// HandleChange decodes a change event and publishes it locally.
func (l *Listener) HandleChange(ctx context.Context, event *pkgkafka.Event) error {
	if event.Source == l.instanceID {
		return nil
	}

	var change domain.Change
	if err := event.UnmarshalData(&change); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}
	if change.ShopperID == "" {
		l.logger.WarnContext(ctx, "dropping change without shopper id",
			slog.String("event_id", event.EventID),
		)
		return nil
	}
	if change.Origin == "" {
		change.Origin = event.Source
	}

	if err := l.local.Publish(ctx, change); err != nil {
		return fmt.Errorf("republish %s change: %w", change.Collection, err)
	}

	l.logger.DebugContext(ctx, "applied remote change",
		slog.String("shopper_id", change.ShopperID),
		slog.String("collection", string(change.Collection)),
		slog.String("origin", change.Origin),
	)
	return nil
}

// Handler returns HandleChange wrapped with event-ID deduplication.
func (l *Listener) Handler() pkgkafka.Handler {
	store := pkgkafka.NewMemoryIdempotencyStore(dedupeWindow)
	return pkgkafka.IdempotentHandler(store, l.HandleChange, l.logger)
}
