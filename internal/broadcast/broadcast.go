// Package broadcast carries change signals between views of the same shopper.
package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
)

var signalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_broadcast_signals_total",
		Help: "Change signals offered to subscribers, by outcome",
	},
	[]string{"result"},
)

// Publisher announces that a shopper's collection was rewritten.
type Publisher interface {
	Publish(ctx context.Context, change domain.Change) error
}

// Filter selects the changes a subscriber is interested in. A nil Filter accepts all.
type Filter func(domain.Change) bool

// ForShopper accepts changes belonging to shopperID.
func ForShopper(shopperID string) Filter {
	return func(c domain.Change) bool { return c.ShopperID == shopperID }
}

// Bus is the in-process change channel. Publish never blocks: each
// subscriber holds at most one pending signal and further changes coalesce
// into it, since receivers re-read storage anyway.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	logger *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[*Subscription]struct{}),
		logger: logger,
	}
}

// Publish signals every subscriber whose filter accepts change.
func (b *Bus) Publish(ctx context.Context, change domain.Change) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if sub.filter != nil && !sub.filter(change) {
			continue
		}
		sub.offer(change)
	}

	b.logger.DebugContext(ctx, "change broadcast",
		slog.String("shopper_id", change.ShopperID),
		slog.String("collection", string(change.Collection)),
		slog.String("origin", change.Origin),
	)
	return nil
}

// Subscribe registers a subscriber. Callers must Close the subscription.
func (b *Bus) Subscribe(filter Filter) *Subscription {
	sub := &Subscription{
		bus:    b,
		filter: filter,
		signal: make(chan struct{}, 1),
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Subscribers returns the number of open subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

// Subscription receives coalesced change signals.
type Subscription struct {
	bus    *Bus
	filter Filter
	signal chan struct{}

	mu     sync.Mutex
	last   domain.Change
	closed bool
}

func (s *Subscription) offer(change domain.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.last = change

	select {
	case s.signal <- struct{}{}:
		signalsTotal.WithLabelValues("delivered").Inc()
	default:
		signalsTotal.WithLabelValues("coalesced").Inc()
	}
}

// C is signaled after one or more accepted changes. It is never closed.
func (s *Subscription) C() <-chan struct{} {
	return s.signal
}

// Last returns the most recent accepted change.
func (s *Subscription) Last() domain.Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.bus.remove(s)
}

// Fanout publishes to every publisher in order and joins their errors.
type Fanout []Publisher

// Publish implements Publisher.
func (f Fanout) Publish(ctx context.Context, change domain.Change) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every change.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, domain.Change) error { return nil }
