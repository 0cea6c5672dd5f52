package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/broadcast"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/session"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/view"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/httputil"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/logger"
)

// DefaultHeartbeat is how often an idle event stream sends a comment line.
const DefaultHeartbeat = 25 * time.Second

// EventsHandler streams membership snapshots to the browser over
// Server-Sent Events whenever the shopper's cart or wishlist changes, in this
// process or on another instance relayed through Kafka.
type EventsHandler struct {
	sessions  *session.Factory
	bus       *broadcast.Bus
	heartbeat time.Duration
	logger    *slog.Logger
}

// NewEventsHandler creates a new SSE handler. A non-positive heartbeat uses
// DefaultHeartbeat.
func NewEventsHandler(sessions *session.Factory, bus *broadcast.Bus, heartbeat time.Duration, logger *slog.Logger) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &EventsHandler{
		sessions:  sessions,
		bus:       bus,
		heartbeat: heartbeat,
		logger:    logger,
	}
}

// Stream handles GET /api/v1/events?ids=a,b
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteError(w, r, apperrors.Internal(errors.New("streaming unsupported")), h.logger)
		return
	}

	ids, err := parseProductIDs(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	shopperID := shopperFromContext(ctx)

	// Subscribe before the first read so no change between the read and the
	// subscription is lost.
	sub := h.bus.Subscribe(broadcast.ForShopper(shopperID))
	defer sub.Close()

	m, err := h.sessions.Membership(ctx, shopperID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sw := &sseWriter{w: w, flusher: flusher}
	if err := sw.event("membership", m.Snapshot(ids...)); err != nil {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.Watch(gctx, sub, func(view.Snapshot) error {
			return sw.event("membership", m.Snapshot(ids...))
		})
	})
	g.Go(func() error {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := sw.comment("ping"); err != nil {
					return err
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.FromContext(ctx).DebugContext(ctx, "event stream closed",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}
}

// sseWriter serializes writes from the watch and heartbeat goroutines.
type sseWriter struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

func (s *sseWriter) event(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, name, data); err != nil {
		return fmt.Errorf("write %s event: %w", name, err)
	}
	s.flusher.Flush()
	return nil
}

func (s *sseWriter) comment(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return fmt.Errorf("write heartbeat: %w", err)
	}
	s.flusher.Flush()
	return nil
}
