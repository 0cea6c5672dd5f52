package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/session"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/httputil"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/validator"
)

// maxMembershipIDs caps how many products one membership query may flag.
const maxMembershipIDs = 100

// MembershipHandler serves the read-only membership view used by product
// cards and the header badges.
type MembershipHandler struct {
	sessions *session.Factory
	logger   *slog.Logger
}

// NewMembershipHandler creates a new membership HTTP handler.
func NewMembershipHandler(sessions *session.Factory, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{sessions: sessions, logger: logger}
}

// GetMembership handles GET /api/v1/membership?ids=a,b
func (h *MembershipHandler) GetMembership(w http.ResponseWriter, r *http.Request) {
	ids, err := parseProductIDs(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	m, err := h.sessions.Membership(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, m.Snapshot(ids...))
}

// GetDeliveryLocation handles GET /api/v1/delivery-location. The location is
// written by another service; absence is a 404.
func (h *MembershipHandler) GetDeliveryLocation(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperFromContext(r.Context())

	loc, err := h.sessions.DeliveryLocation(r.Context(), shopperID)
	if errors.Is(err, apperrors.ErrNotFound) {
		err = apperrors.NotFound("delivery location", shopperID)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, loc)
}

// parseProductIDs reads the comma-separated ids query parameter. Blank
// entries are skipped and duplicates collapsed.
func parseProductIDs(r *http.Request) ([]string, error) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !validator.IsProductID(id) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("malformed product id %q", id))
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) > maxMembershipIDs {
		return nil, apperrors.InvalidInput(fmt.Sprintf("at most %d ids per request", maxMembershipIDs))
	}
	return ids, nil
}
