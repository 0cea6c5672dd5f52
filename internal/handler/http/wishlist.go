package http

import (
	"log/slog"
	"net/http"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/catalog"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/session"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/store"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/httputil"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	sessions *session.Factory
	catalog  catalog.Lookup
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(sessions *session.Factory, lookup catalog.Lookup, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		sessions: sessions,
		catalog:  lookup,
		logger:   logger,
	}
}

// WishlistItemRequest is the JSON body for adding or toggling a product.
// When name or price is omitted the snapshot is filled from the catalog.
type WishlistItemRequest struct {
	ProductID     string   `json:"product_id" validate:"required,productid"`
	Name          string   `json:"name" validate:"omitempty,max=500"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
	ImageURL      string   `json:"image_url" validate:"omitempty,max=2048"`
	Unit          string   `json:"unit" validate:"omitempty,max=64"`
	Brand         string   `json:"brand" validate:"omitempty,max=200"`
}

// WishlistResponse is the wishlist view.
type WishlistResponse struct {
	Items domain.WishlistItems `json:"items"`
	Count int                  `json:"count"`
}

// WishlistItemResponse reports a single product's wishlist membership.
type WishlistItemResponse struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
	Count      int    `json:"count"`
}

func wishlistResponse(wl *store.WishlistStore) WishlistResponse {
	return WishlistResponse{Items: wl.Items(), Count: wl.Count()}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	wl, err := h.sessions.Wishlist(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, wishlistResponse(wl))
}

// AddItem handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	wl, item, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := wl.AddToWishlist(r.Context(), item); err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, wishlistResponse(wl))
}

// Toggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	wl, item, ok := h.decode(w, r)
	if !ok {
		return
	}

	in, err := wl.ToggleWishlist(r.Context(), item)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, WishlistItemResponse{
		ProductID:  item.ID,
		InWishlist: in,
		Count:      wl.Count(),
	})
}

// GetItem handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	wl, err := h.sessions.Wishlist(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, WishlistItemResponse{
		ProductID:  productID,
		InWishlist: wl.IsInWishlist(productID),
		Count:      wl.Count(),
	})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	wl, err := h.sessions.Wishlist(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := wl.RemoveFromWishlist(r.Context(), productID); err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, wishlistResponse(wl))
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	wl, err := h.sessions.Wishlist(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := wl.ClearWishlist(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, wishlistResponse(wl))
}

// decode reads the request body, resolves the product snapshot and opens the
// shopper's wishlist. On failure the response is already written.
func (h *WishlistHandler) decode(w http.ResponseWriter, r *http.Request) (*store.WishlistStore, domain.WishlistItem, bool) {
	var req WishlistItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return nil, domain.WishlistItem{}, false
	}

	item := domain.WishlistItem{
		ID:            req.ProductID,
		Name:          req.Name,
		ImageURL:      req.ImageURL,
		OriginalPrice: req.OriginalPrice,
		Unit:          req.Unit,
		Brand:         req.Brand,
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	if req.Name == "" || req.Price == nil {
		p, err := h.catalog.GetProductByID(r.Context(), req.ProductID)
		if err != nil {
			h.writeError(w, r, err)
			return nil, domain.WishlistItem{}, false
		}
		if item.Name == "" {
			item.Name = p.Name
		}
		if req.Price == nil {
			item.Price = p.Price
		}
		if item.ImageURL == "" {
			item.ImageURL = p.ImageURL
		}
		if item.OriginalPrice == nil {
			item.OriginalPrice = p.OriginalPrice
		}
		if item.Unit == "" {
			item.Unit = p.Unit
		}
		if item.Brand == "" {
			item.Brand = p.Brand
		}
	}

	wl, err := h.sessions.Wishlist(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return nil, domain.WishlistItem{}, false
	}
	return wl, item, true
}

func (h *WishlistHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.WriteError(w, r, err, h.logger)
}
