package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/catalog"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/domain"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/session"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/internal/store"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/httputil"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	sessions *session.Factory
	catalog  catalog.Lookup
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(sessions *session.Factory, lookup catalog.Lookup, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  lookup,
		logger:   logger,
	}
}

// --- Request DTOs ---

// AddCartItemRequest is the JSON body for adding a product to the cart.
// When name or price is omitted the snapshot is filled from the catalog.
type AddCartItemRequest struct {
	ProductID string   `json:"product_id" validate:"required,productid"`
	Name      string   `json:"name" validate:"omitempty,max=500"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL  string   `json:"image_url" validate:"omitempty,max=2048"`
	Unit      string   `json:"unit" validate:"omitempty,max=64"`
	Quantity  *int     `json:"quantity" validate:"omitempty,gte=1,lte=999"`
}

// UpdateQuantityRequest is the JSON body for setting a line's quantity.
// Zero or negative quantities remove the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// --- Response DTOs ---

// CartResponse is the cart view returned by every cart endpoint.
type CartResponse struct {
	Items      domain.CartItems `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice float64          `json:"total_price"`
}

// CartItemResponse reports a single product's cart membership.
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	InCart    bool   `json:"in_cart"`
	Quantity  int    `json:"quantity"`
}

func cartResponse(c *store.CartStore) CartResponse {
	return CartResponse{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.sessions.Cart(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, cartResponse(cart))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input, err := h.snapshot(r, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cart, err := h.sessions.Cart(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if req.Quantity != nil && *req.Quantity > 1 {
		err = cart.AddToCartQuantity(r.Context(), input, *req.Quantity)
	} else {
		err = cart.AddToCart(r.Context(), input)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, cartResponse(cart))
}

// snapshot builds the stored product snapshot, consulting the catalog for
// any field the client left out.
func (h *CartHandler) snapshot(r *http.Request, req AddCartItemRequest) (store.AddToCartInput, error) {
	input := store.AddToCartInput{
		ID:       req.ProductID,
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Unit:     req.Unit,
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.Name != "" && req.Price != nil {
		return input, nil
	}

	p, err := h.catalog.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		return input, err
	}
	if input.Name == "" {
		input.Name = p.Name
	}
	if req.Price == nil {
		input.Price = p.Price
	}
	if input.ImageURL == "" {
		input.ImageURL = p.ImageURL
	}
	if input.Unit == "" {
		input.Unit = p.Unit
	}
	return input, nil
}

// GetItem handles GET /api/v1/cart/items/{productId}
func (h *CartHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	cart, err := h.sessions.Cart(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, CartItemResponse{
		ProductID: productID,
		InCart:    cart.IsInCart(productID),
		Quantity:  cart.GetCartItemQuantity(productID),
	})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.sessions.Cart(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := cart.UpdateQuantity(r.Context(), productID, *req.Quantity); err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, cartResponse(cart))
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	cart, err := h.sessions.Cart(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := cart.RemoveFromCart(r.Context(), productID); err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, cartResponse(cart))
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.sessions.Cart(r.Context(), shopperFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := cart.ClearCart(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	httputil.WriteData(w, http.StatusOK, cartResponse(cart))
}

func (h *CartHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.WriteError(w, r, err, h.logger)
}

// productIDParam reads and checks the {productId} URL parameter, writing a
// 400 when it is malformed.
func productIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "productId")
	if !validator.IsProductID(id) {
		httputil.WriteError(w, r, apperrors.InvalidInput("malformed product id"), nil)
		return "", false
	}
	return id, true
}
