package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/httputil"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/logger"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/middleware"
	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/validator"
)

// ShopperCookie holds the anonymous shopper id between visits.
const ShopperCookie = "shopper_id"

const shopperCookieMaxAge = 365 * 24 * time.Hour

type contextKey string

const shopperIDKey contextKey = "shopper_id"

// ShopperIdentity resolves the shopper for the request: the X-User-ID header
// (set by the gateway for signed-in shoppers), else the shopper cookie, else a
// fresh anonymous id that is written back as a cookie.
func ShopperIdentity(secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(middleware.ShopperHeader)
			if id == "" {
				if c, err := r.Cookie(ShopperCookie); err == nil {
					id = c.Value
				}
			}
			// Shopper ids follow the same opaque-id rules as product ids.
			if id != "" && !validator.IsProductID(id) {
				httputil.WriteError(w, r, apperrors.InvalidInput("malformed shopper id"), nil)
				return
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     ShopperCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(shopperCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), shopperIDKey, id)
			if logger.ShopperIDFromContext(ctx) == "" {
				ctx = logger.WithShopperID(ctx, id)
				ctx = logger.NewContext(ctx, logger.FromContext(ctx).With("shopper_id", id))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// shopperFromContext returns the shopper id resolved by ShopperIdentity.
func shopperFromContext(ctx context.Context) string {
	id, _ := ctx.Value(shopperIDKey).(string)
	return id
}

// ContentTypeJSON rejects request bodies that are not JSON. POST and PUT must
// declare application/json; other methods are checked only when they carry a
// typed body.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		isJSON := strings.HasPrefix(ct, "application/json")

		reject := false
		switch {
		case r.Method == http.MethodPost || r.Method == http.MethodPut:
			reject = !isJSON
		case r.ContentLength > 0:
			reject = ct != "" && !isJSON
		}
		if reject {
			httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "UNSUPPORTED_MEDIA_TYPE",
					Message: "Content-Type must be application/json",
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
