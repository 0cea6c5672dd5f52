package middleware

import (
	"log/slog"
	"net/http"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/logger"
)

// ShopperHeader carries the caller-supplied shopper identity.
const ShopperHeader = "X-User-ID"

// RequestLogger returns middleware that builds a request-scoped logger enriched
// with correlation_id, shopper_id, trace_id, and span_id, then stores it in
// context via logger.NewContext. Downstream handlers retrieve it with
// logger.FromContext(ctx).
//
// Mount it after RequestLogging (correlation_id) and Tracing (span context).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if logger.ShopperIDFromContext(ctx) == "" {
				if id := r.Header.Get(ShopperHeader); id != "" {
					ctx = logger.WithShopperID(ctx, id)
				}
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
