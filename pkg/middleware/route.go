package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Storefront surfaces used to label HTTP metrics and spans.
const (
	SurfaceCart       = "cart"
	SurfaceWishlist   = "wishlist"
	SurfaceMembership = "membership"
	SurfaceDelivery   = "delivery"
	SurfaceEvents     = "events"
	SurfaceOps        = "ops"
	SurfaceUnmatched  = "unmatched"
)

const apiPrefix = "/api/v1/"

// routePattern returns the chi pattern that served r, or "unknown" before
// routing or when nothing matched.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unknown"
}

// RouteSurface maps a route pattern to the storefront surface it belongs to.
// Health, metrics and pprof routes are "ops"; unrouted requests are
// "unmatched".
func RouteSurface(pattern string) string {
	if pattern == "" || pattern == "unknown" {
		return SurfaceUnmatched
	}
	rest, ok := strings.CutPrefix(pattern, apiPrefix)
	if !ok {
		return SurfaceOps
	}
	first, _, _ := strings.Cut(rest, "/")
	switch first {
	case "cart":
		return SurfaceCart
	case "wishlist":
		return SurfaceWishlist
	case "membership":
		return SurfaceMembership
	case "delivery-location":
		return SurfaceDelivery
	case "events":
		return SurfaceEvents
	default:
		return SurfaceUnmatched
	}
}
