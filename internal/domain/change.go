package domain

import "time"

// Collection names a shopper-owned collection held in durable storage.
type Collection string

const (
	CollectionCart     Collection = "cart"
	CollectionWishlist Collection = "wishlist"
)

// Change signals that a shopper's collection was rewritten in storage.
// Receivers re-read storage; the signal carries no collection data.
type Change struct {
	ShopperID  string     `json:"shopper_id"`
	Collection Collection `json:"collection"`
	Origin     string     `json:"origin"`
	At         time.Time  `json:"at"`
}

// DeliveryLocation is the shopper's selected delivery address. It is written
// by the location picker outside this service and only read here.
type DeliveryLocation struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Pincode     string      `json:"pincode"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
