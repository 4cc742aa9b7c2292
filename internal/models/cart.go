package models

import "time"

// Cart is the per-user document holding item snapshots.
type Cart struct {
	ID     string     `json:"id"`
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// CartItem is a copy of a catalog item taken when it was added.
// ID is assigned by the cart and is unrelated to ItemID.
type CartItem struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"itemId"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Category string    `json:"category"`
	ImageURL string    `json:"imageUrl,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}
