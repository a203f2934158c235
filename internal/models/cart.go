package models

import "time"

// CartLine is one shopper selection. Product is the snapshot taken when the
// line was added; its price is what totals are computed from.
type CartLine struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selected_color,omitempty"`
	SelectedSize  string  `json:"selected_size,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// LineKey identifies a cart line for merging.
type LineKey struct {
	ProductID string
	Color     string
	Size      string
}

// Key returns the merge identity of the line.
func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Color: l.SelectedColor, Size: l.SelectedSize}
}

// Subtotal is captured price × quantity.
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Snapshot freezes the line into an order item.
func (l CartLine) Snapshot() OrderItem {
	return OrderItem{
		ProductID:     l.Product.ID,
		ProductName:   l.Product.Name,
		Quantity:      l.Quantity,
		Price:         l.Product.Price,
		SelectedColor: l.SelectedColor,
		SelectedSize:  l.SelectedSize,
	}
}

// CartState is a persisted cart or wishlist blob keyed by session.
type CartState struct {
	Key       string    `gorm:"column:state_key;primaryKey;type:varchar(191)"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time
}
