package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidOrderStatus is returned when a status value is outside the enumeration.
var ErrInvalidOrderStatus = errors.New("invalid order status")

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in canonical forward order, cancelled last.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// ParseOrderStatus converts s into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, s)
}

// Valid reports whether s is a member of the enumeration.
func (s OrderStatus) Valid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

// Terminal reports whether s is delivered or cancelled.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Label is the admin-facing name of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderConfirmed:
		return "Confirmed"
	case OrderProcessing:
		return "Processing"
	case OrderShipped:
		return "Shipped"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	}
	return string(s)
}

// TransitionOrderStatus moves an order from one status to another.
// Administrators may pick any status, including jumps, moves backward and
// moves out of a terminal state, so the only rejected target is one outside
// the enumeration.
func TransitionOrderStatus(from, to OrderStatus) (OrderStatus, error) {
	if !to.Valid() {
		return from, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, to)
	}
	return to, nil
}

// OrderItem is a line snapshot captured at checkout. It is decoupled from the
// live product so later catalog edits never change a placed order.
type OrderItem struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	Price         int64  `json:"price"` // Price at the time of order
	SelectedColor string `json:"selected_color,omitempty"`
	SelectedSize  string `json:"selected_size,omitempty"`
}

// Subtotal is price × quantity for the line.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Order represents a placed customer order.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName    string      `json:"customer_name" gorm:"type:varchar(100);not null"`
	CustomerPhone   string      `json:"customer_phone" gorm:"type:varchar(50);not null"`
	DeliveryAddress string      `json:"delivery_address" gorm:"type:text;not null"`
	Items           []OrderItem `json:"items" gorm:"type:text;serializer:json"`
	TotalAmount     int64       `json:"total_amount" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	Notes           *string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
