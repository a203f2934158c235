package repositories

import (
	"yaraan/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are never deleted and only their status changes after creation.
type OrderRepository interface {
	// GetAll returns every order, newest first.
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	// Create inserts the order with its items in a single write.
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
}
