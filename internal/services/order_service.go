package services

import (
	"errors"
	"fmt"
	"strings"

	"yaraan/internal/cart"
	"yaraan/internal/metrics"
	"yaraan/internal/models"
	"yaraan/internal/repositories"

	"github.com/rs/zerolog"
)

var (
	// ErrMissingCustomerFields is returned when name, phone or address is blank.
	ErrMissingCustomerFields = errors.New("customer name, phone and delivery address are required")
	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotPlaced wraps any persistence failure during checkout.
	ErrOrderNotPlaced = errors.New("order could not be placed")
)

// CheckoutRequest carries the customer details collected at checkout.
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" validate:"max=100"`
	CustomerPhone   string `json:"customer_phone" validate:"max=50"`
	DeliveryAddress string `json:"delivery_address" validate:"max=500"`
	Notes           string `json:"notes" validate:"max=1000"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (r CheckoutRequest) Trimmed() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:    strings.TrimSpace(r.CustomerName),
		CustomerPhone:   strings.TrimSpace(r.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(r.DeliveryAddress),
		Notes:           strings.TrimSpace(r.Notes),
	}
}

// orderCreatedEvent is published after a successful checkout.
type orderCreatedEvent struct {
	OrderID     string             `json:"order_id"`
	Customer    string             `json:"customer_name"`
	Items       []models.OrderItem `json:"items"`
	TotalAmount int64              `json:"total_amount"`
	Status      models.OrderStatus `json:"status"`
}

// orderStatusChangedEvent is published after an administrator writes a status.
type orderStatusChangedEvent struct {
	OrderID string             `json:"order_id"`
	From    models.OrderStatus `json:"from"`
	To      models.OrderStatus `json:"to"`
}

// OrderService handles checkout and the order status lifecycle.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher, m *metrics.Metrics, logger *zerolog.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("component", "OrderService").Logger(),
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// Checkout turns the cart in store into a pending order. Blank customer
// fields or an empty cart are rejected before any backend call. The order is
// written in one create; on success the cart is cleared, on failure it is left
// exactly as it was. The wishlist is never touched.
func (s *OrderService) Checkout(store *cart.Store, req CheckoutRequest) (*models.Order, error) {
	req = req.Trimmed()
	if req.CustomerName == "" || req.CustomerPhone == "" || req.DeliveryAddress == "" {
		s.metrics.Checkouts.WithLabelValues("invalid").Inc()
		return nil, ErrMissingCustomerFields
	}

	lines := store.Items()
	if len(lines) == 0 {
		s.metrics.Checkouts.WithLabelValues("invalid").Inc()
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, line.Snapshot())
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
		TotalAmount:     store.TotalPrice(),
		Status:          models.OrderPending,
	}
	if req.Notes != "" {
		notes := req.Notes
		order.Notes = &notes
	}

	if err := s.orderRepo.Create(order); err != nil {
		s.metrics.Checkouts.WithLabelValues("failed").Inc()
		s.logger.Error().Err(err).Int("lines", len(items)).Msg("Error placing order")
		return nil, fmt.Errorf("%w: %w", ErrOrderNotPlaced, err)
	}

	store.Clear()
	s.metrics.Checkouts.WithLabelValues("success").Inc()
	s.logger.Info().
		Str("order", order.ID).
		Int64("total", order.TotalAmount).
		Int("lines", len(order.Items)).
		Msg("Order placed")

	publishEvent(s.publisher, s.logger, EventOrderCreated, orderCreatedEvent{
		OrderID:     order.ID,
		Customer:    order.CustomerName,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	})
	return order, nil
}

// UpdateOrderStatus writes a new status onto an order and returns the order
// as re-read from the repository. Any status in the enumeration is accepted
// from any current status.
func (s *OrderService) UpdateOrderStatus(id string, status string) (*models.Order, error) {
	target, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	next, err := models.TransitionOrderStatus(current.Status, target)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(id, next); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	s.metrics.OrderStatusUpdates.WithLabelValues(string(next)).Inc()
	reopened := current.Status.Terminal() && !next.Terminal()
	s.logger.Info().
		Str("order", id).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Bool("reopened", reopened).
		Msg("Order status updated")

	publishEvent(s.publisher, s.logger, EventOrderStatusChanged, orderStatusChangedEvent{
		OrderID: id,
		From:    current.Status,
		To:      next,
	})

	return s.orderRepo.GetByID(id)
}
