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
	// ErrProductUnavailable is returned when a shopper adds a missing or hidden product.
	ErrProductUnavailable = errors.New("product is not available")
	// ErrVariantUnavailable is returned when the chosen color or size is not offered.
	ErrVariantUnavailable = errors.New("selected variant is not offered for this product")
)

// AddToCartRequest is a shopper's add-to-cart intent.
type AddToCartRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1,max=99"`
	SelectedColor string `json:"selected_color" validate:"omitempty,max=100"`
	SelectedSize  string `json:"selected_size" validate:"omitempty,max=20"`
	Notes         string `json:"notes" validate:"omitempty,max=500"`
}

// CartView is the read-only cart state handed to the UI layer.
type CartView struct {
	Items          []models.CartLine `json:"items"`
	TotalItems     int               `json:"total_items"`
	TotalPrice     int64             `json:"total_price"`
	FormattedTotal string            `json:"formatted_total"`
}

// WishlistView is the wishlist with the products still on sale resolved.
type WishlistView struct {
	ProductIDs []string         `json:"product_ids"`
	Products   []models.Product `json:"products"`
}

// CartService opens per-session cart stores and applies shopper actions to them.
// Work on one session is serialised through WithSession.
type CartService struct {
	products *ProductService
	states   repositories.StateRepository
	sessions *sessionLocks
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewCartService creates a new CartService.
func NewCartService(products *ProductService, states repositories.StateRepository, m *metrics.Metrics, logger *zerolog.Logger) *CartService {
	return &CartService{
		products: products,
		states:   states,
		sessions: newSessionLocks(),
		metrics:  m,
		logger:   logger.With().Str("component", "CartService").Logger(),
	}
}

// WithSession rehydrates the store of sessionID and runs fn on it while no
// other call for the same session is running. Everything fn does, from the
// load through its last save, is one step for that session.
func (s *CartService) WithSession(sessionID string, fn func(store *cart.Store) error) error {
	unlock := s.sessions.lock(sessionID)
	defer unlock()
	return fn(s.Open(sessionID))
}

// Open rehydrates the store belonging to sessionID. Callers that mutate the
// store from concurrent requests go through WithSession instead.
func (s *CartService) Open(sessionID string) *cart.Store {
	logger := s.logger.With().Str("session", sessionID).Logger()
	return cart.Open(s.states,
		cart.WithNamespace(sessionID),
		cart.WithLogger(&logger),
		cart.WithNotifier(cart.NotifierFunc(func(c cart.Confirmation) {
			logger.Info().
				Str("product", c.ProductID).
				Int("added", c.Added).
				Int("quantity", c.Quantity).
				Msg(c.Message())
		})),
	)
}

// AddProduct snapshots the live product and merges it into store.
func (s *CartService) AddProduct(store *cart.Store, req AddToCartRequest) (cart.Confirmation, error) {
	product, err := s.products.GetActiveProduct(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return cart.Confirmation{}, fmt.Errorf("%w: %s", ErrProductUnavailable, req.ProductID)
		}
		return cart.Confirmation{}, err
	}

	color := strings.TrimSpace(req.SelectedColor)
	size := strings.TrimSpace(req.SelectedSize)
	if !product.OffersColor(color) {
		return cart.Confirmation{}, fmt.Errorf("%w: color %q", ErrVariantUnavailable, color)
	}
	if !product.OffersSize(size) {
		return cart.Confirmation{}, fmt.Errorf("%w: size %q", ErrVariantUnavailable, size)
	}

	conf, err := store.AddItem(models.CartLine{
		Product:       *product,
		Quantity:      req.Quantity,
		SelectedColor: color,
		SelectedSize:  size,
		Notes:         strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return cart.Confirmation{}, err
	}
	s.metrics.CartMutations.WithLabelValues("add").Inc()
	return conf, nil
}

// RemoveProduct drops every line of productID.
func (s *CartService) RemoveProduct(store *cart.Store, productID string) {
	store.RemoveItem(productID)
	s.metrics.CartMutations.WithLabelValues("remove").Inc()
}

// UpdateQuantity sets the quantity of productID's lines; below 1 removes them.
func (s *CartService) UpdateQuantity(store *cart.Store, productID string, quantity int) error {
	if err := store.UpdateQuantity(productID, quantity); err != nil {
		return err
	}
	s.metrics.CartMutations.WithLabelValues("update").Inc()
	return nil
}

// Clear empties the cart.
func (s *CartService) Clear(store *cart.Store) {
	store.Clear()
	s.metrics.CartMutations.WithLabelValues("clear").Inc()
}

// ToggleWishlist flips productID in the wishlist and reports whether it is now present.
func (s *CartService) ToggleWishlist(store *cart.Store, productID string) bool {
	present := store.ToggleWishlist(productID)
	s.metrics.CartMutations.WithLabelValues("wishlist_toggle").Inc()
	return present
}

// View renders the derived cart state.
func (s *CartService) View(store *cart.Store) CartView {
	total := store.TotalPrice()
	return CartView{
		Items:          store.Items(),
		TotalItems:     store.TotalItems(),
		TotalPrice:     total,
		FormattedTotal: models.FormatPrice(total),
	}
}

// Wishlist resolves the wishlist ids to active products. Ids whose product
// has been deleted or hidden stay in the id list but are not resolved.
func (s *CartService) Wishlist(store *cart.Store) (WishlistView, error) {
	ids := store.Wishlist()
	view := WishlistView{ProductIDs: ids, Products: make([]models.Product, 0, len(ids))}
	for _, id := range ids {
		product, err := s.products.GetActiveProduct(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return WishlistView{}, err
		}
		view.Products = append(view.Products, *product)
	}
	return view, nil
}
