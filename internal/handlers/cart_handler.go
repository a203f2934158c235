package handlers

import (
	"errors"

	"yaraan/internal/cart"
	"yaraan/internal/middleware"
	"yaraan/internal/models"
	"yaraan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// CartHandler handles the shopper's cart, wishlist and checkout.
// Every route expects middleware.CartSession to have run.
type CartHandler struct {
	carts    *services.CartService
	orders   *services.OrderService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartService, orders *services.OrderService, logger *zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		orders:   orders,
		validate: validator.New(),
		logger:   logger.With().Str("component", "CartHandler").Logger(),
	}
}

// RegisterRoutes registers the cart, wishlist and checkout routes behind the
// given session middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router, session fiber.Handler) {
	cartRoutes := router.Group("/cart", session)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)

	wishlistRoutes := router.Group("/wishlist", session)
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/:productId", h.HandleToggleWishlist)

	router.Post("/checkout", session, h.HandleCheckout)
}

// session runs fn on the caller's cart with the session held.
func (h *CartHandler) session(c *fiber.Ctx, fn func(store *cart.Store) error) error {
	return h.carts.WithSession(middleware.CartSessionID(c), fn)
}

// HandleGetCart returns the cart lines and derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	var view services.CartView
	_ = h.session(c, func(store *cart.Store) error {
		view = h.carts.View(store)
		return nil
	})
	return c.JSON(view)
}

// HandleAddItem merges a product selection into the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req services.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var (
		conf cart.Confirmation
		view services.CartView
	)
	err := h.session(c, func(store *cart.Store) error {
		var err error
		if conf, err = h.carts.AddProduct(store, req); err != nil {
			return err
		}
		view = h.carts.View(store)
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductUnavailable):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "This product is not available",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrVariantUnavailable), errors.Is(err, cart.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not add item to cart",
				"error":   err.Error(),
			})
		}
		h.logger.Error().Err(err).Str("product", req.ProductID).Msg("Error adding item to cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      conf.Message(),
		"confirmation": conf,
		"cart":         view,
	})
}

// UpdateQuantityRequest is the body of a quantity change. Values below 1 remove the lines.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=99"`
}

// HandleUpdateQuantity sets the quantity of a product's lines; below 1 removes them.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var view services.CartView
	err := h.session(c, func(store *cart.Store) error {
		if err := h.carts.UpdateQuantity(store, c.Params("productId"), *req.Quantity); err != nil {
			return err
		}
		view = h.carts.View(store)
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update quantity",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// HandleRemoveItem drops every line of a product.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	var view services.CartView
	_ = h.session(c, func(store *cart.Store) error {
		h.carts.RemoveProduct(store, c.Params("productId"))
		view = h.carts.View(store)
		return nil
	})
	return c.JSON(view)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	var view services.CartView
	_ = h.session(c, func(store *cart.Store) error {
		h.carts.Clear(store)
		view = h.carts.View(store)
		return nil
	})
	return c.JSON(view)
}

// HandleGetWishlist returns the wishlist ids and the products still on sale.
func (h *CartHandler) HandleGetWishlist(c *fiber.Ctx) error {
	var view services.WishlistView
	err := h.session(c, func(store *cart.Store) error {
		var err error
		view, err = h.carts.Wishlist(store)
		return err
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Error resolving wishlist")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
		})
	}
	return c.JSON(view)
}

// HandleToggleWishlist flips a product's wishlist membership.
func (h *CartHandler) HandleToggleWishlist(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var (
		present bool
		ids     []string
	)
	_ = h.session(c, func(store *cart.Store) error {
		present = h.carts.ToggleWishlist(store, productID)
		ids = store.Wishlist()
		return nil
	})
	return c.JSON(fiber.Map{
		"product_id":  productID,
		"in_wishlist": present,
		"product_ids": ids,
	})
}

// HandleCheckout places an order from the current cart. The session stays
// held until the order is stored and the cart cleared.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var order *models.Order
	err := h.session(c, func(store *cart.Store) error {
		var err error
		order, err = h.orders.Checkout(store, req)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCustomerFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Please fill in all fields",
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Your cart is empty",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to place order. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully! We'll contact you shortly to confirm your order.",
		"order":   order,
	})
}
