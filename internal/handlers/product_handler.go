package handlers

import (
	"errors"
	"fmt"

	"yaraan/internal/models"
	"yaraan/internal/repositories"
	"yaraan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("component", "ProductHandler").Logger(),
	}
}

// RegisterRoutes registers the storefront catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListCatalog)
	productRoutes.Get("/:id", h.HandleGetCatalogProduct)
}

// RegisterAdminRoutes registers the product management routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id/active", h.HandleSetProductActive)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListCatalog lists active products, optionally filtered by category and sorted.
func (h *ProductHandler) HandleListCatalog(c *fiber.Ctx) error {
	sortBy, err := services.ParseCatalogSort(c.Query("sort"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid sort order",
			"error":   err.Error(),
		})
	}

	products, err := h.service.ListCatalog(services.CatalogQuery{
		Category: c.Query("category"),
		Sort:     sortBy,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Error listing catalog")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetCatalogProduct returns one active product.
func (h *ProductHandler) HandleGetCatalogProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetActiveProduct(productID)
	if err != nil {
		return h.productError(c, productID, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleGetProducts lists every product for the admin console.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		h.logger.Error().Err(err).Msg("Error getting all products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID returns any product, active or not.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		return h.productError(c, productID, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product from the admin form.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidBody(c, err)
	}
	services.NormalizeProduct(&product)
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		h.logger.Error().Err(err).Msg("Error creating product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save product. Please try again.",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites a product from the admin form.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidBody(c, err)
	}
	product.ID = productID
	services.NormalizeProduct(&product)
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		return h.productError(c, productID, err, "Failed to save product. Please try again.")
	}

	// Re-read so the response reflects what was stored.
	updated, err := h.service.GetProductByID(productID)
	if err != nil {
		return h.productError(c, productID, err, "Could not retrieve product")
	}
	return c.JSON(updated)
}

// HandleSetProductActive shows or hides a product from shoppers.
func (h *ProductHandler) HandleSetProductActive(c *fiber.Ctx) error {
	productID := c.Params("id")
	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c, err)
	}
	if body.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "is_active is required",
		})
	}

	if err := h.service.SetProductActive(productID, *body.IsActive); err != nil {
		return h.productError(c, productID, err, "Failed to update product. Please try again.")
	}

	message := "The product has been hidden from customers."
	if *body.IsActive {
		message = "The product is now visible to customers."
	}
	return c.JSON(fiber.Map{"message": message})
}

// HandleDeleteProduct permanently deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		return h.productError(c, productID, err, "Failed to delete product. Please try again.")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

func (h *ProductHandler) productError(c *fiber.Ctx, productID string, err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", productID),
		})
	}
	h.logger.Error().Err(err).Str("product", productID).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
	})
}
